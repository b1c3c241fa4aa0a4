package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"zedtex/zedtex/pkg/zed/generator"

	_ "github.com/mattn/go-sqlite3" // registers "sqlite3" (cgo)
	_ "modernc.org/sqlite"          // registers "sqlite" (pure Go)
)

// Driver names accepted in SQLiteConfig.Driver.
const (
	DriverModernc = "modernc"
	DriverCgo     = "cgo"
)

// SQLiteConfig configures the SQLite store.
type SQLiteConfig struct {
	// Path is the database file.
	Path string

	// Driver selects the SQLite implementation: "modernc" (default, pure
	// Go) or "cgo" (github.com/mattn/go-sqlite3).
	Driver string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// SQLiteStore persists entries in a SQLite database so that repeated CLI
// runs and server restarts share one cache.
type SQLiteStore struct {
	db        *sql.DB
	path      string
	mu        sync.RWMutex
	closed    bool
	closeOnce sync.Once

	getStmt   *sql.Stmt
	putStmt   *sql.Stmt
	pruneStmt *sql.Stmt
}

// NewSQLiteStore opens (creating if needed) the database at cfg.Path.
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	driverName, err := sqlDriverName(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	s := &SQLiteStore{db: db, path: cfg.Path}

	if err := s.initSchema(cfg.BusyTimeout); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	if err := s.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return s, nil
}

func sqlDriverName(driver string) (string, error) {
	switch driver {
	case DriverModernc, "":
		return "sqlite", nil
	case DriverCgo:
		return "sqlite3", nil
	default:
		return "", fmt.Errorf("unknown sqlite driver %q (want %q or %q)", driver, DriverModernc, DriverCgo)
	}
}

// initSchema sets connection pragmas and creates the table. Pragmas are
// issued as statements because the two drivers spell DSN options differently.
func (s *SQLiteStore) initSchema(busyTimeout time.Duration) error {
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeout.Milliseconds()),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := s.db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}

	schema := `
	CREATE TABLE IF NOT EXISTS compile_cache (
		key TEXT PRIMARY KEY,
		dialect TEXT NOT NULL,
		output TEXT NOT NULL,
		warnings TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_compile_cache_created_at ON compile_cache(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getStmt, err = s.db.Prepare(`
		SELECT dialect, output, warnings, created_at
		FROM compile_cache
		WHERE key = ?
	`)
	if err != nil {
		return fmt.Errorf("prepare get: %w", err)
	}

	s.putStmt, err = s.db.Prepare(`
		INSERT INTO compile_cache (key, dialect, output, warnings, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			dialect = excluded.dialect,
			output = excluded.output,
			warnings = excluded.warnings,
			created_at = excluded.created_at
	`)
	if err != nil {
		return fmt.Errorf("prepare put: %w", err)
	}

	s.pruneStmt, err = s.db.Prepare(`DELETE FROM compile_cache WHERE created_at < ?`)
	if err != nil {
		return fmt.Errorf("prepare prune: %w", err)
	}

	return nil
}

// Get loads the entry for key.
func (s *SQLiteStore) Get(ctx context.Context, key string) (*Entry, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, false, ErrClosed
	}

	var (
		warnings  string
		createdAt int64
	)
	e := &Entry{Key: key}
	err := s.getStmt.QueryRowContext(ctx, key).Scan(&e.Dialect, &e.Text, &warnings, &createdAt)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load cache entry: %w", err)
	}

	if err := json.Unmarshal([]byte(warnings), &e.Warnings); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached warnings: %w", err)
	}
	e.CreatedAt = time.Unix(0, createdAt)
	return e, true, nil
}

// Put upserts entry. A zero CreatedAt is set to now.
func (s *SQLiteStore) Put(ctx context.Context, entry *Entry) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return ErrClosed
	}

	warnings := entry.Warnings
	if warnings == nil {
		warnings = []generator.Warning{}
	}
	data, err := json.Marshal(warnings)
	if err != nil {
		return fmt.Errorf("failed to encode warnings: %w", err)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	if _, err := s.putStmt.ExecContext(ctx, entry.Key, entry.Dialect, entry.Text, string(data), createdAt.UnixNano()); err != nil {
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Prune deletes entries created before cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, ErrClosed
	}

	res, err := s.pruneStmt.ExecContext(ctx, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned entries: %w", err)
	}
	return int(n), nil
}

// Stats aggregates the table.
func (s *SQLiteStore) Stats(ctx context.Context) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Stats{}, ErrClosed
	}

	var (
		count  int
		bytes  sql.NullInt64
		oldest sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), SUM(LENGTH(CAST(output AS BLOB))), MIN(created_at) FROM compile_cache`,
	).Scan(&count, &bytes, &oldest)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}

	st := Stats{Backend: BackendSQLite, Entries: count, Bytes: bytes.Int64}
	if oldest.Valid {
		st.Oldest = time.Unix(0, oldest.Int64)
	}
	return st, nil
}

// Backend returns "sqlite".
func (s *SQLiteStore) Backend() string { return BackendSQLite }

// Path returns the database file.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the prepared statements and the database. It is safe to call
// more than once.
func (s *SQLiteStore) Close() error {
	var err error
	s.closeOnce.Do(func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.closed = true
		for _, stmt := range []*sql.Stmt{s.getStmt, s.putStmt, s.pruneStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = s.db.Close()
	})
	return err
}
