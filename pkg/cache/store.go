package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/zed/generator"
)

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("cache: store is closed")

// Backend names.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Entry is one cached compilation result.
type Entry struct {
	// Key identifies the source, dialect and compiler version.
	Key string

	Dialect string

	Text string

	Warnings []generator.Warning

	CreatedAt time.Time
}

// Stats summarizes a store's contents.
type Stats struct {
	Backend string `json:"backend" yaml:"backend"`

	Entries int `json:"entries" yaml:"entries"`

	// Bytes is the total size of the cached LaTeX text.
	Bytes int64 `json:"bytes" yaml:"bytes"`

	// Oldest is the creation time of the oldest entry; zero when empty.
	Oldest time.Time `json:"oldest,omitempty" yaml:"oldest,omitempty"`
}

// Store persists compiled outputs by key. Implementations are safe for
// concurrent use.
type Store interface {
	// Get returns the entry for key. A missing key is (nil, false, nil).
	Get(ctx context.Context, key string) (*Entry, bool, error)

	// Put stores an entry, replacing any entry with the same key.
	Put(ctx context.Context, entry *Entry) error

	// Prune removes entries created before cutoff and reports how many.
	Prune(ctx context.Context, cutoff time.Time) (int, error)

	Stats(ctx context.Context) (Stats, error)

	// Backend names the implementation, e.g. "memory".
	Backend() string

	Close() error
}

// Open creates the store selected by cfg. It returns nil and no error when
// caching is disabled.
func Open(cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore(SQLiteConfig{
			Path:   cfg.Path,
			Driver: cfg.Driver,
		})
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}

func copyEntry(e *Entry) *Entry {
	c := *e
	c.Warnings = append([]generator.Warning(nil), e.Warnings...)
	return &c
}
