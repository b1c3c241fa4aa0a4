package cache

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/zed/ast"
	"zedtex/zedtex/pkg/zed/generator"
)

func storeFactories(t *testing.T) map[string]func(t *testing.T) Store {
	return map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return NewMemoryStore()
		},
		"sqlite/modernc": func(t *testing.T) Store {
			s, err := NewSQLiteStore(SQLiteConfig{
				Path:   filepath.Join(t.TempDir(), "cache.db"),
				Driver: DriverModernc,
			})
			if err != nil {
				t.Fatalf("NewSQLiteStore() error = %v", err)
			}
			return s
		},
		"sqlite/cgo": func(t *testing.T) Store {
			s, err := NewSQLiteStore(SQLiteConfig{
				Path:   filepath.Join(t.TempDir(), "cache.db"),
				Driver: DriverCgo,
			})
			if err != nil {
				if strings.Contains(err.Error(), "cgo") {
					t.Skipf("cgo sqlite driver unavailable: %v", err)
				}
				t.Fatalf("NewSQLiteStore() error = %v", err)
			}
			return s
		},
	}
}

func TestStore_GetPut(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()
			ctx := context.Background()

			if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
				t.Fatalf("Get(missing) = %v, %v; want miss", ok, err)
			}

			created := time.Unix(1700000000, 0)
			want := &Entry{
				Key:     "k1",
				Dialect: "zed",
				Text:    "\\[ x \\]\n",
				Warnings: []generator.Warning{
					{Location: ast.Location{Line: 2, Column: 1}, Message: "line too long"},
				},
				CreatedAt: created,
			}
			if err := s.Put(ctx, want); err != nil {
				t.Fatalf("Put() error = %v", err)
			}

			got, ok, err := s.Get(ctx, "k1")
			if err != nil || !ok {
				t.Fatalf("Get(k1) = %v, %v; want hit", ok, err)
			}
			if got.Text != want.Text || got.Dialect != want.Dialect {
				t.Errorf("Get(k1) = %+v, want %+v", got, want)
			}
			if len(got.Warnings) != 1 || got.Warnings[0].Location.Line != 2 {
				t.Errorf("Warnings = %+v, want one on line 2", got.Warnings)
			}
			if !got.CreatedAt.Equal(created) {
				t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
			}

			want.Text = "replaced"
			if err := s.Put(ctx, want); err != nil {
				t.Fatalf("Put() error = %v", err)
			}
			got, _, _ = s.Get(ctx, "k1")
			if got.Text != "replaced" {
				t.Errorf("Text after overwrite = %q, want replaced", got.Text)
			}
		})
	}
}

func TestStore_PruneAndStats(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()
			ctx := context.Background()

			base := time.Unix(1700000000, 0)
			for i, text := range []string{"aaaa", "bb", "c"} {
				err := s.Put(ctx, &Entry{
					Key:       string(rune('a' + i)),
					Dialect:   "fuzz",
					Text:      text,
					CreatedAt: base.Add(time.Duration(i) * time.Hour),
				})
				if err != nil {
					t.Fatalf("Put() error = %v", err)
				}
			}

			st, err := s.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if st.Entries != 3 || st.Bytes != 7 {
				t.Errorf("Stats() = %+v, want 3 entries and 7 bytes", st)
			}
			if !st.Oldest.Equal(base) {
				t.Errorf("Oldest = %v, want %v", st.Oldest, base)
			}
			if st.Backend != s.Backend() {
				t.Errorf("Backend = %q, want %q", st.Backend, s.Backend())
			}

			removed, err := s.Prune(ctx, base.Add(90*time.Minute))
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if removed != 2 {
				t.Errorf("Prune() = %d, want 2", removed)
			}
			if _, ok, _ := s.Get(ctx, "c"); !ok {
				t.Error("newest entry was pruned")
			}

			st, _ = s.Stats(ctx)
			if st.Entries != 1 {
				t.Errorf("Entries after prune = %d, want 1", st.Entries)
			}
		})
	}
}

func TestStore_EmptyStats(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			defer s.Close()

			st, err := s.Stats(context.Background())
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if st.Entries != 0 || st.Bytes != 0 || !st.Oldest.IsZero() {
				t.Errorf("Stats() = %+v, want empty", st)
			}
		})
	}
}

func TestStore_Closed(t *testing.T) {
	for name, newStore := range storeFactories(t) {
		t.Run(name, func(t *testing.T) {
			s := newStore(t)
			if err := s.Close(); err != nil {
				t.Fatalf("Close() error = %v", err)
			}
			if err := s.Close(); err != nil {
				t.Errorf("second Close() error = %v", err)
			}

			if _, _, err := s.Get(context.Background(), "k"); !errors.Is(err, ErrClosed) {
				t.Errorf("Get() after Close error = %v, want ErrClosed", err)
			}
			if err := s.Put(context.Background(), &Entry{Key: "k"}); !errors.Is(err, ErrClosed) {
				t.Errorf("Put() after Close error = %v, want ErrClosed", err)
			}
		})
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	e := &Entry{Key: "k", Warnings: []generator.Warning{{Message: "w"}}}
	_ = s.Put(ctx, e)
	e.Warnings[0].Message = "changed"

	got, _, _ := s.Get(ctx, "k")
	if got.Warnings[0].Message != "w" {
		t.Errorf("stored entry aliases the caller's slice: %q", got.Warnings[0].Message)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not set on Put")
	}
}

func TestSQLiteStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")
	ctx := context.Background()

	s, err := NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	if err := s.Put(ctx, &Entry{Key: "k", Dialect: "zed", Text: "out"}); err != nil {
		t.Fatalf("Put() error = %v", err)
	}
	s.Close()

	s, err = NewSQLiteStore(SQLiteConfig{Path: path})
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || got.Text != "out" {
		t.Errorf("Get() after reopen = %+v, %v, %v", got, ok, err)
	}
}

func TestNewSQLiteStore_Errors(t *testing.T) {
	if _, err := NewSQLiteStore(SQLiteConfig{}); err == nil {
		t.Error("NewSQLiteStore() with no path error = nil")
	}
	if _, err := NewSQLiteStore(SQLiteConfig{Path: "x.db", Driver: "postgres"}); err == nil {
		t.Error("NewSQLiteStore() with unknown driver error = nil")
	}
}

func TestOpen(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.CacheConfig
		backend string
		wantErr bool
	}{
		{"disabled", config.CacheConfig{Enabled: false}, "", false},
		{"memory", config.CacheConfig{Enabled: true, Backend: "memory"}, BackendMemory, false},
		{"sqlite", config.CacheConfig{Enabled: true, Backend: "sqlite", Driver: "modernc"}, BackendSQLite, false},
		{"unknown", config.CacheConfig{Enabled: true, Backend: "redis"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if cfg.Backend == "sqlite" {
				cfg.Path = filepath.Join(t.TempDir(), "cache.db")
			}

			s, err := Open(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.backend == "" {
				if s != nil {
					t.Errorf("Open() = %v, want nil", s)
				}
				return
			}
			defer s.Close()
			if s.Backend() != tt.backend {
				t.Errorf("Backend() = %q, want %q", s.Backend(), tt.backend)
			}
		})
	}
}
