package main

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"zedtex/zedtex/pkg/cache"
	"zedtex/zedtex/pkg/config"
)

func useSQLiteCache(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.db")
	useConfig(t, func(c *config.Config) {
		c.Cache.Backend = cache.BackendSQLite
		c.Cache.Driver = cache.DriverModernc
		c.Cache.Path = path
	})
	return path
}

func seedCache(t *testing.T, path string, entries ...*cache.Entry) {
	t.Helper()
	store, err := cache.NewSQLiteStore(cache.SQLiteConfig{Path: path, Driver: cache.DriverModernc})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	defer store.Close()
	for _, e := range entries {
		if err := store.Put(context.Background(), e); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}
}

func TestCacheStats(t *testing.T) {
	path := useSQLiteCache(t)
	seedCache(t, path,
		&cache.Entry{Key: "a", Dialect: "fuzz", Text: "abc"},
		&cache.Entry{Key: "b", Dialect: "zed", Text: "de"},
	)

	t.Run("text", func(t *testing.T) {
		cacheFlags.format = "text"
		cmd, stdout, _ := newTestCommand()
		if err := runCacheStats(cmd, nil); err != nil {
			t.Fatalf("runCacheStats() error = %v", err)
		}
		for _, want := range []string{"Backend: sqlite", "Entries: 2", "Bytes:   5", "Oldest:"} {
			if !strings.Contains(stdout.String(), want) {
				t.Errorf("output missing %q:\n%s", want, stdout.String())
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		cacheFlags.format = "json"
		cmd, stdout, _ := newTestCommand()
		if err := runCacheStats(cmd, nil); err != nil {
			t.Fatalf("runCacheStats() error = %v", err)
		}
		var stats cache.Stats
		if err := json.Unmarshal(stdout.Bytes(), &stats); err != nil {
			t.Fatalf("stdout is not JSON: %v", err)
		}
		if stats.Entries != 2 || stats.Bytes != 5 {
			t.Errorf("stats = %+v, want 2 entries and 5 bytes", stats)
		}
	})
}

func TestCachePrune(t *testing.T) {
	path := useSQLiteCache(t)
	now := time.Now()
	seedCache(t, path,
		&cache.Entry{Key: "old", Text: "x", CreatedAt: now.Add(-48 * time.Hour)},
		&cache.Entry{Key: "new", Text: "y", CreatedAt: now},
	)

	cacheFlags.olderThan = 24 * time.Hour
	defer func() { cacheFlags.olderThan = 0 }()

	cmd, stdout, _ := newTestCommand()
	if err := runCachePrune(cmd, nil); err != nil {
		t.Fatalf("runCachePrune() error = %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "removed 1 entries older than 24h0m0s") {
		t.Errorf("output = %q", stdout.String())
	}

	cacheFlags.format = "text"
	cmd, stdout, _ = newTestCommand()
	if err := runCacheStats(cmd, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "Entries: 1") {
		t.Errorf("stats after prune = %q, want 1 entry", stdout.String())
	}
}

func TestCache_Disabled(t *testing.T) {
	useConfig(t, func(c *config.Config) { c.Cache.Enabled = false })

	cmd, _, _ := newTestCommand()
	if err := runCachePrune(cmd, nil); !errors.Is(err, errCacheDisabled) {
		t.Errorf("runCachePrune() error = %v, want errCacheDisabled", err)
	}
	cacheFlags.format = "text"
	if err := runCacheStats(cmd, nil); !errors.Is(err, errCacheDisabled) {
		t.Errorf("runCacheStats() error = %v, want errCacheDisabled", err)
	}
}
