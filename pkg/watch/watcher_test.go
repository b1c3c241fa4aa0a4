package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"zedtex/zedtex/pkg/config"
)

type recorder struct {
	mu    sync.Mutex
	paths []string
}

func (r *recorder) handle(_ context.Context, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.paths = append(r.paths, path)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.paths...)
}

func startWatcher(t *testing.T, cfg config.WatchConfig, h Handler, paths ...string) context.CancelFunc {
	t.Helper()

	w, err := New(cfg, h)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	for _, p := range paths {
		if err := w.Add(p); err != nil {
			t.Fatalf("Add(%q) error = %v", p, err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Run(ctx); err != nil {
			t.Errorf("Run() error = %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	// Let the event loop start before files are touched.
	time.Sleep(50 * time.Millisecond)
	return cancel
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestNew_NilHandler(t *testing.T) {
	if _, err := New(config.WatchConfig{}, nil); err == nil {
		t.Fatal("New() with nil handler should fail")
	}
}

func TestAdd_Missing(t *testing.T) {
	w, err := New(config.WatchConfig{}, func(context.Context, string) {})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.fs.Close()

	if err := w.Add(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("Add() of a missing path should fail")
	}
}

func TestWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "spec.zed")
	if err := os.WriteFile(file, []byte("p"), 0o644); err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}
	startWatcher(t, config.WatchConfig{Debounce: 150 * time.Millisecond, Extensions: []string{".zed"}}, rec.handle, dir)

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(file, []byte("p and q"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	waitFor(t, func() bool { return len(rec.snapshot()) >= 1 })
	// Give a stray second call time to show up.
	time.Sleep(300 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 {
		t.Fatalf("handler calls = %d (%v), want 1", len(got), got)
	}
	abs, _ := filepath.Abs(file)
	if got[0] != abs {
		t.Errorf("path = %q, want %q", got[0], abs)
	}
}

func TestWatcher_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, config.WatchConfig{Debounce: 50 * time.Millisecond, Extensions: []string{".zed"}}, rec.handle, dir)

	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ".hidden.zed"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "ok.zed"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return len(rec.snapshot()) >= 1 })
	time.Sleep(200 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 || filepath.Base(got[0]) != "ok.zed" {
		t.Errorf("handled = %v, want only ok.zed", got)
	}
}

func TestWatcher_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "homework.tex.in")
	other := filepath.Join(dir, "other.zed")
	for _, f := range []string{target, other} {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	rec := &recorder{}
	startWatcher(t, config.WatchConfig{Debounce: 50 * time.Millisecond}, rec.handle, target)

	if err := os.WriteFile(other, []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, []byte("y"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return len(rec.snapshot()) >= 1 })
	time.Sleep(200 * time.Millisecond)

	got := rec.snapshot()
	if len(got) != 1 || filepath.Base(got[0]) != "homework.tex.in" {
		t.Errorf("handled = %v, want only the explicit file", got)
	}
}

func TestWatcher_NewSubdirectory(t *testing.T) {
	dir := t.TempDir()
	rec := &recorder{}
	startWatcher(t, config.WatchConfig{Debounce: 50 * time.Millisecond, Extensions: []string{".zed"}}, rec.handle, dir)

	sub := filepath.Join(dir, "chapter1")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "a.zed"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, func() bool { return len(rec.snapshot()) >= 1 })
	if got := rec.snapshot(); filepath.Base(got[0]) != "a.zed" {
		t.Errorf("handled = %v, want a.zed", got)
	}
}

func TestWatcher_RunTwice(t *testing.T) {
	w, err := New(config.WatchConfig{}, func(context.Context, string) {})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx)
	}()
	time.Sleep(20 * time.Millisecond)

	if err := w.Run(ctx); err != ErrRunning {
		t.Errorf("second Run() = %v, want ErrRunning", err)
	}
	cancel()
	<-done
}

func TestDebouncer(t *testing.T) {
	d := NewDebouncer(40 * time.Millisecond)
	var a, b atomic.Int32

	for i := 0; i < 3; i++ {
		d.Trigger("a", func() { a.Add(1) })
	}
	d.Trigger("b", func() { b.Add(1) })

	if got := d.Pending(); got != 2 {
		t.Errorf("Pending() = %d, want 2", got)
	}

	waitFor(t, func() bool { return a.Load() == 1 && b.Load() == 1 })
	time.Sleep(80 * time.Millisecond)
	if a.Load() != 1 {
		t.Errorf("a fired %d times, want 1", a.Load())
	}
	if got := d.Pending(); got != 0 {
		t.Errorf("Pending() = %d, want 0", got)
	}
}

func TestDebouncer_Stop(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var n atomic.Int32
	d.Trigger("a", func() { n.Add(1) })
	d.Stop()
	d.Trigger("a", func() { n.Add(1) })

	time.Sleep(80 * time.Millisecond)
	if n.Load() != 0 {
		t.Errorf("callbacks after Stop = %d, want 0", n.Load())
	}
}
