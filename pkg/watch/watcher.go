package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/telemetry/logging"

	"github.com/fsnotify/fsnotify"
)

// Handler is called with the path of a changed source once its events have
// been quiet for the debounce interval. Calls are serialized.
type Handler func(ctx context.Context, path string)

// ErrRunning is returned by Run when the watcher is already running.
var ErrRunning = errors.New("watcher already running")

// Watcher recompiles sources as they change. Directories are watched
// recursively and filtered by extension; files named explicitly are always
// reported, whatever their extension.
type Watcher struct {
	fs         *fsnotify.Watcher
	logger     *logging.Logger
	debounce   *Debouncer
	extensions []string
	handler    Handler

	// files holds explicitly watched files; their parent directories are
	// watched so that editors that replace files by rename keep working.
	files map[string]bool
	roots []string

	mu        sync.Mutex
	running   bool
	handlerMu sync.Mutex
}

// New creates a watcher. cfg supplies the debounce interval and the
// extensions matched inside watched directories.
func New(cfg config.WatchConfig, handler Handler) (*Watcher, error) {
	if handler == nil {
		return nil, errors.New("watch handler is nil")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = config.DefaultWatchDebounce
	}
	exts := cfg.Extensions
	if len(exts) == 0 {
		exts = config.DefaultWatchExtensions
	}

	return &Watcher{
		fs:         fsw,
		logger:     logging.Discard(),
		debounce:   NewDebouncer(debounce),
		extensions: exts,
		handler:    handler,
		files:      make(map[string]bool),
	}, nil
}

// WithLogger sets the logger.
func (w *Watcher) WithLogger(logger *logging.Logger) *Watcher {
	w.logger = logger.With("component", "watch")
	return w
}

// Add watches a file or a directory tree.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("cannot watch %q: %w", path, err)
	}

	if !info.IsDir() {
		w.mu.Lock()
		w.files[abs] = true
		w.mu.Unlock()
		return w.fs.Add(filepath.Dir(abs))
	}

	w.mu.Lock()
	w.roots = append(w.roots, abs)
	w.mu.Unlock()

	return filepath.WalkDir(abs, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != abs && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.fs.Add(p); err != nil {
			return fmt.Errorf("failed to watch directory %q: %w", p, err)
		}
		w.logger.Debug("watching directory", "path", p)
		return nil
	})
}

// Run processes events until ctx is cancelled, then releases the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return ErrRunning
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.debounce.Stop()
		w.fs.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("watcher stopped")
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			w.onEvent(ctx, event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) onEvent(ctx context.Context, event fsnotify.Event) {
	// A new directory inside a watched tree is watched too.
	if event.Has(fsnotify.Create) && w.inTreeLocked(event.Name) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.Add(event.Name); err != nil {
				w.logger.Warn("failed to watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !w.shouldProcess(event) {
		return
	}

	path := event.Name
	w.logger.Debug("file event", "path", path, "op", event.Op.String())
	w.debounce.Trigger(path, func() {
		if _, err := os.Stat(path); err != nil {
			// Removed or renamed away; nothing to compile.
			return
		}
		w.handlerMu.Lock()
		defer w.handlerMu.Unlock()
		w.handler(ctx, path)
	})
}

// shouldProcess filters out chmod events, hidden files and files that are
// neither named explicitly nor carry a watched extension.
func (w *Watcher) shouldProcess(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return w.matches(event.Name)
}

func (w *Watcher) matches(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.files[path] {
		return true
	}
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	if !w.inTree(path) {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

func (w *Watcher) inTreeLocked(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.inTree(path)
}

// inTree reports whether path lies under a directory added with Add, as
// opposed to beside an explicitly watched file.
func (w *Watcher) inTree(path string) bool {
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
