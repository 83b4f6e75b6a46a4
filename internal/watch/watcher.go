// Package watch reports writes to a single file using fsnotify.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses bursts of events from editors that write a file
// in several steps.
const DefaultDebounce = 100 * time.Millisecond

// debugLogger is a no-op until SetDebugLogger is called.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for watch operations.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// Watcher emits the watched path each time the file is created or written.
// The parent directory is watched so atomic renames are observed.
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	mu       sync.Mutex
	closed   bool
}

// New creates a Watcher for path. The file does not need to exist yet.
func New(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, debounce: debounce, watcher: w}, nil
}

// Path returns the absolute watched path.
func (w *Watcher) Path() string {
	return w.path
}

// Changes returns a channel receiving one value per (debounced) change.
// The channel is closed when ctx is cancelled or Close is called.
func (w *Watcher) Changes(ctx context.Context) <-chan string {
	out := make(chan string, 1)
	go w.loop(ctx, out)
	return out
}

func (w *Watcher) loop(ctx context.Context, out chan<- string) {
	defer close(out)

	var timer *time.Timer
	var fire <-chan time.Time
	arm := func() {
		if timer == nil {
			timer = time.NewTimer(w.debounce)
		} else {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)
		}
		fire = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			arm()
		case <-fire:
			fire = nil
			select {
			case out <- w.path:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.reportError(err)
			arm()
		}
	}
}

// reportError logs a watcher error. Events may have been dropped, so the
// file is treated as changed.
func (w *Watcher) reportError(err error) {
	logDebug("[watch] %s: %v", w.path, err)
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	return w.watcher.Close()
}
