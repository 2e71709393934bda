package watch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls a reload function whenever a single file changes. Rapid
// bursts of events (editors often write, rename and chmod in sequence) are
// coalesced into one call.
type FileWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	logger   *log.Logger
	debounce *Debouncer
}

// New creates a watcher for path. The parent directory is watched so the file
// can be replaced atomically without losing the watch.
func New(path string, interval time.Duration, logger *log.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve watch path: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	return &FileWatcher{
		path:     abs,
		watcher:  watcher,
		logger:   logger,
		debounce: NewDebouncer(interval),
	}, nil
}

// Watch blocks until ctx is cancelled, calling onChange after each debounced
// burst of events on the watched file. Reload errors are logged and watching
// continues.
func (fw *FileWatcher) Watch(ctx context.Context, onChange func() error) error {
	defer fw.close()

	fw.logger.Printf("watching %s", fw.path)
	for {
		select {
		case <-ctx.Done():
			fw.logger.Printf("stopped watching %s", fw.path)
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			if !fw.relevant(event) {
				continue
			}
			fw.logger.Printf("file event %s on %s", event.Op, event.Name)
			fw.debounce.Trigger(func() {
				if err := onChange(); err != nil {
					fw.logger.Printf("reload failed: %v", err)
				}
			})

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			fw.logger.Printf("watcher error: %v", err)
		}
	}
}

func (fw *FileWatcher) relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == fw.path
}

func (fw *FileWatcher) close() {
	fw.debounce.Stop()
	if err := fw.watcher.Close(); err != nil {
		fw.logger.Printf("close watcher: %v", err)
	}
}

// Debouncer runs the most recently triggered callback once no new trigger
// has arrived for the configured interval. Callbacks never run concurrently.
type Debouncer struct {
	interval time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	callback func()
	stopped  bool

	// running is held for the duration of a callback.
	running sync.Mutex
}

// NewDebouncer creates a debouncer with the given quiet period.
func NewDebouncer(interval time.Duration) *Debouncer {
	return &Debouncer{interval: interval}
}

// Trigger schedules callback, replacing any callback still pending.
func (d *Debouncer) Trigger(callback func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.callback = callback
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.running.Lock()
	defer d.running.Unlock()

	d.mu.Lock()
	cb := d.callback
	d.callback = nil
	stopped := d.stopped
	d.mu.Unlock()

	if cb != nil && !stopped {
		cb()
	}
}

// Stop cancels any pending callback and waits for a running one to return.
// Later triggers are ignored. Stop must not be called from a callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.callback = nil
	d.mu.Unlock()

	d.running.Lock()
	d.running.Unlock()
}
