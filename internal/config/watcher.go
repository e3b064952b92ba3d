package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/amterp/palettator/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// ChangeFunc is called after the watched config file changes on disk.
type ChangeFunc func(path string)

// Watcher reports edits to the config file. The configuration itself is
// never reloaded; subscribers are expected to tell the user a restart is
// needed.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange ChangeFunc
	delay    time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	stopCh  chan struct{}
	stopped bool
	running bool
}

// NewWatcher creates a watcher for the config file at path.
func NewWatcher(path string, onChange ChangeFunc) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher:  watcher,
		path:     abs,
		onChange: onChange,
		delay:    100 * time.Millisecond,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. The parent directory is watched rather than the
// file itself so editors that replace the file are still seen.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("config watcher cannot be restarted after stop")
	}
	w.running = true
	w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.run()
	return nil
}

// Stop stops watching for changes.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if !w.running || w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	close(w.stopCh)
	return w.watcher.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Logger().Warn("config watcher error", "err", err)

		case <-w.stopCh:
			return
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !w.relevant(event) {
		return
	}

	// Debounce: editors often emit several events per save
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.emit)
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	name, err := filepath.Abs(event.Name)
	if err != nil || name != w.path {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0
}

func (w *Watcher) emit() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.timer = nil
	w.mu.Unlock()

	logging.Logger().Debug("config file changed", "path", w.path)
	if w.onChange != nil {
		w.onChange(w.path)
	}
}
