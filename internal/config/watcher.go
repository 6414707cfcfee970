package config

import (
	"errors"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when a closed watcher is reused.
var ErrWatcherClosed = errors.New("config watcher is closed")

// ReloadHandler receives the freshly loaded configuration, or the load
// error if the changed file no longer parses.
type ReloadHandler func(Config, error)

// Watcher reloads the configuration file when it changes on disk.
// Editors typically replace config files rather than writing in place,
// so the watch is on the containing directory.
type Watcher struct {
	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	path    string
	handler ReloadHandler

	debounce time.Duration
	timer    *time.Timer

	done   chan struct{}
	closed bool
}

// WatchFile starts watching path and calls handler after each change,
// debounced so rapid successive writes trigger one reload.
func WatchFile(path string, debounce time.Duration, handler ReloadHandler) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	w := &Watcher{
		fsw:      fsw,
		path:     abs,
		handler:  handler,
		debounce: debounce,
		done:     make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// scheduleReload arms the debounce timer, collapsing bursts of events.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	path, handler := w.path, w.handler
	w.mu.Unlock()

	cfg, err := Load(path)
	if handler != nil {
		handler(cfg, err)
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	close(w.done)
	return w.fsw.Close()
}
