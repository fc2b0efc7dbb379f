// Package watcher reloads a persisted text field when its file changes.
//
// The watcher observes the directory holding the config file with fsnotify,
// so editors that save by writing a temporary file and renaming it over the
// original are picked up too. Bursts of events are debounced into a single
// reload.
package watcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/textbox/internal/config"
)

// DefaultDebounce is the quiet period before a reload.
const DefaultDebounce = 100 * time.Millisecond

// ErrWatcherClosed is returned when using a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// Handler receives a freshly loaded field.
type Handler func(config.Field)

// ErrorHandler receives load and watch errors.
type ErrorHandler func(error)

// Watcher reloads one labelled field from one file.
type Watcher struct {
	mu sync.Mutex

	fsw   *fsnotify.Watcher
	path  string
	label string

	debounce time.Duration
	timer    *time.Timer

	onChange Handler
	onError  ErrorHandler

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithErrorHandler sets the error callback.
func WithErrorHandler(h ErrorHandler) Option {
	return func(w *Watcher) {
		if h != nil {
			w.onError = h
		}
	}
}

// New starts watching the field stored under label in path.
// onChange is called from a background goroutine after each reload.
func New(path, label string, onChange Handler, opts ...Option) (*Watcher, error) {
	if onChange == nil {
		return nil, errors.New("watcher: nil handler")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(absPath), err)
	}

	w := &Watcher{
		fsw:      fsw,
		path:     absPath,
		label:    label,
		debounce: DefaultDebounce,
		onChange: onChange,
		onError:  func(error) {},
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.closedWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Reload loads the field now and hands it to the change handler.
func (w *Watcher) Reload() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return ErrWatcherClosed
	}
	w.closedWg.Add(1)
	w.mu.Unlock()
	defer w.closedWg.Done()

	f, err := config.Load(w.path, w.label)
	if err != nil {
		w.safeCall(func() { w.onError(err) })
		return err
	}
	w.safeCall(func() { w.onChange(f) })
	return nil
}

// Close stops the watcher and waits for pending callbacks.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
				w.schedule()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.safeCall(func() { w.onError(err) })
		}
	}
}

// schedule (re)arms the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { _ = w.Reload() })
}

// safeCall runs a callback with panic recovery to keep the watcher running.
func (w *Watcher) safeCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
