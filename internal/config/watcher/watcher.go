// Package watcher reloads the abbreviation table when its file changes.
//
// The watcher monitors the directory holding the abbreviation file so that
// editors which save by writing a temp file and renaming it are picked up.
// Bursts of events are debounced into one reload; each reload publishes a
// fresh table through an abbrev.Store.
package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/abbrev/internal/abbrev"
	"github.com/dshills/abbrev/internal/logging"
)

// Errors returned by the watcher.
var (
	ErrWatcherClosed = errors.New("watcher closed")
	ErrPathNotExist  = errors.New("path does not exist")
)

// Event describes a reload.
type Event struct {
	// Path is the absolute path to the abbreviation file.
	Path string

	// Op is the operation that triggered the reload.
	Op Operation

	// Time is when the triggering change was seen.
	Time time.Time

	// Entries is the size of the freshly loaded table.
	Entries int
}

// Operation represents the type of file operation.
type Operation int

const (
	// OpWrite indicates the file was modified.
	OpWrite Operation = iota

	// OpCreate indicates a new file was created.
	OpCreate

	// OpRemove indicates the file was deleted.
	OpRemove

	// OpRename indicates the file was renamed.
	OpRename
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpWrite:
		return "write"
	case OpCreate:
		return "create"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

func opFromFSNotify(op fsnotify.Op) Operation {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	default:
		return OpWrite
	}
}

// Handler is called after each reload.
type Handler func(event Event)

// Watcher reloads one abbreviation file into a Store.
type Watcher struct {
	mu sync.Mutex

	path    string
	store   *abbrev.Store
	loader  *abbrev.Loader
	overlay *abbrev.Overlay
	logger  *logging.Logger

	debounce time.Duration
	handlers []Handler

	fsw      *fsnotify.Watcher
	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the debounce duration for rapid changes.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the watcher's logger. The table loader logs through it
// as well.
func WithLogger(l *logging.Logger) Option {
	return func(w *Watcher) {
		w.logger = l
	}
}

// WithOverlay replays o on every freshly loaded table before it is
// published, so entries registered outside the file survive a reload.
func WithOverlay(o *abbrev.Overlay) Option {
	return func(w *Watcher) {
		w.overlay = o
	}
}

// WithHandler registers a handler called after every reload.
func WithHandler(h Handler) Option {
	return func(w *Watcher) {
		w.handlers = append(w.handlers, h)
	}
}

// New starts watching path and reloading it into store.
// The directory containing path must exist; the file itself need not.
func New(path string, store *abbrev.Store, opts ...Option) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     absPath,
		store:    store,
		logger:   logging.Null(),
		debounce: 100 * time.Millisecond,
		closeCh:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.WithComponent("watcher")
	w.loader = abbrev.NewLoader(abbrev.WithLogger(w.logger))

	dir := filepath.Dir(absPath)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("watch %s: %w", dir, ErrPathNotExist)
		}
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w.fsw = fsw

	w.closedWg.Add(1)
	go w.processLoop()

	w.logger.Debug("watching %s", absPath)
	return w, nil
}

// Path returns the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// OnReload registers a handler called after every reload.
func (w *Watcher) OnReload(h Handler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers = append(w.handlers, h)
}

// Reload loads the file now and publishes it.
func (w *Watcher) Reload() error {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return ErrWatcherClosed
	}
	w.reload(Event{Path: w.path, Op: OpWrite, Time: time.Now()})
	return nil
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	w.closedWg.Wait()
	return w.fsw.Close()
}

func (w *Watcher) processLoop() {
	defer w.closedWg.Done()

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		pending Event
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op == fsnotify.Chmod {
				continue
			}
			pending = Event{Path: w.path, Op: opFromFSNotify(ev.Op), Time: time.Now()}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error: %v", err)

		case <-timerC:
			timerC = nil
			w.reload(pending)
		}
	}
}

func (w *Watcher) reload(ev Event) {
	t := w.loader.LoadFile(w.path)
	w.overlay.Apply(t)
	w.store.Swap(t)
	ev.Entries = t.Len()
	w.logger.Info("reloaded %s after %s: %d abbreviations", w.path, ev.Op, ev.Entries)

	w.mu.Lock()
	handlers := make([]Handler, len(w.handlers))
	copy(handlers, w.handlers)
	w.mu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
