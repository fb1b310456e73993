package app

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dshills/hexstorm/internal/logging"
	"github.com/dshills/hexstorm/internal/renderer/backend"
)

// DefaultSettleDelay is how long a file must stay quiet before a change is
// reported.
const DefaultSettleDelay = 100 * time.Millisecond

// FileChange is posted to the event loop, as interrupt data, when the watched
// file changes on disk.
type FileChange struct {
	Path    string
	Removed bool
}

// Poster queues events for the event loop. backend.Backend implements it.
type Poster interface {
	PostEvent(backend.Event)
}

// FileWatcher reports changes to one file. It watches the parent directory
// so that editors replacing the file by rename are noticed too. Bursts of
// events are coalesced into one FileChange after the file settles.
type FileWatcher struct {
	mu sync.Mutex

	watcher *fsnotify.Watcher
	path    string
	post    Poster
	delay   time.Duration
	log     *logging.Logger

	timer   *time.Timer
	removed bool

	closed   bool
	closeCh  chan struct{}
	closedWg sync.WaitGroup
}

// NewFileWatcher starts watching path. Changes are posted to post once no
// further event arrived for delay; zero means DefaultSettleDelay.
func NewFileWatcher(path string, post Poster, delay time.Duration, log *logging.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultSettleDelay
	}

	w := &FileWatcher{
		watcher: fsw,
		path:    abs,
		post:    post,
		delay:   delay,
		log:     log.WithComponent("watcher"),
		closeCh: make(chan struct{}),
	}
	w.closedWg.Add(1)
	go w.processLoop()
	return w, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Close stops the watcher. Pending changes are dropped.
func (w *FileWatcher) Close() error {
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
	return w.watcher.Close()
}

func (w *FileWatcher) processLoop() {
	defer w.closedWg.Done()

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch %s: %v", w.path, err)
		}
	}
}

func (w *FileWatcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) &&
		!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	// A later create means the file came back.
	w.removed = ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename)
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, w.fire)
}

func (w *FileWatcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	change := FileChange{Path: w.path, Removed: w.removed}
	w.mu.Unlock()

	w.log.Debug("%s changed (removed=%v)", change.Path, change.Removed)
	w.post.PostEvent(backend.InterruptEvent(change))
}
