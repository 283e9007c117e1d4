// Package watcher reports changes to the projects file made outside the
// tray process, e.g. by `codetray add`.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for writes to settle.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches a single file by watching its directory.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	events    chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	logger    *zap.SugaredLogger

	timerMu sync.Mutex
	timer   *time.Timer
}

// New creates a watcher for path. The file itself need not exist yet.
func New(path string, debounce time.Duration, logger *zap.SugaredLogger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		debounce:  debounce,
		events:    make(chan struct{}, 1),
		done:      make(chan struct{}),
		logger:    logger.Named("watcher"),
	}, nil
}

// Changes returns a channel that receives a value after the file changed.
// Bursts of writes are coalesced into one value.
func (w *Watcher) Changes() <-chan struct{} {
	return w.events
}

// Start begins watching.
func (w *Watcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.logger.Debugw("Watching", "path", w.path)

	go w.processEvents()
	return nil
}

// Stop stops the watcher. It is safe to call more than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.timerMu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.timerMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warnw("Watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Atomic saves (write temp, rename over target) show up as Create or
	// Rename on the target; Remove covers the file being deleted.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	w.logger.Debugw("fsnotify", "op", event.Op.String(), "path", event.Name)
	w.debounceEvent()
}

func (w *Watcher) debounceEvent() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.emit)
}

func (w *Watcher) emit() {
	select {
	case <-w.done:
		return
	default:
	}

	// The channel holds one pending signal; a second one adds nothing.
	select {
	case w.events <- struct{}{}:
	default:
	}
}
