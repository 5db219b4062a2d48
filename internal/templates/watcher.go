package templates

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invalidates a Store's cache whenever its backing catalog file
// changes on disk, so operators can edit templates without restarting the
// service. Events are debounced because editors and atomic-save tools emit
// bursts of writes for one logical change.
type Watcher struct {
	store *Store
	log   *zap.Logger

	watcher     *fsnotify.Watcher
	debounceDur time.Duration

	mu        sync.Mutex
	lastEvent time.Time
	running   bool
	stopCh    chan struct{}
	doneCh    chan struct{}
}

// NewWatcher creates a watcher for the store's catalog file. Start must be
// called before any invalidation happens.
func NewWatcher(store *Store, log *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{
		store:       store,
		log:         log,
		watcher:     fw,
		debounceDur: 250 * time.Millisecond,
	}, nil
}

// Start begins watching the catalog's directory. Watching the directory
// instead of the file survives atomic rename-over saves.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	dir := filepath.Dir(w.store.path)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true
	go w.run()

	w.log.Debug("template catalog watcher started", zap.String("dir", dir))
	return nil
}

// Stop halts the watcher and releases its file handles. Safe to call more
// than once, and before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	close(w.stopCh)
	done := w.doneCh
	w.mu.Unlock()

	<-done
	_ = w.watcher.Close()
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	target := filepath.Clean(w.store.path)

	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if !w.debounce() {
				continue
			}
			w.log.Info("template catalog changed, invalidating cache",
				zap.String("path", event.Name), zap.String("op", event.Op.String()))
			w.store.Invalidate()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("template catalog watcher error", zap.Error(err))
		}
	}
}

// debounce reports whether enough time has passed since the last accepted
// event for a new invalidation to fire.
func (w *Watcher) debounce() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	now := time.Now()
	if now.Sub(w.lastEvent) < w.debounceDur {
		return false
	}
	w.lastEvent = now
	return true
}
