// Package watcher reloads settings when settings.yaml changes on disk.
package watcher

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/watchfire-io/pingwatch/internal/models"
)

const debounceDelay = 100 * time.Millisecond

// LoadFunc reads settings from disk.
type LoadFunc func() (*models.Settings, error)

// Watcher watches a single settings file and emits each successfully
// reloaded version.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	load      LoadFunc
	updates   chan *models.Settings
	done      chan struct{}
	stopOnce  sync.Once

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// New creates a watcher for path. load is called after each change.
func New(path string, load LoadFunc) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		load:      load,
		updates:   make(chan *models.Settings, 1),
		done:      make(chan struct{}),
	}, nil
}

// Updates delivers reloaded settings. Only the newest pending value is kept.
func (w *Watcher) Updates() <-chan *models.Settings {
	return w.updates
}

// Start watches the directory holding the settings file. Watching the
// directory catches editors that save by renaming a temp file.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	log.Printf("[watcher] Watching %s", w.path)
	go w.processEvents()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.debounceMu.Unlock()
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
			log.Printf("[watcher] error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return
	}

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	settings, err := w.load()
	if err != nil {
		log.Printf("[watcher] ignoring settings change: %v", err)
		return
	}

	// Replace any value the consumer has not picked up yet.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- settings:
	default:
	}
	log.Printf("[watcher] settings reloaded from %s", w.path)
}
