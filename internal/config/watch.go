package config

import (
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay is how long the watcher waits for writes to settle before it
// reloads the file.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads the configuration file whenever it changes.
type Watcher struct {
	path      string
	fsWatcher *fsnotify.Watcher
	onChange  func(*Config)
	done      chan struct{}
	stopOnce  sync.Once

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher returns a watcher for the configuration file at path. onChange
// receives every valid configuration loaded after a change; it runs on the
// watcher goroutine.
func NewWatcher(path string, onChange func(*Config)) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		path:      path,
		fsWatcher: fsWatcher,
		onChange:  onChange,
		done:      make(chan struct{}),
	}, nil
}

// Start watches the directory of the configuration file. The directory is
// watched instead of the file so that atomic replacements by editors are
// seen, and so that the file may be created after startup.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	go w.processEvents()

	return nil
}

// Stop stops the watcher. Pending reloads are dropped.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
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
			log.Printf("config: watcher error: %v", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != filepath.Clean(w.path) {
		return
	}

	// Rename and Create cover editors that write a temporary file and move
	// it over the target.
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg, err := Load(w.path)
	if err != nil {
		log.Printf("config: keeping previous configuration: %v", err)
		return
	}

	w.onChange(cfg)
}
