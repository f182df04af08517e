package shader

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/logger"
	"github.com/fsnotify/fsnotify"
)

// sourceWatcher is the implementation of the SourceWatcher interface.
type sourceWatcher struct {
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]bool
	dirs  map[string]bool

	changes chan string
	errors  chan error
	done    chan struct{}
	once    sync.Once
}

// SourceWatcher reports shader files that changed on disk so a frame callback can recompile
// them. Watching a directory reports every file written inside it, which suits include
// directories.
type SourceWatcher interface {
	// Add starts watching files or directories.
	//
	// Parameters:
	//   - paths: the files or directories to watch
	//
	// Returns:
	//   - error: an error if a path cannot be watched
	Add(paths ...string) error

	// Changes delivers the cleaned path of every written, created or renamed watched file.
	Changes() <-chan string

	// Errors delivers errors reported by the file system watcher.
	Errors() <-chan error

	// Close stops watching and closes both channels.
	Close() error
}

var _ SourceWatcher = &sourceWatcher{}

// NewSourceWatcher creates a SourceWatcher watching paths.
//
// Parameters:
//   - paths: the files or directories to watch
//
// Returns:
//   - SourceWatcher: the watcher
//   - error: an error if the watcher cannot be created or a path cannot be watched
func NewSourceWatcher(paths ...string) (SourceWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &sourceWatcher{
		watcher: fw,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		changes: make(chan string, 16),
		errors:  make(chan error, 1),
		done:    make(chan struct{}),
	}
	if err := w.Add(paths...); err != nil {
		fw.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

func (w *sourceWatcher) Add(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, path := range paths {
		path = filepath.Clean(path)
		if isDir(path) {
			if err := w.watcher.Add(path); err != nil {
				return err
			}
			w.dirs[path] = true
			continue
		}
		// editors often replace files on save, so the parent directory is watched instead
		if err := w.watcher.Add(filepath.Dir(path)); err != nil {
			return err
		}
		w.files[path] = true
	}
	return nil
}

func (w *sourceWatcher) Changes() <-chan string {
	return w.changes
}

func (w *sourceWatcher) Errors() <-chan error {
	return w.errors
}

func (w *sourceWatcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *sourceWatcher) run() {
	defer close(w.changes)
	defer close(w.errors)
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			path := filepath.Clean(ev.Name)
			if !w.tracked(path) {
				continue
			}
			logger.Logger().Debug("shader source changed", "path", path, "op", ev.Op.String())
			select {
			case w.changes <- path:
			case <-w.done:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				logger.Logger().Warn("dropping shader watcher error", "error", err)
			}
		}
	}
}

func (w *sourceWatcher) tracked(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.files[path] || w.dirs[filepath.Dir(path)]
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
