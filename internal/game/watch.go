package game

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// FileWatcher reports changes to YAML files under a config tree.
type FileWatcher struct {
	Root     string
	onChange func(string) // called with path that changed
	logger   *zap.Logger
	watcher  *fsnotify.Watcher
	done     chan struct{}
	started  atomic.Bool
}

// NewFileWatcher watches root and every directory below it.
func NewFileWatcher(root string, onChange func(string), logger *zap.Logger) (*FileWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &FileWatcher{
		Root:     root,
		onChange: onChange,
		logger:   logger,
		watcher:  fw,
		done:     make(chan struct{}),
	}
	if err := w.addTree(root); err != nil {
		_ = fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *FileWatcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// Start begins delivering events in a goroutine.
func (w *FileWatcher) Start() {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer close(w.done)
		for {
			select {
			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handle(ev)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("config watcher error", zap.Error(err))
			}
		}
	}()
}

func (w *FileWatcher) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				w.logger.Warn("watching new directory", zap.String("path", ev.Name), zap.Error(err))
			}
			return
		}
	}
	if !isYAML(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
		w.logger.Debug("config changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
		if w.onChange != nil {
			w.onChange(ev.Name)
		}
	}
}

// Stop terminates the watcher and waits for the event loop to exit.
func (w *FileWatcher) Stop() {
	_ = w.watcher.Close()
	if w.started.Load() {
		<-w.done
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
