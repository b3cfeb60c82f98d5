package app

import (
	"log"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// ShaderWatcher reports changes to a fixed set of shader files. It watches
// the parent directories, since editors often save by renaming over the file.
type ShaderWatcher struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	changed atomic.Bool
	done    chan struct{}
}

// NewShaderWatcher starts watching paths.
func NewShaderWatcher(paths ...string) (*ShaderWatcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &ShaderWatcher{
		watcher: fw,
		files:   make(map[string]bool, len(paths)),
		done:    make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}

	go w.loop()
	return w, nil
}

func (w *ShaderWatcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if w.files[filepath.Clean(ev.Name)] {
				w.changed.Store(true)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("shader watcher: %v", err)
		}
	}
}

// Changed reports whether a watched file changed since the last call.
func (w *ShaderWatcher) Changed() bool {
	return w.changed.Swap(false)
}

// Close stops watching and waits for the event loop to exit.
func (w *ShaderWatcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
