package knowledge

import (
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"shopmind/internal/logging"
)

// Watcher reloads a FileSource when the knowledge file changes on disk.
// Editors that replace files (rename + create) are handled by watching the
// parent directory rather than the file itself.
type Watcher struct {
	source  *FileSource
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// Watch starts watching the source's file. Close must be called to release
// the underlying watcher.
func Watch(source *FileSource) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create knowledge watcher: %w", err)
	}

	dir := filepath.Dir(source.path)
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	w := &Watcher{source: source, watcher: fw, done: make(chan struct{})}
	go w.loop(filepath.Clean(source.path))
	return w, nil
}

func (w *Watcher) loop(target string) {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.source.Reload(); err != nil {
				// Keep serving the previous tables.
				logging.KnowledgeWarn("knowledge reload failed: %v", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.KnowledgeWarn("knowledge watcher error: %v", err)
		}
	}
}

// Close stops the watcher and waits for the reload loop to exit.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	<-w.done
	return err
}
