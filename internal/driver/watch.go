package driver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange every time path is written or recreated, until ctx is
// done. The parent directory is watched rather than the file itself, so
// editors that save by renaming a temporary file over path are still seen.
func Watch(ctx context.Context, path string, onChange func()) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	log.Infof("watching %s", path)

	for {
		select {
		case <-ctx.Done():
			log.Debugf("stopped watching %s", path)
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !affects(ev, target) {
				continue
			}
			log.Debugf("%s: %s", ev.Op, ev.Name)
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Errorf("watch %s: %s", path, err)
		}
	}
}

func affects(ev fsnotify.Event, target string) bool {
	if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	name, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return name == target
}
