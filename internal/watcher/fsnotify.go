package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// StartFsNotify triggers detect() when fsnotify reports changes to the
// config file. The directory is watched, not the file, because editors
// replace files by renaming over them.
func (w *ConfigWatcher) StartFsNotify(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	name := filepath.Base(w.path)

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				w.log.Error("events channel closed")
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			w.log.Debug("config event", "name", ev.Name, "op", ev.Op)

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, w.detect)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("fsnotify error", "error", err)
		}
	}
}
