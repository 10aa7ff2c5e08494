package watcher

import (
	"context"
	"time"
)

// StartPolling triggers detect() on a fixed interval.
func (w *ConfigWatcher) StartPolling(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.detect()
		}
	}
}
