// Package watcher reloads the configuration file when it changes.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/raoulx24/ddl-archiver/internal/config"
	"github.com/raoulx24/ddl-archiver/internal/fsprobe"
	"github.com/raoulx24/ddl-archiver/internal/logging"
)

// ConfigWatcher observes the config file and hands every valid new version
// to onChange. Invalid versions are logged and ignored.
type ConfigWatcher struct {
	mu sync.RWMutex

	path     string
	mode     string
	interval time.Duration
	debounce time.Duration

	log      logging.Logger
	onChange func(*config.Config)

	lastModTime time.Time
	lastSize    int64
}

// New creates a watcher for the config file at path.
func New(path string, cfg config.ReloadConfig, log logging.Logger, onChange func(*config.Config)) *ConfigWatcher {
	w := &ConfigWatcher{
		path:     path,
		mode:     cfg.Mode,
		interval: cfg.PollInterval,
		debounce: cfg.DebounceWindow,
		log:      log,
		onChange: onChange,
	}
	if st, err := os.Stat(path); err == nil {
		w.lastModTime, w.lastSize = st.ModTime(), st.Size()
	}
	return w
}

// Start chooses the correct watching strategy based on config and blocks
// until ctx is done.
func (w *ConfigWatcher) Start(ctx context.Context) error {
	switch w.mode {
	case "fsnotify":
		return w.StartFsNotify(ctx)

	case "poll":
		w.StartPolling(ctx)
		return nil

	case "", "auto":
		res := fsprobe.Probe(filepath.Dir(w.path), fsprobe.DefaultWait)
		if res.FsnotifySupported {
			return w.StartFsNotify(ctx)
		}
		w.log.Warn("fsnotify disabled, polling config", "reason", res.Reason)
		w.StartPolling(ctx)
		return nil

	default:
		return fmt.Errorf("unknown mode %q", w.mode)
	}
}

// detect reloads the config if the file changed since the last load.
func (w *ConfigWatcher) detect() {
	st, err := os.Stat(w.path)
	if err != nil {
		w.log.Warn("config stat failed", "path", w.path, "error", err)
		return
	}

	w.mu.Lock()
	changed := st.ModTime().After(w.lastModTime) || st.Size() != w.lastSize
	if changed {
		w.lastModTime, w.lastSize = st.ModTime(), st.Size()
	}
	w.mu.Unlock()
	if !changed {
		return
	}

	cfg, err := config.Load(w.path)
	if err != nil {
		w.log.Error("config reload failed", "path", w.path, "error", err)
		return
	}
	w.log.Info("config reloaded", "path", w.path)
	w.onChange(cfg)
}
