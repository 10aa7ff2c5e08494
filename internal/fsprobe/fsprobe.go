// Package fsprobe checks whether fsnotify works reliably for a directory.
// It performs a real create+write+rename test to ensure events are delivered.
package fsprobe

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWait is how long Probe waits for the first event.
const DefaultWait = 200 * time.Millisecond

// Result reports whether fsnotify is usable and why.
type Result struct {
	FsnotifySupported bool   // true if events are delivered
	Reason            string // explanation when unsupported
}

// Probe tests whether fsnotify reports changes made in dir within wait.
// Network and FUSE mounts commonly accept watches but never deliver events.
func Probe(dir string, wait time.Duration) Result {
	st, err := os.Stat(dir)
	if err != nil {
		return Result{false, fmt.Sprintf("stat failed: %v", err)}
	}
	if !st.IsDir() {
		return Result{false, "not a directory"}
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return Result{false, fmt.Sprintf("fsnotify unavailable: %v", err)}
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return Result{false, fmt.Sprintf("cannot watch directory: %v", err)}
	}

	tmp, err := os.CreateTemp(dir, ".fsprobe-*")
	if err != nil {
		return Result{false, fmt.Sprintf("cannot create temp file: %v", err)}
	}
	_, _ = tmp.WriteString("probe")
	_ = tmp.Close()

	final := filepath.Join(dir, filepath.Base(tmp.Name())+".done")
	if err := os.Rename(tmp.Name(), final); err != nil {
		_ = os.Remove(tmp.Name())
		return Result{false, fmt.Sprintf("rename failed: %v", err)}
	}
	defer os.Remove(final)

	timeout := time.After(wait)
	for {
		select {
		case ev := <-w.Events:
			if ev.Op&(fsnotify.Rename|fsnotify.Create|fsnotify.Write) != 0 {
				return Result{true, ""}
			}
		case err := <-w.Errors:
			return Result{false, fmt.Sprintf("watch error: %v", err)}
		case <-timeout:
			return Result{false, "no events received"}
		}
	}
}
