// Package retention prunes snapshot folders older than a configured age.
package retention

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/zeebo/errs"

	"github.com/raoulx24/ddl-archiver/internal/fs"
	"github.com/raoulx24/ddl-archiver/internal/logging"
)

// SweepError marks a snapshot folder that could not be inspected or removed.
// It is never fatal.
var SweepError = errs.Class("retention sweep")

const secondsPerDay = 86400

// Threshold is the maximum age of a snapshot. The zero value disables pruning.
type Threshold struct {
	age     time.Duration
	enabled bool
}

// Disabled never prunes anything.
var Disabled = Threshold{}

// Days returns a threshold of n days.
func Days(n int) Threshold {
	return Threshold{age: time.Duration(n) * secondsPerDay * time.Second, enabled: true}
}

// FromDays converts an optional day count; nil disables pruning.
func FromDays(n *int) Threshold {
	if n == nil {
		return Disabled
	}
	return Days(*n)
}

func (t Threshold) Enabled() bool      { return t.enabled }
func (t Threshold) Age() time.Duration { return t.age }

func (t Threshold) String() string {
	if !t.enabled {
		return "disabled"
	}
	return t.age.String()
}

type Sweeper struct {
	fs  fs.FS
	log logging.Logger
	now func() time.Time
}

// New creates a sweeper. A nil filesystem means the OS filesystem.
func New(filesystem fs.FS, log logging.Logger) *Sweeper {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Sweeper{fs: filesystem, log: log, now: time.Now}
}

// WithClock replaces the clock used to compute folder ages.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Sweep walks objectsRoot/<object>/<snapshot> and removes every snapshot
// folder whose age exceeds threshold. It returns the number of folders
// removed. Failures on single folders are logged and skipped; the error is
// non-nil only when objectsRoot itself cannot be listed.
func (s *Sweeper) Sweep(ctx context.Context, objectsRoot string, threshold Threshold) (int, error) {
	if !threshold.Enabled() {
		s.log.Debug("retention disabled, skipping sweep", "root", objectsRoot)
		return 0, nil
	}

	objects, err := s.list(objectsRoot)
	if err != nil || objects == nil {
		return 0, err
	}

	now := s.now()
	deleted := 0
	for _, obj := range objects {
		if !obj.IsDir {
			continue
		}
		if err := ctx.Err(); err != nil {
			return deleted, err
		}

		snaps, err := s.fs.ReadDir(obj.Path)
		if err != nil {
			s.log.Error("retention: cannot list folder", "path", obj.Path, "error", SweepError.Wrap(err))
			continue
		}
		deleted += s.prune(snaps, now, threshold)
	}

	s.summarize(objectsRoot, deleted, threshold)
	return deleted, nil
}

// SweepObject prunes the snapshot folders of a single object directory.
func (s *Sweeper) SweepObject(ctx context.Context, objectDir string, threshold Threshold) (int, error) {
	if !threshold.Enabled() {
		s.log.Debug("retention disabled, skipping sweep", "root", objectDir)
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	snaps, err := s.list(objectDir)
	if err != nil || snaps == nil {
		return 0, err
	}

	deleted := s.prune(snaps, s.now(), threshold)
	s.summarize(objectDir, deleted, threshold)
	return deleted, nil
}

// list reads dir; a missing dir yields (nil, nil).
func (s *Sweeper) list(dir string) ([]fs.FileInfo, error) {
	entries, err := s.fs.ReadDir(dir)
	if err == nil {
		return entries, nil
	}
	if os.IsNotExist(err) {
		s.log.Debug("nothing to sweep", "root", dir)
		return nil, nil
	}
	err = SweepError.Wrap(fmt.Errorf("listing %s: %w", dir, err))
	s.log.Error("retention: sweep failed", "root", dir, "error", err)
	return nil, err
}

func (s *Sweeper) prune(snaps []fs.FileInfo, now time.Time, threshold Threshold) int {
	deleted := 0
	for _, snap := range snaps {
		if !snap.IsDir {
			continue
		}
		age := now.Sub(snap.Created)
		if age <= threshold.Age() {
			continue
		}
		if err := s.fs.RemoveAll(snap.Path); err != nil {
			s.log.Error("retention: cannot delete folder", "path", snap.Path, "age", age, "error", SweepError.Wrap(err))
			continue
		}
		deleted++
		s.log.Info("deleted old snapshot folder", "path", snap.Path, "age", age)
	}
	return deleted
}

func (s *Sweeper) summarize(root string, deleted int, threshold Threshold) {
	if deleted == 0 {
		s.log.Info("no snapshots older than threshold", "root", root, "threshold", threshold)
		return
	}
	s.log.Info("retention sweep completed", "root", root, "deleted", deleted, "threshold", threshold)
}
