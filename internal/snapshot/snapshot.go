// Package snapshot writes object definitions into the timestamped snapshot
// layout and reads them back.
package snapshot

import (
	"os"
	"sort"
	"time"

	"github.com/zeebo/errs"

	"github.com/raoulx24/ddl-archiver/internal/fs"
)

// IoError wraps every filesystem failure of the snapshot layer.
var IoError = errs.Class("snapshot io")

// Snapshot represents a single archived snapshot folder.
type Snapshot struct {
	Path      string
	Timestamp time.Time
	Created   time.Time
}

// List returns the snapshot folders under an object directory, oldest
// first. Folders whose name is not a snapshot timestamp are skipped.
// A missing directory yields no snapshots.
func List(f fs.FS, objectDir string) ([]Snapshot, error) {
	entries, err := f.ReadDir(objectDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, IoError.Wrap(err)
	}

	var snaps []Snapshot
	for _, e := range entries {
		if !e.IsDir {
			continue
		}
		ts, err := time.ParseInLocation(TimestampLayout, e.Name, time.Local)
		if err != nil {
			continue
		}
		snaps = append(snaps, Snapshot{Path: e.Path, Timestamp: ts, Created: e.Created})
	}

	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Timestamp.Before(snaps[j].Timestamp)
	})
	return snaps, nil
}
