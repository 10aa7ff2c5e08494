package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
	"github.com/raoulx24/ddl-archiver/internal/fs"
	"github.com/raoulx24/ddl-archiver/internal/logging"
)

// Writer persists DDL text under the snapshot layout.
type Writer struct {
	fs  fs.FS
	log logging.Logger
}

// NewWriter creates a writer. A nil filesystem means the OS filesystem.
func NewWriter(filesystem fs.FS, log logging.Logger) *Writer {
	if filesystem == nil {
		filesystem = fs.New()
	}
	return &Writer{fs: filesystem, log: log}
}

// Write creates the snapshot folders and atomically writes ddl to the leaf
// file. A snapshot written in the same minute as an existing one replaces
// its file; older snapshots are never touched.
func (w *Writer) Write(ctx context.Context, root string, kind catalog.Kind, name string, ts time.Time, ddl string) (Location, error) {
	loc := Location{Root: root, Kind: kind, Name: name, Timestamp: ts}
	if err := catalog.CheckPathElement(name); err != nil {
		return Location{}, IoError.Wrap(err)
	}
	dir := loc.Dir()
	w.log.Debug("writing snapshot", "kind", kind, "name", name, "dir", dir)

	if err := w.fs.MkdirAll(dir); err != nil {
		return Location{}, IoError.Wrap(fmt.Errorf("creating %s: %w", dir, err))
	}

	file := loc.File()
	if err := w.fs.WriteFileAtomic(ctx, file, []byte(ddl)); err != nil {
		return Location{}, IoError.Wrap(fmt.Errorf("writing %s: %w", file, err))
	}
	return loc, nil
}

// Read returns the DDL stored at loc.
func (w *Writer) Read(loc Location) (string, error) {
	data, err := w.fs.ReadFile(loc.File())
	if err != nil {
		return "", IoError.Wrap(fmt.Errorf("reading %s: %w", loc.File(), err))
	}
	return string(data), nil
}
