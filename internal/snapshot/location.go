package snapshot

import (
	"path/filepath"
	"time"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
)

// TimestampLayout names snapshot folders: date and minute of extraction.
const TimestampLayout = "2006-01-02_15-04"

// Location is where one snapshot lives:
// {root}/{kind}_backups/{name}/{YYYY-MM-DD}_{HH-MM}/{name}.sql
type Location struct {
	Root      string
	Kind      catalog.Kind
	Name      string
	Timestamp time.Time
}

// KindDir is the root of every snapshot of one kind.
func KindDir(root string, kind catalog.Kind) string {
	return filepath.Join(root, kind.Lower()+"_backups")
}

// ObjectDir holds every snapshot of one object.
func ObjectDir(root string, kind catalog.Kind, name string) string {
	return filepath.Join(KindDir(root, kind), name)
}

// Dir is the leaf folder of this snapshot.
func (l Location) Dir() string {
	return filepath.Join(ObjectDir(l.Root, l.Kind, l.Name), l.Timestamp.Format(TimestampLayout))
}

// File is the DDL file of this snapshot.
func (l Location) File() string {
	return filepath.Join(l.Dir(), l.Name+".sql")
}

func (l Location) String() string { return l.File() }
