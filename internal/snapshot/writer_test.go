package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
	"github.com/raoulx24/ddl-archiver/internal/fs"
	"github.com/raoulx24/ddl-archiver/internal/logging"
)

func newTestWriter() *Writer {
	return NewWriter(nil, logging.Nop())
}

func TestLocationLayout(t *testing.T) {
	ts := time.Date(2024, 3, 9, 7, 5, 59, 0, time.Local)
	loc := Location{Root: "/b", Kind: catalog.Package, Name: "PKG_A", Timestamp: ts}

	assert.Equal(t, filepath.Join("/b", "package_backups"), KindDir("/b", catalog.Package))
	assert.Equal(t, filepath.Join("/b", "package_backups", "PKG_A", "2024-03-09_07-05"), loc.Dir())
	assert.Equal(t, filepath.Join("/b", "package_backups", "PKG_A", "2024-03-09_07-05", "PKG_A.sql"), loc.File())
}

func TestWriteRoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	w := newTestWriter()
	ddl := "CREATE OR REPLACE FUNCTION F1 RETURN NUMBER AS\nBEGIN\n  RETURN 1;\nEND;\n"

	loc, err := w.Write(ctx, root, catalog.Function, "F1", time.Now(), ddl)
	require.NoError(t, err)

	data, err := os.ReadFile(loc.File())
	require.NoError(t, err)
	assert.Equal(t, ddl, string(data))

	got, err := w.Read(loc)
	require.NoError(t, err)
	assert.Equal(t, ddl, got)
}

func TestWriteSameMinuteOverwrites(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	w := newTestWriter()
	minute := time.Date(2024, 5, 1, 12, 30, 0, 0, time.Local)

	first, err := w.Write(ctx, root, catalog.Procedure, "P1", minute.Add(5*time.Second), "v1")
	require.NoError(t, err)
	second, err := w.Write(ctx, root, catalog.Procedure, "P1", minute.Add(50*time.Second), "v2")
	require.NoError(t, err)
	assert.Equal(t, first.Dir(), second.Dir())

	later, err := w.Write(ctx, root, catalog.Procedure, "P1", minute.Add(time.Minute), "v3")
	require.NoError(t, err)
	assert.NotEqual(t, first.Dir(), later.Dir())

	got, err := w.Read(first)
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	snaps, err := List(fs.New(), ObjectDir(root, catalog.Procedure, "P1"))
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.True(t, snaps[0].Timestamp.Before(snaps[1].Timestamp))
}

func TestWriteFailureIsIoError(t *testing.T) {
	root := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(root, []byte("x"), 0o644))

	_, err := newTestWriter().Write(context.Background(), root, catalog.Package, "P", time.Now(), "ddl")
	require.Error(t, err)
	assert.True(t, IoError.Has(err))
}

func TestListSkipsForeignEntries(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "2024-01-02_03-04"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "notes"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024-01-03_03-04"), nil, 0o644))

	snaps, err := List(fs.New(), dir)
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, 2024, snaps[0].Timestamp.Year())

	snaps, err = List(fs.New(), filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, snaps)
}

func TestWriteRejectsPathNames(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "backups")
	w := newTestWriter()

	for _, name := range []string{"..", "../../OUT", "A/B", `A\B`} {
		_, err := w.Write(context.Background(), root, catalog.Package, name, time.Now(), "x")
		assert.True(t, IoError.Has(err), name)
		assert.True(t, catalog.InvalidNameError.Has(err), name)
	}

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
