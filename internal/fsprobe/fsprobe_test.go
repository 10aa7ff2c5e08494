package fsprobe

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeRejectsNonDirectories(t *testing.T) {
	res := Probe(filepath.Join(t.TempDir(), "missing"), DefaultWait)
	assert.False(t, res.FsnotifySupported)
	assert.Contains(t, res.Reason, "stat failed")

	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	res = Probe(file, DefaultWait)
	assert.False(t, res.FsnotifySupported)
	assert.Equal(t, "not a directory", res.Reason)
}

func TestProbeCleansUp(t *testing.T) {
	dir := t.TempDir()
	res := Probe(dir, time.Second)
	if !res.FsnotifySupported {
		t.Logf("fsnotify unsupported here: %s", res.Reason)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
