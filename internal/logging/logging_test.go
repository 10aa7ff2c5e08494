package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	for _, tc := range []struct {
		level, format string
		ok            bool
	}{
		{"", "", true},
		{"debug", "json", true},
		{"WARN", "console", true},
		{"loud", "json", false},
		{"info", "xml", false},
	} {
		_, zl, err := New(tc.level, tc.format)
		if !tc.ok {
			assert.Error(t, err, "%s/%s", tc.level, tc.format)
			continue
		}
		require.NoError(t, err, "%s/%s", tc.level, tc.format)
		_ = zl.Sync()
	}
}

func TestZapLoggerWith(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := Wrap(zap.New(core)).With("run", "r1")

	log.Debug("step", "n", 1)
	log.Warn("careful")
	log.Error("boom", "kind", "PACKAGE")

	entries := logs.All()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "r1", e.ContextMap()["run"])
	}
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
	assert.Equal(t, "PACKAGE", entries[2].ContextMap()["kind"])
}
