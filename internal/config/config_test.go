package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
database:
  host: db.local
  serviceName: ORCL
  user: scott
  password: $(DDL_ARCHIVER_TEST_PASSWORD)
backup:
  root: /var/backups/ddl
  retentionDays: 7
schedule:
  jobs:
    - name: nightly-packages
      cron: "0 2 * * *"
      kind: package
logging:
  level: debug
  format: json
configReload:
  enabled: true
  pollInterval: 2s
`

func TestLoad(t *testing.T) {
	t.Setenv("DDL_ARCHIVER_TEST_PASSWORD", "tiger")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "tiger", cfg.Database.Password)
	assert.Equal(t, "oracle", cfg.Database.Driver)
	assert.Equal(t, 1521, cfg.Database.Port)
	assert.Equal(t, "/var/backups/ddl", cfg.Backup.Root)
	require.NotNil(t, cfg.Backup.RetentionDays)
	assert.Equal(t, 7, *cfg.Backup.RetentionDays)
	require.Len(t, cfg.Schedule.Jobs, 1)
	assert.Equal(t, "package", cfg.Schedule.Jobs[0].Kind)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "auto", cfg.ConfigReload.Mode)
	assert.Equal(t, 2*time.Second, cfg.ConfigReload.PollInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.ConfigReload.DebounceWindow)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaults(t *testing.T) {
	cfg, err := Parse([]byte("database:\n  dsn: oracle://u:p@h:1521/S\n"))
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, wd, cfg.Backup.Root)
	assert.Nil(t, cfg.Backup.RetentionDays)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
	}{
		{"negative retention", "database: {dsn: x}\nbackup: {retentionDays: -1}\n"},
		{"bad kind", "database: {dsn: x}\nschedule: {jobs: [{name: a, cron: '@daily', kind: TABLE}]}\n"},
		{"bad cron", "database: {dsn: x}\nschedule: {jobs: [{name: a, cron: 'every day', kind: PACKAGE}]}\n"},
		{"duplicate job", "database: {dsn: x}\nschedule: {jobs: [{name: a, cron: '@daily', kind: PACKAGE}, {name: a, cron: '@daily', kind: FUNCTION}]}\n"},
		{"bad reload mode", "database: {dsn: x}\nconfigReload: {mode: inotify}\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestValidateIgnoresDatabase(t *testing.T) {
	cfg, err := Parse([]byte("backup: {root: /b}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/b", cfg.Backup.Root)
}

func TestDatabaseValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		db   DatabaseConfig
		ok   bool
	}{
		{"oracle dsn", DatabaseConfig{Driver: "oracle", DSN: "oracle://u:p@h/S"}, true},
		{"oracle fields", DatabaseConfig{Driver: "oracle", Host: "h", ServiceName: "S"}, true},
		{"missing host", DatabaseConfig{Driver: "oracle", ServiceName: "S"}, false},
		{"missing service", DatabaseConfig{Driver: "oracle", Host: "h"}, false},
		{"sqlite dsn", DatabaseConfig{Driver: "sqlite", DSN: "catalog.db"}, true},
		{"sqlite without dsn", DatabaseConfig{Driver: "sqlite"}, false},
		{"unknown driver", DatabaseConfig{Driver: "db2", DSN: "x"}, false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.db.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestExpandEnvVarsUnset(t *testing.T) {
	assert.Equal(t, "pw=", expandEnvVars("pw=$(DDL_ARCHIVER_SURELY_UNSET)"))
}
