package config

import (
	"fmt"
	"os"
	"time"
)

const (
	defaultDriver         = "oracle"
	defaultOraclePort     = 1521
	defaultLogLevel       = "info"
	defaultLogFormat      = "console"
	defaultReloadMode     = "auto"
	defaultPollInterval   = 5 * time.Second
	defaultDebounceWindow = 500 * time.Millisecond
)

// ApplyDefaults fills unset fields. The backup root falls back to the
// current working directory.
func (c *Config) ApplyDefaults() error {
	if c.Database.Driver == "" {
		c.Database.Driver = defaultDriver
	}
	if c.Database.Port == 0 && c.Database.Driver == defaultDriver {
		c.Database.Port = defaultOraclePort
	}

	if c.Backup.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolving working directory: %w", err)
		}
		c.Backup.Root = wd
	}

	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}

	if c.ConfigReload.Mode == "" {
		c.ConfigReload.Mode = defaultReloadMode
	}
	if c.ConfigReload.PollInterval <= 0 {
		c.ConfigReload.PollInterval = defaultPollInterval
	}
	if c.ConfigReload.DebounceWindow <= 0 {
		c.ConfigReload.DebounceWindow = defaultDebounceWindow
	}
	return nil
}
