package config

import "time"

type Config struct {
	Database     DatabaseConfig `yaml:"database"`
	Backup       BackupConfig   `yaml:"backup"`
	Schedule     ScheduleConfig `yaml:"schedule"`
	Logging      LoggingConfig  `yaml:"logging"`
	Metrics      MetricsConfig  `yaml:"metrics"`
	ConfigReload ReloadConfig   `yaml:"configReload"`
}

type DatabaseConfig struct {
	Driver      string `yaml:"driver"` // "oracle"
	DSN         string `yaml:"dsn"`    // wins over the discrete fields below
	Host        string `yaml:"host"`
	Port        int    `yaml:"port"`
	ServiceName string `yaml:"serviceName"`
	User        string `yaml:"user"`
	Password    string `yaml:"password"`
}

type BackupConfig struct {
	Root string `yaml:"root"` // defaults to the working directory
	// RetentionDays is optional; nil disables pruning.
	RetentionDays *int `yaml:"retentionDays"`
}

type ScheduleConfig struct {
	Jobs []JobConfig `yaml:"jobs"`
}

type JobConfig struct {
	Name string `yaml:"name"`
	Cron string `yaml:"cron"`
	Kind string `yaml:"kind"` // PACKAGE, PROCEDURE or FUNCTION
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // "info", "debug", etc.
	Format string `yaml:"format"` // "json", "console"
}

type MetricsConfig struct {
	// Textfile is a node_exporter textfile collector path. Empty disables export.
	Textfile string `yaml:"textfile"`
}

type ReloadConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Mode           string        `yaml:"mode"` // "auto", "poll", "fsnotify"
	PollInterval   time.Duration `yaml:"pollInterval"`
	DebounceWindow time.Duration `yaml:"debounceWindow"`
}
