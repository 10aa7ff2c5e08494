package config

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
)

// Validate reports every problem found in the configuration outside the
// database section, which is checked by DatabaseConfig.Validate when a
// connection is opened.
func (c *Config) Validate() error {
	var errs []error

	if c.Backup.RetentionDays != nil && *c.Backup.RetentionDays < 0 {
		errs = append(errs, fmt.Errorf("backup.retentionDays must not be negative, got %d", *c.Backup.RetentionDays))
	}

	seen := map[string]bool{}
	for i, job := range c.Schedule.Jobs {
		if job.Name == "" {
			errs = append(errs, fmt.Errorf("schedule.jobs[%d]: name is required", i))
		} else if seen[job.Name] {
			errs = append(errs, fmt.Errorf("schedule.jobs[%d]: duplicate name %q", i, job.Name))
		}
		seen[job.Name] = true

		if _, err := catalog.ParseKind(job.Kind); err != nil {
			errs = append(errs, fmt.Errorf("schedule.jobs[%d]: %w", i, err))
		}
		if _, err := cron.ParseStandard(job.Cron); err != nil {
			errs = append(errs, fmt.Errorf("schedule.jobs[%d]: invalid cron %q: %w", i, job.Cron, err))
		}
	}

	switch c.ConfigReload.Mode {
	case "", "auto", "poll", "fsnotify":
	default:
		errs = append(errs, fmt.Errorf("configReload.mode: unknown mode %q", c.ConfigReload.Mode))
	}

	return errors.Join(errs...)
}

// Validate checks that the database section names a reachable target.
func (d DatabaseConfig) Validate() error {
	var errs []error

	switch d.Driver {
	case "", "oracle":
		if d.DSN == "" {
			if d.Host == "" {
				errs = append(errs, errors.New("database.host is required when database.dsn is empty"))
			}
			if d.ServiceName == "" {
				errs = append(errs, errors.New("database.serviceName is required when database.dsn is empty"))
			}
		}
	case "sqlite":
		if d.DSN == "" {
			errs = append(errs, errors.New("database.dsn is required for the sqlite driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("database.driver: unsupported driver %q", d.Driver))
	}

	return errors.Join(errs...)
}
