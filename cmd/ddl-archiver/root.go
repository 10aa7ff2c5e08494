package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raoulx24/ddl-archiver/internal/backup"
	"github.com/raoulx24/ddl-archiver/internal/catalog"
	"github.com/raoulx24/ddl-archiver/internal/config"
	"github.com/raoulx24/ddl-archiver/internal/dbsession"
	"github.com/raoulx24/ddl-archiver/internal/logging"
	"github.com/raoulx24/ddl-archiver/internal/metrics"
	"github.com/raoulx24/ddl-archiver/internal/retention"
)

const defaultConfigFile = "config.yaml"

var (
	cfgFile       string
	rootDir       string
	retentionDays int
	dsn           string
	logLevel      string
	logFormat     string
)

var rootCmd = &cobra.Command{
	Use:   "ddl-archiver",
	Short: "Back up database object definitions as timestamped snapshots",
	Long: `ddl-archiver extracts the DDL of packages, procedures and functions and
stores each extraction under

  <root>/<kind>_backups/<NAME>/<YYYY-MM-DD>_<HH-MM>/<NAME>.sql

Snapshot folders older than --retention-days are pruned after every run.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       Version,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", defaultConfigFile, "config file path")
	pf.StringVar(&rootDir, "root", "", "backup root directory (default: config value, then working directory)")
	pf.IntVar(&retentionDays, "retention-days", 0, "delete snapshot folders older than this many days")
	pf.StringVar(&dsn, "dsn", "", "database connection string (overrides database.* config)")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFormat, "log-format", "", "log format: console, json")

	rootCmd.AddCommand(backupCmd, listCmd, snapshotsCmd, scheduleCmd, versionCmd)
}

// loadConfig reads the config file and applies flag overrides. A missing
// default config file is not an error.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	data, err := os.ReadFile(cfgFile)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config"):
		data = []byte{}
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg, err := config.Decode(data)
	if err != nil {
		return nil, err
	}

	applyOverrides(cmd, cfg)

	if err := cfg.ApplyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyOverrides copies explicitly set flags over cfg. It runs at startup
// and again on every reload so a reloaded file cannot undo them.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Backup.Root = rootDir
	}
	if flags.Changed("retention-days") {
		days := retentionDays
		cfg.Backup.RetentionDays = &days
	}
	if flags.Changed("dsn") {
		cfg.Database.DSN = dsn
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = logFormat
	}
}

// app holds what a command needs; close releases it.
type app struct {
	cfg     *config.Config
	log     logging.ZapLogger
	metrics *metrics.Collector
	session *dbsession.Session
	orch    *backup.Orchestrator
	sync    func() error
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, zl, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		log:     log,
		metrics: metrics.NewCollector(nil),
		sync:    zl.Sync,
	}, nil
}

// connect opens the database session and builds the orchestrator.
func (a *app) connect(ctx context.Context) error {
	sess, err := dbsession.Open(ctx, a.cfg.Database, a.log)
	if err != nil {
		return err
	}
	a.session = sess
	a.orch = backup.New(sess, a.settings(a.cfg), a.log, backup.WithMetrics(a.metrics))
	return nil
}

func (a *app) settings(cfg *config.Config) backup.Settings {
	return backup.Settings{
		Root:      cfg.Backup.Root,
		Retention: retention.FromDays(cfg.Backup.RetentionDays),
	}
}

func (a *app) flushMetrics() {
	if err := a.metrics.WriteTextfile(a.cfg.Metrics.Textfile); err != nil {
		a.log.Error("metrics export failed", "error", err)
	}
}

func (a *app) close() {
	a.flushMetrics()
	if a.session != nil {
		if err := a.session.Close(); err != nil {
			a.log.Warn("closing database session", "error", err)
		}
	}
	_ = a.sync()
}

// exitCode maps error classes to process exit codes.
func exitCode(err error) int {
	switch {
	case catalog.InvalidKindError.Has(err),
		catalog.InvalidNameError.Has(err),
		backup.MissingKindError.Has(err):
		return 2
	case catalog.NotFoundError.Has(err):
		return 3
	}
	return 1
}
