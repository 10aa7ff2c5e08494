// Package dbsession implements catalog.Session on database/sql.
package dbsession

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	go_ora "github.com/sijms/go-ora/v2"
	_ "modernc.org/sqlite"

	"github.com/raoulx24/ddl-archiver/internal/catalog"
	"github.com/raoulx24/ddl-archiver/internal/config"
	"github.com/raoulx24/ddl-archiver/internal/logging"
)

// Session runs catalog queries over one *sql.DB. Queries are issued one at
// a time by the orchestrator; the pool is capped to a single connection.
type Session struct {
	db      *sql.DB
	dialect Dialect
	log     logging.Logger
}

// New wraps an open database.
func New(db *sql.DB, dialect Dialect, log logging.Logger) *Session {
	return &Session{db: db, dialect: dialect, log: log}
}

// Open connects using the database section of the config.
func Open(ctx context.Context, cfg config.DatabaseConfig, log logging.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	dialect, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if dsn == "" && dialect.Name == Oracle.Name {
		dsn = go_ora.BuildUrl(cfg.Host, cfg.Port, cfg.ServiceName, cfg.User, cfg.Password, nil)
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s connection: %w", dialect.Name, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to %s: %w", describe(cfg), err)
	}

	log.Info("database session opened", "driver", dialect.Name, "target", describe(cfg))
	return New(db, dialect, log), nil
}

func dialectFor(driver string) (Dialect, error) {
	switch driver {
	case "", "oracle":
		return Oracle, nil
	case "sqlite":
		return SQLite, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}

// describe names the target without credentials.
func describe(cfg config.DatabaseConfig) string {
	if cfg.DSN != "" {
		return "dsn"
	}
	return fmt.Sprintf("%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.ServiceName)
}

// Close releases the connection pool.
func (s *Session) Close() error {
	return s.db.Close()
}

func (s *Session) ListObjects(ctx context.Context, kind catalog.Kind) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.ListObjects, string(kind))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	s.log.Debug("listed objects", "kind", kind, "count", len(names))
	return names, nil
}

func (s *Session) CountMatching(ctx context.Context, kind catalog.Kind, name string) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, s.dialect.CountMatching, string(kind), name).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// GetDDL returns the definition as a plain string; LOB values are read in
// full by the scan, before the row is released.
func (s *Session) GetDDL(ctx context.Context, kind catalog.Kind, name string) (string, error) {
	var ddl sql.NullString
	err := s.db.QueryRowContext(ctx, s.dialect.GetDDL, string(kind), name).Scan(&ddl)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", catalog.ErrNoDDL
	case err != nil && s.dialect.NotFound != nil && s.dialect.NotFound(err):
		return "", catalog.NotFoundError.Wrap(err)
	case err != nil:
		return "", err
	case !ddl.Valid:
		return "", catalog.ErrNoDDL
	}
	return ddl.String, nil
}
