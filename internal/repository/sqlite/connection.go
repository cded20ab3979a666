// Package sqlite implements the repository on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"participium/config"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const timeLayout = time.RFC3339Nano

// SQLite wraps a database/sql handle on a modernc sqlite file.
type SQLite struct {
	baseCtx context.Context
	log     *zap.SugaredLogger
	db      *sql.DB
	cfg     config.SQLiteConfig
}

// New creates a SQLite repository instance.
func New(ctx context.Context, log *zap.SugaredLogger, cfg *config.Config) *SQLite {
	return &SQLite{
		baseCtx: ctx,
		log:     log.Named("repo.sqlite"),
		cfg:     cfg.SQLite,
	}
}

// OnStart opens the database file and applies migrations.
func (s *SQLite) OnStart(_ context.Context) error {
	db, err := sql.Open("sqlite", s.cfg.DSN())
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers; sqlite allows one at a time anyway.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(s.baseCtx); err != nil {
		_ = db.Close()
		return fmt.Errorf("ping sqlite: %w", err)
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return fmt.Errorf("goose dialect: %w", err)
	}
	migrateCtx, cancel := context.WithTimeout(s.baseCtx, s.cfg.MigrateTimeout)
	defer cancel()
	if err := goose.UpContext(migrateCtx, db, s.cfg.MigrationsDir); err != nil {
		_ = db.Close()
		return fmt.Errorf("migrate: %w", err)
	}

	s.db = db
	s.log.Infow("sqlite ready", "path", s.cfg.Path)
	return nil
}

// OnStop closes the database.
func (s *SQLite) OnStop(_ context.Context) error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func constraintCode(err error) (int, bool) {
	var se *msqlite.Error
	if errors.As(err, &se) {
		return se.Code(), true
	}
	return 0, false
}

// isConstraint matches the extended code, or the primary code plus message
// when the connection reports primary result codes only.
func isConstraint(err error, extended int, marker string) bool {
	code, ok := constraintCode(err)
	if !ok {
		return false
	}
	if code == extended {
		return true
	}
	return code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(err.Error(), marker)
}

func isUniqueViolation(err error) bool {
	return isConstraint(err, sqlite3.SQLITE_CONSTRAINT_UNIQUE, "UNIQUE")
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(timeLayout, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", v, err)
	}
	return t, nil
}
