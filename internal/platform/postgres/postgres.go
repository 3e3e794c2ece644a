// Package postgres opens and verifies GORM connections to PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const pingTimeout = 5 * time.Second

// Connect opens a PostgreSQL connection and pings it before returning.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// MaybeConnect dials PostgreSQL when a DSN is configured and returns the DB
// plus a cleanup function. A missing DSN or a failed dial is logged and yields
// nil, letting callers fall back to in-memory adapters.
func MaybeConnect(ctx context.Context, dsn string, logger *slog.Logger) (*gorm.DB, func()) {
	noop := func() {}
	if strings.TrimSpace(dsn) == "" {
		if logger != nil {
			logger.Warn("no postgres DSN configured, using in-memory persistence")
		}
		return nil, noop
	}
	db, err := Connect(ctx, dsn)
	if err != nil {
		if logger != nil {
			logger.Warn("postgres unreachable, using in-memory persistence",
				slog.String("error", err.Error()))
		}
		return nil, noop
	}
	sqlDB, err := db.DB()
	if err != nil {
		if logger != nil {
			logger.Warn("could not unwrap postgres connection, using in-memory persistence",
				slog.String("error", err.Error()))
		}
		return nil, noop
	}
	if logger != nil {
		logger.Info("postgres connection established")
	}
	return db, func() { _ = sqlDB.Close() }
}
