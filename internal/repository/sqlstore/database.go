package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"employee-app/config"
	"employee-app/internal/logger"
)

// Open returns a pinged connection pool for the configured database. The
// caller owns the pool and must Close it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, Dialect, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, Dialect{}, err
	}

	db, err := sql.Open(dialect.Driver, dialect.DSN(cfg, ""))
	if err != nil {
		return nil, Dialect{}, fmt.Errorf("open database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, Dialect{}, fmt.Errorf("ping database: %w", err)
	}
	logger.DebugLog(ctx, "connection pool ready (driver=%s, max_open=%d)", dialect.Driver, cfg.MaxOpenConns)
	return db, dialect, nil
}
