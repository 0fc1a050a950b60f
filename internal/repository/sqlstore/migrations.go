package sqlstore

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/lib/pq"

	"employee-app/config"
	"employee-app/internal/domain"
	"employee-app/internal/logger"
)

const postgresMaintenanceDB = "postgres"

// Bootstrapper creates the database and the employees table when they are
// missing. Safe to run on every startup.
type Bootstrapper struct {
	cfg     config.DatabaseConfig
	dialect Dialect
}

func NewBootstrapper(cfg config.DatabaseConfig) (*Bootstrapper, error) {
	dialect, err := DialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}
	return &Bootstrapper{cfg: cfg, dialect: dialect}, nil
}

// EnsureSchema returns a *domain.SchemaError on any failure.
func (b *Bootstrapper) EnsureSchema(ctx context.Context) error {
	if err := b.ensureDatabase(ctx); err != nil {
		return err
	}
	if err := b.ensureTable(ctx); err != nil {
		return err
	}
	logger.InfoLog(ctx, "schema ready (driver=%s, database=%s)", b.dialect.Driver, b.cfg.Name)
	return nil
}

func (b *Bootstrapper) ensureDatabase(ctx context.Context) error {
	if b.dialect.IsSqlite() {
		dir := filepath.Dir(b.cfg.SqlitePath())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return domain.NewSchemaError("create database", err)
		}
		return nil
	}

	db, err := b.connect(ctx, postgresMaintenanceDB)
	if err != nil {
		return err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)`, b.cfg.Name).Scan(&exists)
	if err != nil {
		return domain.NewSchemaError("create database", err)
	}
	if exists {
		return nil
	}
	// identifiers cannot be bound as parameters
	if _, err := db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(b.cfg.Name)); err != nil {
		return domain.NewSchemaError("create database", err)
	}
	logger.InfoLog(ctx, "created database %s", b.cfg.Name)
	return nil
}

func (b *Bootstrapper) ensureTable(ctx context.Context) error {
	db, err := b.connect(ctx, "")
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, b.dialect.CreateTable); err != nil {
		return domain.NewSchemaError("create table", err)
	}
	return nil
}

func (b *Bootstrapper) connect(ctx context.Context, dbName string) (*sql.DB, error) {
	db, err := sql.Open(b.dialect.Driver, b.dialect.DSN(b.cfg, dbName))
	if err != nil {
		return nil, domain.NewSchemaError("connect", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, domain.NewSchemaError("connect", err)
	}
	return db, nil
}
