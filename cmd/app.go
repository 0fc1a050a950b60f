package main

import (
	"context"
	"database/sql"
	"io"

	"employee-app/config"
	"employee-app/internal/app/service"
	"employee-app/internal/delivery/console"
	"employee-app/internal/delivery/menu"
	"employee-app/internal/domain"
	"employee-app/internal/logger"
	"employee-app/internal/repository/sqlstore"
)

type app struct {
	cfg *config.Config
	db  *sql.DB
	svc *service.EmployeeService
}

func loadConfig(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{EnvFile: g.EnvFile, ConfigFile: g.Config})
	if err != nil {
		return nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	logger.InitLogging(cfg.Log)
	return cfg, nil
}

// openApp bootstraps the schema, then opens the pool the store runs on.
func openApp(ctx context.Context, cfg *config.Config) (*app, error) {
	b, err := sqlstore.NewBootstrapper(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := b.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	db, dialect, err := sqlstore.Open(ctx, cfg.Database)
	if err != nil {
		return nil, domain.NewSchemaError("connect", err)
	}

	repo := sqlstore.NewSqlEmployeeRepo(db, dialect)
	return &app{cfg: cfg, db: db, svc: service.NewEmployeeService(repo)}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

func startup(ctx context.Context, g *Globals) (*app, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	return openApp(ctx, cfg)
}

func runMenu(ctx context.Context, a *app, in io.Reader, out io.Writer) error {
	return menu.NewController(a.svc, console.New(in, out)).Run(ctx)
}
