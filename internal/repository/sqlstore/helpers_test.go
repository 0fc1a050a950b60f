package sqlstore

import (
	"context"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"employee-app/config"
)

func testConfig(t *testing.T) config.DatabaseConfig {
	t.Helper()
	return config.DatabaseConfig{
		Driver:       config.DriverSqlite,
		Name:         "employee_db",
		Path:         filepath.Join(t.TempDir(), "data", "employees.db"),
		MaxOpenConns: 2,
	}
}

// newTestRepo bootstraps a fresh sqlite file and returns a repo over it.
func newTestRepo(t *testing.T) (*SqlEmployeeRepo, config.DatabaseConfig) {
	t.Helper()
	return newTestRepoFor(t, config.DriverSqlite)
}

func newTestRepoFor(t *testing.T, driver string) (*SqlEmployeeRepo, config.DatabaseConfig) {
	t.Helper()
	ctx := context.Background()
	cfg := testConfig(t)
	cfg.Driver = driver

	b, err := NewBootstrapper(cfg)
	require.NoError(t, err)
	require.NoError(t, b.EnsureSchema(ctx))

	db, dialect, err := Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewSqlEmployeeRepo(db, dialect), cfg
}
