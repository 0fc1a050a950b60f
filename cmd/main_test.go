package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee-app/config"
	"employee-app/internal/domain"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return sqliteConfigFor(t, config.DriverSqlite)
}

func sqliteConfigFor(t *testing.T, driver string) *config.Config {
	t.Helper()
	return &config.Config{
		Database: config.DatabaseConfig{
			Driver:       driver,
			Name:         "employee_db",
			Path:         filepath.Join(t.TempDir(), "employees.db"),
			MaxOpenConns: 2,
		},
		Telegram: config.TelegramConfig{SendRate: 1},
		Log:      config.LogConfig{Level: "error"},
	}
}

func TestRunMenuEndToEnd(t *testing.T) {
	for _, driver := range []string{config.DriverSqlite3, config.DriverSqlite} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			a, err := openApp(ctx, sqliteConfigFor(t, driver))
			require.NoError(t, err)
			defer a.Close()

			in := strings.NewReader(strings.Join([]string{
				"1", "Alice", "Engineering", "50000",
				"1", "Bob", "", "40000.5",
				"3", "1", "Alice Smith", "R&D", "55000",
				"4", "2",
				"2",
				"5",
			}, "\n") + "\n")
			var out bytes.Buffer

			require.NoError(t, runMenu(ctx, a, in, &out))

			got := out.String()
			assert.Contains(t, got, "✅ Employee added (ID 1).")
			assert.Contains(t, got, "✅ Employee added (ID 2).")
			assert.Contains(t, got, "✅ Updated.")
			assert.Contains(t, got, "✅ Deleted.")
			assert.Contains(t, got, "Alice Smith")
			assert.True(t, strings.HasSuffix(strings.TrimRight(got, "\n"), "Bye!"))

			employees, err := a.svc.ListAll(ctx)
			require.NoError(t, err)
			require.Len(t, employees, 1)
			assert.Equal(t, domain.Employee{ID: 1, Name: "Alice Smith", Department: "R&D", Salary: 55000}, employees[0])
		})
	}
}

func TestRunMenuAcceptsVeryLongLines(t *testing.T) {
	ctx := context.Background()
	a, err := openApp(ctx, sqliteConfig(t))
	require.NoError(t, err)
	defer a.Close()

	name := strings.Repeat("n", 70*1024)
	in := strings.NewReader("1\n" + name + "\nEng\n10\n5\n")
	var out bytes.Buffer

	require.NoError(t, runMenu(ctx, a, in, &out))
	assert.Contains(t, out.String(), "✅ Employee added (ID 1).")
	assert.True(t, strings.HasSuffix(strings.TrimRight(out.String(), "\n"), "Bye!"))
}

func TestRunInitCommand(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DB_DRIVER", config.DriverSqlite)
	t.Setenv("DB_PATH", filepath.Join(dir, "data", "employees.db"))
	t.Setenv("LOG_FILE", filepath.Join(dir, "app.log"))

	code := run([]string{"--env-file", filepath.Join(dir, "missing.env"), "init"})
	assert.Equal(t, 0, code)
	assert.FileExists(t, filepath.Join(dir, "data", "employees.db"))
	assert.FileExists(t, filepath.Join(dir, "app.log"))
}

func TestRunMenuSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	cfg := sqliteConfig(t)

	first, err := openApp(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, runMenu(ctx, first, strings.NewReader("1\nAlice\nEng\n100\n"), &bytes.Buffer{}))
	require.NoError(t, first.Close())

	second, err := openApp(ctx, cfg)
	require.NoError(t, err)
	defer second.Close()

	var out bytes.Buffer
	require.NoError(t, runMenu(ctx, second, strings.NewReader("2\n5\n"), &out))
	assert.Contains(t, out.String(), "Alice")
}

func TestOpenAppReportsSchemaError(t *testing.T) {
	cfg := sqliteConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	cfg.Database.Path = filepath.Join(blocker, "nested", "employees.db")

	_, err := openApp(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, domain.IsSchemaError(err))
}

func TestReportStartupError(t *testing.T) {
	var out bytes.Buffer
	reportStartupError(&out, domain.NewSchemaError("connect", errors.New("connection refused")))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Startup error: schema connect: connection refused", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Tip: "))
}

func TestParseCommands(t *testing.T) {
	testCases := []struct {
		args    []string
		command string
	}{
		{nil, "menu"},
		{[]string{"menu"}, "menu"},
		{[]string{"init"}, "init"},
		{[]string{"telegram"}, "telegram"},
		{[]string{"export", "-o", "out.xlsx"}, "export"},
	}
	for _, tc := range testCases {
		t.Run(tc.command, func(t *testing.T) {
			var cli CLI
			parser, err := newParser(&cli, context.Background())
			require.NoError(t, err)

			kctx, err := parser.Parse(tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.command, kctx.Command())
			assert.Equal(t, ".env", cli.EnvFile)
		})
	}
}

func TestParseExportOut(t *testing.T) {
	var cli CLI
	parser, err := newParser(&cli, context.Background())
	require.NoError(t, err)

	_, err = parser.Parse([]string{"--log-level", "debug", "export", "--out", "staff.xlsx"})
	require.NoError(t, err)
	assert.Equal(t, "debug", cli.LogLevel)
	assert.Equal(t, "staff.xlsx", filepath.Base(cli.Export.Out))
}
