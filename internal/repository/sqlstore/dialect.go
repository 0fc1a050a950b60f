package sqlstore

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"employee-app/config"
)

// Dialect holds what differs between the supported engines.
type Dialect struct {
	Driver      string
	CreateTable string
	dollarBinds bool
}

const createEmployeesTableSqlite = `
CREATE TABLE IF NOT EXISTS employees (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name VARCHAR(100) NOT NULL,
    department VARCHAR(50),
    salary DOUBLE
);
`

const createEmployeesTablePostgres = `
CREATE TABLE IF NOT EXISTS employees (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(100) NOT NULL,
    department VARCHAR(50),
    salary DOUBLE PRECISION
);
`

func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverSqlite3, config.DriverSqlite:
		return Dialect{Driver: driver, CreateTable: createEmployeesTableSqlite}, nil
	case config.DriverPostgres:
		return Dialect{Driver: driver, CreateTable: createEmployeesTablePostgres, dollarBinds: true}, nil
	}
	return Dialect{}, fmt.Errorf("unsupported driver %q", driver)
}

func (d Dialect) IsSqlite() bool {
	return d.Driver == config.DriverSqlite3 || d.Driver == config.DriverSqlite
}

// Rebind rewrites ? placeholders into $1, $2, ... for postgres. Queries in
// this package never carry a literal '?', so no quoting rules apply.
func (d Dialect) Rebind(query string) string {
	if !d.dollarBinds {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// DSN returns the data source for the configured database, or for the
// given database name when override is non-empty (postgres only).
func (d Dialect) DSN(cfg config.DatabaseConfig, override string) string {
	if d.IsSqlite() {
		return cfg.SqlitePath()
	}
	name := cfg.Name
	if override != "" {
		name = override
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Path:   "/" + name,
	}
	if cfg.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{cfg.SSLMode}}.Encode()
	}
	return u.String()
}
