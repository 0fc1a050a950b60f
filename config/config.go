package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSqlite3  = "sqlite3"
	DriverSqlite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Database DatabaseConfig
	Telegram TelegramConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Driver          string
	Host            string
	Port            int
	Name            string
	User            string
	Password        string
	SSLMode         string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type TelegramConfig struct {
	Token    string
	ChatID   int64
	SendRate float64
}

type LogConfig struct {
	Level string
	File  string
}

// LoadOptions points Load at its sources. Empty fields are skipped.
type LoadOptions struct {
	EnvFile    string
	ConfigFile string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", DriverSqlite3)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "employee_db")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "")
	v.SetDefault("db.max_open_conns", 4)
	v.SetDefault("db.max_idle_conns", 2)
	v.SetDefault("db.conn_max_lifetime", 20*time.Minute)

	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.chat_id", 0)
	v.SetDefault("telegram.send_rate", 1.0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// Load reads the .env file, the environment and the optional YAML file, in
// that order of precedence: environment wins over the file, the file over
// the defaults.
func Load(opts LoadOptions) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", opts.ConfigFile, err)
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Driver:          strings.ToLower(v.GetString("db.driver")),
			Host:            v.GetString("db.host"),
			Port:            v.GetInt("db.port"),
			Name:            v.GetString("db.name"),
			User:            v.GetString("db.user"),
			Password:        v.GetString("db.password"),
			SSLMode:         v.GetString("db.sslmode"),
			Path:            v.GetString("db.path"),
			MaxOpenConns:    v.GetInt("db.max_open_conns"),
			MaxIdleConns:    v.GetInt("db.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("db.conn_max_lifetime"),
		},
		Telegram: TelegramConfig{
			Token:    v.GetString("telegram.token"),
			ChatID:   v.GetInt64("telegram.chat_id"),
			SendRate: v.GetFloat64("telegram.send_rate"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
			File:  v.GetString("log.file"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	db := c.Database
	switch db.Driver {
	case DriverSqlite3, DriverSqlite:
	case DriverPostgres:
		if db.Host == "" {
			return ErrInvalidConfig{Field: "db.host", Reason: "required for postgres"}
		}
		if db.Port <= 0 || db.Port > 65535 {
			return ErrInvalidConfig{Field: "db.port", Reason: fmt.Sprintf("%d is not a valid port", db.Port)}
		}
	default:
		return ErrInvalidConfig{Field: "db.driver", Reason: fmt.Sprintf("unsupported driver %q", db.Driver)}
	}
	if db.Name == "" {
		return ErrInvalidConfig{Field: "db.name", Reason: "must not be empty"}
	}
	if c.Telegram.SendRate <= 0 {
		return ErrInvalidConfig{Field: "telegram.send_rate", Reason: "must be positive"}
	}
	return nil
}

// SqlitePath is the database file used by the sqlite drivers.
func (d DatabaseConfig) SqlitePath() string {
	if d.Path != "" {
		return d.Path
	}
	return d.Name + ".db"
}

// RequireToken is checked by the telegram command only.
func (t TelegramConfig) RequireToken() error {
	if t.Token == "" {
		return ErrNoToken{}
	}
	return nil
}

type ErrNoToken struct{}

func (e ErrNoToken) Error() string {
	return "TELEGRAM_TOKEN is not set in the environment"
}

type ErrInvalidConfig struct {
	Field  string
	Reason string
}

func (e ErrInvalidConfig) Error() string {
	return "invalid config " + e.Field + ": " + e.Reason
}
