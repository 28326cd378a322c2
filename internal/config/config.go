package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config aggregates all runtime settings required by the application.
type Config struct {
	AppName     string `env:"APP_NAME" envDefault:"users-api"`
	Environment string `env:"APP_ENV" envDefault:"development"`
	HTTP        HTTPConfig
	Database    DatabaseConfig
	Context     ContextConfig
	Logger      LoggerConfig
	Migrations  MigrationsConfig
	Users       UsersConfig
}

type HTTPConfig struct {
	Host         string        `env:"SERVER_HOST" envDefault:"0.0.0.0"`
	Port         string        `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"120s"`
}

// DatabaseConfig points at the single SQLite file backing the users table.
type DatabaseConfig struct {
	Path        string        `env:"DB_PATH" envDefault:"users.db"`
	BusyTimeout time.Duration `env:"DB_BUSY_TIMEOUT" envDefault:"5s"`
}

type ContextConfig struct {
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`
}

type LoggerConfig struct {
	Level    string `env:"LOG_LEVEL" envDefault:"info"`
	Encoding string `env:"LOG_ENCODING" envDefault:"json"`
}

type MigrationsConfig struct {
	Enabled bool `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// UsersConfig holds the list pagination policy: limit defaults to DefaultListLimit
// and is clamped to MaxListLimit.
type UsersConfig struct {
	DefaultListLimit int `env:"USERS_DEFAULT_LIST_LIMIT" envDefault:"100"`
	MaxListLimit     int `env:"USERS_MAX_LIST_LIMIT" envDefault:"1000"`
}

// Load reads configuration from environment variables (optionally .env)
// and applies defaults so the service can boot without any setup.
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks invariants that env defaults cannot express.
func (c *Config) Validate() error {
	var errs []error
	if c.Database.Path == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty"))
	}
	if c.Users.DefaultListLimit <= 0 {
		errs = append(errs, errors.New("USERS_DEFAULT_LIST_LIMIT must be > 0"))
	}
	if c.Users.MaxListLimit < c.Users.DefaultListLimit {
		errs = append(errs, fmt.Errorf("USERS_MAX_LIST_LIMIT (%d) must be >= USERS_DEFAULT_LIST_LIMIT (%d)",
			c.Users.MaxListLimit, c.Users.DefaultListLimit))
	}
	return errors.Join(errs...)
}

// Address returns the HTTP listen address for the fasthttp server.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%s", c.HTTP.Host, c.HTTP.Port)
}
