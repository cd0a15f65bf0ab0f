// Package config holds server settings and loads them from defaults, a config
// file, the environment and flags, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"time"

	"task-tracker-api/internal/logging"
)

const (
	DriverMemory = "memory"
	DriverMongo  = "mongo"
	DriverSQLite = "sqlite"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	HTTPAddr        string        `toml:"http_addr" yaml:"http_addr"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	MaxInFlight     int           `toml:"max_in_flight" yaml:"max_in_flight"`
	ClientOrigin    string        `toml:"client_origin" yaml:"client_origin"`
	Environment     string        `toml:"environment" yaml:"environment"`

	Store StoreConfig `toml:"store" yaml:"store"`
	Log   LogConfig   `toml:"log" yaml:"log"`
}

type StoreConfig struct {
	Driver            string        `toml:"driver" yaml:"driver"`
	MongoURI          string        `toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase     string        `toml:"mongo_database" yaml:"mongo_database"`
	SQLitePath        string        `toml:"sqlite_path" yaml:"sqlite_path"`
	ConnectRetries    int           `toml:"connect_retries" yaml:"connect_retries"`
	ConnectRetryDelay time.Duration `toml:"connect_retry_delay" yaml:"connect_retry_delay"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

func New() Config {
	return Config{
		HTTPAddr:        ":5000",
		ShutdownTimeout: time.Second * 10,
		MaxInFlight:     100,
		ClientOrigin:    "http://localhost:5173",
		Environment:     "development",
		Store: StoreConfig{
			Driver:            DriverMemory,
			MongoDatabase:     "tasktracker",
			SQLitePath:        "tasks.db",
			ConnectRetries:    5,
			ConnectRetryDelay: time.Second * 5,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite:
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("%w: store driver %q requires a mongo uri (MONGODB_URI)", ErrInvalidConfig, DriverMongo)
		}
	default:
		return fmt.Errorf("%w: unknown store driver %q", ErrInvalidConfig, c.Store.Driver)
	}

	if c.Store.Driver == DriverSQLite && c.Store.SQLitePath == "" {
		return fmt.Errorf("%w: store driver %q requires a database path", ErrInvalidConfig, DriverSQLite)
	}
	if c.HTTPAddr == "" {
		return fmt.Errorf("%w: http address is empty", ErrInvalidConfig)
	}
	if c.MaxInFlight <= 0 {
		return fmt.Errorf("%w: max in-flight requests must be positive, got %d", ErrInvalidConfig, c.MaxInFlight)
	}
	if c.Store.ConnectRetries < 0 {
		return fmt.Errorf("%w: connect retries must not be negative", ErrInvalidConfig)
	}
	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidConfig, c.Log.Level)
	}
	if !logging.ValidFormat(c.Log.Format) {
		return fmt.Errorf("%w: unknown log format %q", ErrInvalidConfig, c.Log.Format)
	}

	return nil
}
