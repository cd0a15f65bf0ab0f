package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Load builds a Config from:
// 1. Defaults
// 2. The config file at path, when path is not empty (.toml, .yaml or .yml)
// 3. The dotenv file at envFile, when it exists; it never overrides variables already set
// 4. Environment variables
//
// Flags are applied by the caller afterwards.
func Load(path, envFile string) (Config, error) {
	cfg := New()

	if path != "" {
		if err := loadConfigFile(&cfg, path); err != nil {
			return Config{}, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	}

	if err := loadFromEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("loading environment: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(cfg *Config, path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		_, err := toml.DecodeFile(path, cfg)
		return err
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
}

// loadFromEnv overrides config from environment variables. Empty values are ignored.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		cfg.HTTPAddr = ":" + v
	}
	if v := os.Getenv("TASKTRACKER_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("CLIENT_ORIGIN"); v != "" {
		cfg.ClientOrigin = v
	}
	if v := os.Getenv("NODE_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("MONGODB_URI"); v != "" {
		cfg.Store.MongoURI = v
	}
	if v := os.Getenv("TASKTRACKER_STORE"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("TASKTRACKER_MONGODB_DATABASE"); v != "" {
		cfg.Store.MongoDatabase = v
	}
	if v := os.Getenv("TASKTRACKER_SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("TASKTRACKER_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TASKTRACKER_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}

	if err := envInt("TASKTRACKER_MAX_IN_FLIGHT", &cfg.MaxInFlight); err != nil {
		return err
	}
	if err := envInt("TASKTRACKER_CONNECT_RETRIES", &cfg.Store.ConnectRetries); err != nil {
		return err
	}
	if err := envDuration("TASKTRACKER_SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout); err != nil {
		return err
	}
	if err := envDuration("TASKTRACKER_CONNECT_RETRY_DELAY", &cfg.Store.ConnectRetryDelay); err != nil {
		return err
	}

	return nil
}

func envInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func envDuration(key string, dst *time.Duration) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
