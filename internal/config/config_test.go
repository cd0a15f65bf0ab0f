package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "TASKTRACKER_ADDR", "CLIENT_ORIGIN", "NODE_ENV", "APP_ENV", "MONGODB_URI",
	"TASKTRACKER_STORE", "TASKTRACKER_MONGODB_DATABASE", "TASKTRACKER_SQLITE_PATH",
	"TASKTRACKER_LOG_LEVEL", "TASKTRACKER_LOG_FORMAT", "TASKTRACKER_MAX_IN_FLIGHT",
	"TASKTRACKER_CONNECT_RETRIES", "TASKTRACKER_SHUTDOWN_TIMEOUT", "TASKTRACKER_CONNECT_RETRY_DELAY",
}

// unsetEnv removes every variable Load reads for the duration of the test.
func unsetEnv(t *testing.T) {
	t.Helper()

	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	unsetEnv(t)

	cfg, err := Load("", "")
	require.NoError(t, err)

	assert.Equal(t, New(), cfg)
	assert.Equal(t, ":5000", cfg.HTTPAddr)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_TOML(t *testing.T) {
	unsetEnv(t)
	path := writeFile(t, "tasktracker.toml", `
http_addr = ":9000"
max_in_flight = 7

[store]
driver = "sqlite"
sqlite_path = "/var/lib/tasks.db"
connect_retry_delay = "250ms"

[log]
format = "json"
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.HTTPAddr)
	assert.Equal(t, 7, cfg.MaxInFlight)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/var/lib/tasks.db", cfg.Store.SQLitePath)
	assert.Equal(t, 250*time.Millisecond, cfg.Store.ConnectRetryDelay)
	assert.Equal(t, "json", cfg.Log.Format)
	// untouched keys keep their defaults
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "tasktracker", cfg.Store.MongoDatabase)
}

func TestLoad_YAML(t *testing.T) {
	unsetEnv(t)
	path := writeFile(t, "tasktracker.yaml", `
shutdown_timeout: 3s
store:
  driver: mongo
  mongo_uri: mongodb://db:27017
log:
  level: debug
`)

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://db:27017", cfg.Store.MongoURI)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	unsetEnv(t)
	path := writeFile(t, "tasktracker.ini", "x=1")

	_, err := Load(path, "")
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	unsetEnv(t)
	path := writeFile(t, "tasktracker.toml", `http_addr = ":9000"`)

	t.Setenv("PORT", "5001")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("TASKTRACKER_STORE", "mongo")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("TASKTRACKER_MAX_IN_FLIGHT", "3")
	t.Setenv("TASKTRACKER_SHUTDOWN_TIMEOUT", "1s")

	cfg, err := Load(path, "")
	require.NoError(t, err)

	assert.Equal(t, ":5001", cfg.HTTPAddr)
	assert.Equal(t, DriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Store.MongoURI)
	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, 3, cfg.MaxInFlight)
	assert.Equal(t, time.Second, cfg.ShutdownTimeout)
}

func TestLoad_BadEnvNumber(t *testing.T) {
	unsetEnv(t)
	t.Setenv("TASKTRACKER_MAX_IN_FLIGHT", "lots")

	_, err := Load("", "")
	assert.ErrorContains(t, err, "TASKTRACKER_MAX_IN_FLIGHT")
}

func TestLoad_DotEnv(t *testing.T) {
	unsetEnv(t)
	envFile := writeFile(t, ".env", "CLIENT_ORIGIN=http://example.test\nTASKTRACKER_LOG_LEVEL=warn\n")

	// real environment wins over the dotenv file
	t.Setenv("TASKTRACKER_LOG_LEVEL", "error")

	cfg, err := Load("", envFile)
	require.NoError(t, err)

	assert.Equal(t, "http://example.test", cfg.ClientOrigin)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_MissingDotEnvIgnored(t *testing.T) {
	unsetEnv(t)

	_, err := Load("", filepath.Join(t.TempDir(), ".env"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	sqliteWithoutPath := func(c *Config) {
		c.Store.Driver = DriverSQLite
		c.Store.SQLitePath = ""
	}

	cases := map[string]func(*Config){
		"unknown driver":      func(c *Config) { c.Store.Driver = "postgres" },
		"mongo without uri":   func(c *Config) { c.Store.Driver = DriverMongo },
		"sqlite without path": sqliteWithoutPath,
		"empty addr":          func(c *Config) { c.HTTPAddr = "" },
		"zero in-flight":      func(c *Config) { c.MaxInFlight = 0 },
		"negative retries":    func(c *Config) { c.Store.ConnectRetries = -1 },
		"unknown log level":   func(c *Config) { c.Log.Level = "loud" },
		"unknown log format":  func(c *Config) { c.Log.Format = "xml" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := New()
			mutate(&cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
