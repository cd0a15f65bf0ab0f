package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"task-tracker-api/internal/config"
	router "task-tracker-api/internal/http"
	"task-tracker-api/internal/http/handlers"
	"task-tracker-api/internal/logging"
	"task-tracker-api/internal/service"
	"task-tracker-api/internal/store"
	"task-tracker-api/internal/store/memory"
	"task-tracker-api/internal/store/mongo"
	"task-tracker-api/internal/store/sqlite"
	"task-tracker-api/internal/workerpool"
)

// ServeOptions holds flags for the serve command. Flags that are set win over
// every other configuration source.
type ServeOptions struct {
	ConfigFile string
	EnvFile    string
	Addr       string
	Store      string
	LogLevel   string
}

func NewServeCommand() *cobra.Command {
	return newServeCommand(&ServeOptions{})
}

func newServeCommand(opts *ServeOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the task tracker HTTP API until interrupted.

Example:
  tasktracker serve
  tasktracker serve --store sqlite --addr :8080
  tasktracker serve --config tasktracker.toml --log-level debug`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "path to a .toml or .yaml config file")
	cmd.Flags().StringVar(&opts.EnvFile, "env-file", ".env", "path to a dotenv file; ignored when missing")
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "listen address, e.g. :5000")
	cmd.Flags().StringVar(&opts.Store, "store", "", "storage driver (memory|sqlite|mongo)")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")

	return cmd
}

func (o *ServeOptions) resolve(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.ConfigFile, o.EnvFile)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.HTTPAddr = o.Addr
	}
	if flags.Changed("store") {
		cfg.Store.Driver = o.Store
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = o.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

type backend struct {
	store  store.TaskStore
	pinger handlers.Pinger
	close  func(context.Context) error
}

func openStore(ctx context.Context, cfg config.StoreConfig, logger *log.Logger) (backend, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return backend{
			store: memory.New(),
			close: func(context.Context) error { return nil },
		}, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return backend{}, err
		}
		return backend{
			store: s,
			close: func(context.Context) error { return s.Close() },
		}, nil

	case config.DriverMongo:
		s, err := mongo.Connect(ctx, mongo.Options{
			URI:        cfg.MongoURI,
			Database:   cfg.MongoDatabase,
			Retries:    cfg.ConnectRetries,
			RetryDelay: cfg.ConnectRetryDelay,
		}, logger)
		if err != nil {
			return backend{}, err
		}
		return backend{store: s, pinger: s, close: s.Close}, nil

	default:
		return backend{}, fmt.Errorf("%w: unknown store driver %q", config.ErrInvalidConfig, cfg.Driver)
	}
}

// serve runs the API until ctx is done, then drains requests and closes the store.
func serve(ctx context.Context, cfg config.Config, logOut io.Writer) error {
	logger := logging.New(logOut, cfg.Log.Level, cfg.Log.Format)

	b, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	svc, err := service.New(b.store)
	if err != nil {
		_ = b.close(context.Background())
		return fmt.Errorf("service initiation failed: %w", err)
	}

	pool := workerpool.New(cfg.MaxInFlight)
	handler := handlers.New(svc, logger)
	health := handlers.NewHealth(cfg.Environment, cfg.Store.Driver, b.pinger)

	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: router.New(handler, health, router.Options{
			Logger:       logger,
			Pool:         pool,
			ClientOrigin: cfg.ClientOrigin,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr, "store", cfg.Store.Driver, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shut down signal received")
	case err := <-serveErr:
		runErr = fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown server: %w", err))
	}
	if err := pool.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("shutdown pool: %w", err))
	}
	if err := b.close(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("close store: %w", err))
	}

	if runErr == nil {
		logger.Info("shut down gracefully")
	}
	return runErr
}
