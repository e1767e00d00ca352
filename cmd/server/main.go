/*
main.go - Application entry point

PURPOSE:
  Starts the compound interest calculator server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env (if present) and environment configuration
  2. Apply command-line flag overrides, validate
  3. Open the preset store (SQLite or memory) and seed the catalog
  4. Create API handler, start the cache janitor
  5. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (overrides PORT, default: 8080)
  -db      SQLite database path (overrides SQLITE_DB_PATH)
           Use ":memory:" for an in-memory database
  -env     Path of a .env file to load (default: .env)

ENVIRONMENT:
  PORT, SQLITE_DB_PATH, PRESET_BACKEND (sqlite|memory), PRESETS_FILE,
  LOG_LEVEL, LOG_FORMAT (text|json), CACHE_SIZE, CACHE_TTL,
  CACHE_CLEANUP_INTERVAL, INPUT_POLICY (coerce|reject), DEFAULT_LOCALE,
  ALLOWED_ORIGINS

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Stop the cache janitor
  4. Close the preset store
  5. Exit

EXAMPLES:
  ./server -db="./data/presets.db"
  PRESET_BACKEND=memory INPUT_POLICY=reject ./server -port=3000

SEE ALSO:
  - api/server.go: Router configuration
  - config/config.go: Environment settings
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/accruemind/accrual-engine/api"
	"github.com/accruemind/accrual-engine/config"
	"github.com/accruemind/accrual-engine/logging"
	"github.com/accruemind/accrual-engine/presets"
	"github.com/accruemind/accrual-engine/store/memory"
	"github.com/accruemind/accrual-engine/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	port := flag.Int("port", 0, "HTTP server port")
	dbPath := flag.String("db", "", "SQLite database path")
	envFile := flag.String("env", ".env", "Path of a .env file to load")
	flag.Parse()

	if err := config.LoadEnvFile(*envFile); err != nil {
		return err
	}

	cfg := config.Load()
	if *port != 0 {
		cfg.Port = *port
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Output: os.Stdout})
	slog.SetDefault(logger)
	appLog := logging.WithComponent(logger, logging.ComponentApp)

	// Open preset store
	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	opts := api.OptionsFromConfig(cfg)
	if cfg.PresetsFile != "" {
		extra, err := presets.LoadFile(cfg.PresetsFile)
		if err != nil {
			return err
		}
		opts.ExtraPresets = extra
	}

	handler, err := api.NewHandler(store, logger, opts)
	if err != nil {
		return err
	}
	if _, _, err := handler.SeedPresets(context.Background()); err != nil {
		appLog.Warn("failed to seed presets", logging.FieldError, err)
	}

	janitor := api.NewCacheJanitor(handler.Memo(), logger)
	janitor.Interval = cfg.CleanupInterval
	janitor.Start()
	defer janitor.Stop()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewRouter(handler),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLog.Info("server starting", "addr", fmt.Sprintf("http://localhost:%d", cfg.Port),
			"preset_backend", cfg.PresetBackend, "input_policy", cfg.InputPolicy)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-quit:
	}

	appLog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLog.Info("server stopped")
	return nil
}

func openStore(cfg *config.Config, logger *slog.Logger) (presets.Store, func(), error) {
	storeLog := logging.WithComponent(logger, logging.ComponentStorage)

	if cfg.PresetBackend == "memory" {
		storeLog.Info("using in-memory preset store")
		return memory.New(), func() {}, nil
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open preset store: %w", err)
	}
	storeLog.Info("using sqlite preset store", "path", cfg.DBPath)

	return store, func() { closeQuietly(store, storeLog) }, nil
}

func closeQuietly(c io.Closer, logger *slog.Logger) {
	if err := c.Close(); err != nil {
		logger.Warn("close failed", logging.FieldError, err)
	}
}
