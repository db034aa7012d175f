// Package cli provides the start-up steps of cmd/ledger: environment file,
// configuration, logging, storage and signal handling.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"ledger/internal/config"
	applog "ledger/internal/log"
	"ledger/internal/services"
	"ledger/internal/storage"
)

// DefaultEnvFile is read when LEDGER_ENV_FILE is unset.
const DefaultEnvFile = ".env"

// LoadEnvFile loads LEDGER_ENV_FILE (or .env) into the environment.
// A missing file is not an error; variables already set are kept.
func LoadEnvFile() error {
	path := os.Getenv("LEDGER_ENV_FILE")
	if path == "" {
		path = DefaultEnvFile
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

// LoadAndValidateConfig reads the environment, applies command-line
// overrides from args and validates the result. It returns pflag.ErrHelp
// when help was requested.
func LoadAndValidateConfig(name string, args []string) (*config.Config, error) {
	cfg := config.Load()

	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	cfg.BindFlags(flags)
	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SetupLogger builds the process logger for cfg and makes it the slog default.
func SetupLogger(cfg *config.Config) *applog.Logger {
	logCfg := applog.DefaultConfig()
	if level, err := applog.ParseLevel(cfg.LogLevel); err == nil {
		logCfg.Level = level
	}
	logger := applog.New(logCfg)
	applog.SetDefault(logger)
	return logger
}

// InitStore opens the SQLite ledger at dbPath and wraps it in the expense
// service. The caller closes the service.
func InitStore(logger *applog.Logger, dbPath string) (*services.ExpenseService, error) {
	repo, err := storage.NewSQLiteRepository(dbPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository",
			applog.FieldError, err,
			applog.FieldDBPath, dbPath)
		return nil, err
	}
	logger.Debug("SQLite repository opened", applog.FieldDBPath, repo.Path())
	return services.NewExpenseService(repo), nil
}

// GracefulShutdown returns a context cancelled on SIGINT or SIGTERM.
// The returned stop function releases the signal handler.
func GracefulShutdown(ctx context.Context, logger *applog.Logger) (context.Context, func()) {
	ctx, cancel := context.WithCancel(ctx)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("Shutdown signal received", applog.FieldSignal, sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
