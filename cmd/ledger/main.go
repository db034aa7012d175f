package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"ledger/internal/cli"
	applog "ledger/internal/log"
	"ledger/internal/menu"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cli.LoadEnvFile(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg, err := cli.LoadAndValidateConfig("ledger", os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := cli.SetupLogger(cfg)

	svc, err := cli.InitStore(logger, cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open expense database %s: %v\n", cfg.DBPath, err)
		return 1
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.Error("Failed to close expense database", applog.FieldError, err)
		}
	}()
	logger.Info("Expense ledger ready",
		applog.FieldOperation, applog.OpStartup,
		applog.FieldDBPath, cfg.DBPath)

	ctx, stop := cli.GracefulShutdown(context.Background(), logger)
	defer stop()
	ctx = applog.NewContext(ctx, logger)

	m := menu.New(svc, os.Stdin, os.Stdout,
		menu.WithClearScreen(cfg.ClearScreen),
		menu.WithLogger(logger))
	if err := m.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger.Info("Expense ledger closed", applog.FieldOperation, applog.OpShutdown)
	return 0
}
