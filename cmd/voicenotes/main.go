package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mfriedel/voicenotes/config"
	"github.com/mfriedel/voicenotes/internal/api"
	"github.com/mfriedel/voicenotes/internal/app"
	"github.com/mfriedel/voicenotes/internal/cli"
	"github.com/mfriedel/voicenotes/internal/output"
)

func main() {
	if err := run(); err != nil {
		formatter := output.NewFormatter(os.Stderr)
		formatter.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer closeLog()

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initializing app: %w", err)
	}
	defer application.Close()

	deps := &cli.Dependencies{
		App:    application,
		Config: cfg,
	}

	err = cli.NewRootCmd(deps).Execute()
	if errors.Is(err, api.ErrUnauthorized) {
		// The stored token is dead; drop it so the next run asks for login.
		_ = application.Sessions.Clear()
	}
	return err
}

// initLogger writes diagnostics to a file in the state dir so they never
// interleave with user-facing output.
func initLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	path := filepath.Join(cfg.StateDir, "voicenotes.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})

	return slog.New(handler), func() { _ = f.Close() }, nil
}
