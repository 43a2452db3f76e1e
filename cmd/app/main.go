package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/LuckyDraw_Go/internal/bootstrap"
	"github.com/osse101/LuckyDraw_Go/internal/config"
)

const shutdownTimeout = 15 * time.Second

// @title LuckyDraw API
// @version 1.0
// @description Lucky draw sessions: load participants and prizes, draw winners group by group, reveal them live.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// Load reads .env first, so validation sees the same variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	warnings, err := config.ValidateEnvWithWarnings()
	if err != nil {
		return fmt.Errorf("environment validation failed: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	for _, w := range warnings {
		slog.Warn(w)
	}

	app, err := bootstrap.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := app.Server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-serverErr:
		if runErr != nil {
			slog.Error("Server failed", "error", runErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, app)
	return runErr
}
