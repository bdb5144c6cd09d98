// Command sweep cancels approved bookings whose payment deadline has passed, then exits.
// It is safe to run repeatedly from cron or any other scheduler.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"boardinghouse/cmd/bootstrap"
	"boardinghouse/internal/pkg/config"
	"boardinghouse/internal/usecase/commands"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	var sweeper commands.PaymentDeadlineSweeper
	app := fx.New(
		bootstrap.Core(cfg),
		fx.Populate(&sweeper),
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	result, runErr := sweeper.Run(ctx)

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop cleanly", "error", err)
	}

	if runErr != nil {
		slog.Error("payment deadline sweep failed", "error", runErr)
		os.Exit(1)
	}
	slog.Info("payment deadline sweep finished",
		"candidates", result.Candidates,
		"cancelled", result.Cancelled,
		"skipped", result.Skipped,
		"failed", result.Failed)
	if result.Failed > 0 {
		os.Exit(2)
	}
}
