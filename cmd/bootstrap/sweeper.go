package bootstrap

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"boardinghouse/internal/handler/middleware"
	"boardinghouse/internal/pkg/config"
	"boardinghouse/internal/usecase/commands"

	"go.uber.org/fx"
)

var SweeperModule = fx.Module("sweeper",
	fx.Invoke(startSweeper),
)

func startSweeper(
	lc fx.Lifecycle,
	cfg config.Config,
	sweeper commands.PaymentDeadlineSweeper,
	catalog *middleware.ResponseCache,
	logger *slog.Logger,
) {
	if !cfg.Sweeper.Enabled {
		logger.Info("payment deadline sweeper disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting payment deadline sweeper", "interval", cfg.Sweeper.Interval.String())
			wg.Add(1)
			go func() {
				defer wg.Done()
				runSweeps(ctx, sweeper, cfg.Sweeper.Interval, catalog.Flush, logger)
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			cancel()
			wg.Wait()
			logger.Info("payment deadline sweeper stopped")
			return nil
		},
	})
}

func runSweeps(ctx context.Context, sweeper commands.PaymentDeadlineSweeper, interval time.Duration, roomsReleased func(), logger *slog.Logger) {
	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			sweepOnce(ctx, sweeper, roomsReleased, logger)
			timer.Reset(interval)
		}
	}
}

// sweepOnce runs one sweep and calls roomsReleased when at least one booking was
// cancelled, even if the run stopped early.
func sweepOnce(ctx context.Context, sweeper commands.PaymentDeadlineSweeper, roomsReleased func(), logger *slog.Logger) {
	result, err := sweeper.Run(ctx)
	if result.Cancelled > 0 {
		roomsReleased()
	}
	if err != nil {
		logger.Error("payment deadline sweep failed", "error", err, "cancelled", result.Cancelled)
	}
}
