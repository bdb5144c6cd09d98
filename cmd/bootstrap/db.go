package bootstrap

import (
	"context"
	"log/slog"

	"boardinghouse/internal/infra/db"
	"boardinghouse/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

// DBModule is only part of the graph when STORE_DRIVER=postgres.
var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}
	logger.Info("connected to postgres",
		"host", cfg.DB.Host,
		"database", cfg.DB.DBName,
		"max_conns", pool.Config().MaxConns)

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			stat := pool.Stat()
			logger.Info("closing postgres pool",
				"acquired_conns", stat.AcquiredConns(),
				"total_conns", stat.TotalConns())
			cleanup()
			return nil
		},
	})

	return pool, nil
}
