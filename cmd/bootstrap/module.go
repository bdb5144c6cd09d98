package bootstrap

import (
	"boardinghouse/cmd/bootstrap/components"
	"boardinghouse/internal/pkg/config"

	"go.uber.org/fx"
)

// Core is everything except the HTTP layer; cmd/sweep runs on it alone.
func Core(cfg config.Config) fx.Option {
	return fx.Options(
		ConfigModule(cfg),
		LoggerModule,
		JWTModule,
		persistence(cfg),
		components.UseCaseModule,
	)
}

// Server is the API process: the core plus handlers, router and the optional sweep ticker.
func Server(cfg config.Config) fx.Option {
	return fx.Options(
		Core(cfg),
		components.HandlerModule,
		SweeperModule,
	)
}

func persistence(cfg config.Config) fx.Option {
	if cfg.Store.Driver == config.StoreDriverMemory {
		return components.MemoryPersistenceModule
	}
	return fx.Options(
		DBModule,
		components.PersistenceModule,
	)
}
