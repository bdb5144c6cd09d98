package bootstrap

import (
	"boardinghouse/internal/pkg/config"

	"go.uber.org/fx"
)

// ConfigModule supplies an already loaded config; main needs it before the graph
// is built to pick the persistence module.
func ConfigModule(cfg config.Config) fx.Option {
	return fx.Module("config",
		fx.Supply(cfg),
	)
}
