package bootstrap

import (
	"log/slog"

	"boardinghouse/internal/handler/middleware"
	"boardinghouse/internal/pkg/config"

	"go.uber.org/fx"
)

var LoggerModule = fx.Module("logger",
	fx.Provide(
		NewLogger,
		func(logger *middleware.Logger) *slog.Logger {
			return logger.GetSlogLogger()
		},
	),
	// install the slog default before anything else logs
	fx.Invoke(func(*middleware.Logger) {}),
)

// NewLogger also installs the logger as the slog default.
func NewLogger(cfg config.Config) *middleware.Logger {
	return middleware.NewLogger(cfg.Log)
}
