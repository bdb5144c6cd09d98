package components

import (
	"boardinghouse/internal/handler"
	"boardinghouse/internal/handler/api"
	"boardinghouse/internal/handler/middleware"
	"boardinghouse/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRoomHandler,
		api.NewBookingHandler,
		api.NewAdminHandler,
		middleware.NewAuthMiddleware,
		NewCatalogCache,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

// NewCatalogCache is the single room catalog cache of the process.
func NewCatalogCache(cfg config.Config) *middleware.ResponseCache {
	return middleware.NewResponseCache(cfg.Cache.RoomsTTL)
}

func newHandlers(
	auth *api.AuthHandler,
	rooms *api.RoomHandler,
	bookings *api.BookingHandler,
	admin *api.AdminHandler,
	catalog *middleware.ResponseCache,
) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Room:    rooms,
		Booking: bookings,
		Admin:   admin,
		Catalog: catalog,
	}
}
