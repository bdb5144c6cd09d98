package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"boardinghouse/internal/domain/user"
	"boardinghouse/internal/handler/api"
	"boardinghouse/internal/handler/middleware"
	"boardinghouse/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

// Handlers groups everything the router mounts. Catalog is shared with the sweep
// ticker so both flush the same room listing.
type Handlers struct {
	Auth    *api.AuthHandler
	Room    *api.RoomHandler
	Booking *api.BookingHandler
	Admin   *api.AdminHandler
	Catalog *middleware.ResponseCache
}

func NewRouter(engine *gin.Engine, cfg config.Config, logger *middleware.Logger, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	setupMiddleware(engine, cfg, logger)
	setupRoutes(engine, cfg, h, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config, logger *middleware.Logger) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(logger.LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(engine *gin.Engine, cfg config.Config, h Handlers, authMiddleware *middleware.AuthMiddleware) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	catalogCache := h.Catalog
	if catalogCache == nil {
		catalogCache = middleware.NewResponseCache(cfg.Cache.RoomsTTL)
	}
	invalidateCatalog := catalogCache.InvalidateOnSuccess()

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: h.Auth.Login},
				{Method: http.MethodPost, Path: "/refresh", Handler: h.Auth.Refresh},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodPost, Path: "/logout", Handler: h.Auth.Logout},
				{Method: http.MethodGet, Path: "/me", Handler: h.Auth.Me},
			})
		}

		rooms := apiGroup.Group("/rooms")
		rooms.Use(catalogCache.Cache())
		{
			addRoutes(rooms, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Room.List},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Room.Get},
			})
		}

		bookings := apiGroup.Group("/bookings")
		{
			addRoutes(bookings, []route{
				{
					Method:  http.MethodPost,
					Path:    "",
					Handler: h.Booking.Create,
					Mw:      []gin.HandlerFunc{middleware.RateLimiter(cfg.RateLimit), authMiddleware.OptionalAuth()},
				},
			})

			own := bookings.Group("")
			own.Use(authMiddleware.RequireAuth())
			addRoutes(own, []route{
				{Method: http.MethodGet, Path: "", Handler: h.Booking.ListMine},
				{Method: http.MethodPost, Path: "/claim", Handler: h.Booking.Claim},
				{Method: http.MethodGet, Path: "/:id", Handler: h.Booking.Get},
				{Method: http.MethodPost, Path: "/:id/cancel", Handler: h.Booking.Cancel, Mw: []gin.HandlerFunc{invalidateCatalog}},
				{Method: http.MethodPut, Path: "/:id/payment-proof", Handler: h.Booking.AttachPaymentProof},
			})
		}

		admin := apiGroup.Group("/admin")
		admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireRoleAtLeast(user.RoleAdmin))
		{
			addRoutes(admin, []route{
				{Method: http.MethodGet, Path: "/bookings", Handler: h.Admin.ListBookings},
				{Method: http.MethodPatch, Path: "/bookings/:id/status", Handler: h.Admin.ChangeStatus, Mw: []gin.HandlerFunc{invalidateCatalog}},
				{Method: http.MethodPost, Path: "/sweeps", Handler: h.Admin.Sweep, Mw: []gin.HandlerFunc{invalidateCatalog}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		handlers := append(append([]gin.HandlerFunc{}, r.Mw...), r.Handler)
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, handlers...)
		case http.MethodPost:
			g.POST(r.Path, handlers...)
		case http.MethodPut:
			g.PUT(r.Path, handlers...)
		case http.MethodPatch:
			g.PATCH(r.Path, handlers...)
		case http.MethodDelete:
			g.DELETE(r.Path, handlers...)
		default:
			g.Any(r.Path, handlers...)
		}
	}
}
