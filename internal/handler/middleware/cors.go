package middleware

import (
	"log/slog"
	"slices"

	"boardinghouse/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// headers the browser client reads from our responses
var exposedHeaders = []string{requestIDHeader, "X-Cache", "Retry-After"}

func NewCORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	// without any origin the browser keeps its same-origin policy
	if len(cfg.AllowOrigins) == 0 {
		slog.Warn("CORS disabled: no allowed origins configured")
		return func(c *gin.Context) { c.Next() }
	}
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeaders(cfg.AllowHeaders, requestIDHeader),
		ExposeHeaders:    withHeaders(cfg.ExposeHeaders, exposedHeaders...),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	// cookies cannot be sent to a wildcard origin
	if slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowOrigins = nil
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	}
	slog.Info("CORS middleware initialized",
		"allow_origins", cfg.AllowOrigins,
		"allow_credentials", corsCfg.AllowCredentials)
	return cors.New(corsCfg)
}

func withHeaders(base []string, extra ...string) []string {
	out := slices.Clone(base)
	for _, h := range extra {
		if !slices.Contains(out, h) {
			out = append(out, h)
		}
	}
	return out
}
