package middleware

import (
	"log/slog"
	"slices"
	"strings"

	"storefront-checkout/internal/pkg/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const IdempotentReplayedHeader = "Idempotent-Replayed"

// NewCORSMiddleware applies the configured policy. Browser checkouts cannot
// retry safely without the idempotency headers, so those are added to any
// CORS_* override that leaves them out.
func NewCORSMiddleware(cfg config.CORSConfig, logger *slog.Logger) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowMethods:     cfg.AllowMethods,
		AllowHeaders:     withHeaders(cfg.AllowHeaders, "Authorization", IdempotencyKeyHeader, RequestIDHeader),
		ExposeHeaders:    withHeaders(cfg.ExposeHeaders, IdempotentReplayedHeader, RequestIDHeader),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	}
	logger.Info("cors configured",
		slog.Any("origins", corsCfg.AllowOrigins),
		slog.Any("expose_headers", corsCfg.ExposeHeaders))
	return cors.New(corsCfg)
}

func withHeaders(configured []string, required ...string) []string {
	out := slices.Clone(configured)
	for _, h := range required {
		if !slices.ContainsFunc(out, func(c string) bool { return strings.EqualFold(c, h) }) {
			out = append(out, h)
		}
	}
	return out
}
