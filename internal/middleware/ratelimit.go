package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/ratelimit"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

// RateLimit allows limit requests per client IP and window for a route
// group. Store failures let the request through.
func RateLimit(
	store ratelimit.Store,
	group string,
	limit int,
	window time.Duration,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 {
			c.Next()
			return
		}

		key := "rl:" + group + ":" + c.ClientIP()
		n, err := store.Incr(c.Request.Context(), key, window)
		if err != nil {
			logger.WarnContext(c.Request.Context(), "rate limit store unavailable", "error", err)
			c.Next()
			return
		}

		if n > int64(limit) {
			metrics.RateLimited.WithLabelValues(group).Inc()
			httperr.TooManyRequests(c, "rate_limited", "Too many requests. Please slow down.")
			return
		}

		c.Next()
	}
}
