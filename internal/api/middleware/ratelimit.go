package middleware

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/securecontent/workspace-api/internal/api/metrics"
	"github.com/securecontent/workspace-api/internal/core/domain"
)

// Counter counts hits per key inside a fixed window. Backed by the Redis
// WindowCounter in production.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimit bounds requests per client IP and route inside a fixed window.
// When the counter backend is unreachable the request is allowed through
// (fail-open): losing Redis must not take authentication down with it.
func RateLimit(counter Counter, limit int64, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := "ratelimit:" + c.Path() + ":" + c.RealIP()

			count, err := counter.Incr(c.Request().Context(), key, window)
			if err != nil {
				log.Warn().Err(err).Str("key", key).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if count > limit {
				metrics.RateLimitRejectionsTotal.WithLabelValues(c.Path()).Inc()
				return domain.E(domain.KindRateLimited, "too many requests, try again later")
			}
			return next(c)
		}
	}
}
