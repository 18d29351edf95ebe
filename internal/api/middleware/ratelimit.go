package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/minicrm/crm-api/internal/api/metrics"
)

// Allower is the request-counting contract the rate limiter depends on.
type Allower interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects callers that exceed the limiter's window, keyed by
// client IP. A limiter backend failure fails open: authentication must stay
// reachable when Redis is down.
func RateLimit(limiter Allower, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, retry later")
			}
			return next(c)
		}
	}
}
