package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type counterStore interface {
	Incr(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
}

type RateLimitMiddleware struct {
	counters counterStore
	limit    int
	window   time.Duration
	logger   *zap.Logger
}

func NewRateLimitMiddleware(counters counterStore, limit int, window time.Duration, logger *zap.Logger) *RateLimitMiddleware {
	return &RateLimitMiddleware{counters: counters, limit: limit, window: window, logger: logger}
}

// Limit applies a fixed-window counter per client IP and route. The window
// TTL is set when the counter is first created. A counter backend failure
// fails open.
func (m *RateLimitMiddleware) Limit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		key := "ratelimit:" + c.Path() + ":" + c.RealIP()

		count, err := m.counters.Incr(ctx, key)
		if err != nil {
			m.logger.Warn("rate limit counter unavailable", zap.String("key", key), zap.Error(err))
			return next(c)
		}
		if count == 1 {
			if _, err := m.counters.Expire(ctx, key, m.window); err != nil {
				m.logger.Warn("failed to set rate limit window", zap.String("key", key), zap.Error(err))
			}
		}

		if count > int64(m.limit) {
			return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
				"error": "Rate limit exceeded. Try again later.",
			})
		}

		return next(c)
	}
}
