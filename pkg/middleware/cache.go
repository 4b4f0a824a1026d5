package middleware

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type cacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

type ResponseCacheMiddleware struct {
	cache  cacheStore
	ttl    time.Duration
	logger *zap.Logger
}

func NewResponseCacheMiddleware(cache cacheStore, ttl time.Duration, logger *zap.Logger) *ResponseCacheMiddleware {
	return &ResponseCacheMiddleware{cache: cache, ttl: ttl, logger: logger}
}

// captureWriter buffers the response body while forwarding it to the client.
type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache serves GET responses from Redis for the configured TTL. Only 200
// responses are stored; a cache backend failure falls through to the handler.
func (m *ResponseCacheMiddleware) Cache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if c.Request().Method != http.MethodGet {
			return next(c)
		}

		ctx := c.Request().Context()
		key := "respcache:" + c.Request().URL.Path + "?" + c.Request().URL.RawQuery

		if cached, err := m.cache.Get(ctx, key); err == nil && cached != "" {
			c.Response().Header().Set("X-Cache", "HIT")
			return c.JSONBlob(http.StatusOK, []byte(cached))
		}

		cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
		c.Response().Writer = cw
		c.Response().Header().Set("X-Cache", "MISS")

		if err := next(c); err != nil {
			return err
		}

		if cw.status == http.StatusOK && cw.buf.Len() > 0 {
			if err := m.cache.Set(ctx, key, cw.buf.String(), m.ttl); err != nil {
				m.logger.Warn("failed to store response in cache", zap.String("key", key), zap.Error(err))
			}
		}
		return nil
	}
}
