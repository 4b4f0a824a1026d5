package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCounterStore struct {
	counts     map[string]int64
	incrErr    error
	expireKeys []string
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counts: map[string]int64{}}
}

func (f *fakeCounterStore) Incr(ctx context.Context, key string) (int64, error) {
	if f.incrErr != nil {
		return 0, f.incrErr
	}
	f.counts[key]++
	return f.counts[key], nil
}

func (f *fakeCounterStore) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	f.expireKeys = append(f.expireKeys, key)
	return true, nil
}

func rateLimitRequest(t *testing.T, handler echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/service-tickets/:id/assign-mechanic/:mechanic_id")
	require.NoError(t, handler(c))
	return rec
}

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	store := newFakeCounterStore()
	mw := NewRateLimitMiddleware(store, 3, time.Hour, zap.NewNop())

	handler := mw.Limit(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		rec := rateLimitRequest(t, handler)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
	// The window TTL is only set when the counter is created.
	assert.Len(t, store.expireKeys, 1)
}

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	store := newFakeCounterStore()
	mw := NewRateLimitMiddleware(store, 3, time.Hour, zap.NewNop())

	handler := mw.Limit(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	var rec *httptest.ResponseRecorder
	for i := 0; i < 4; i++ {
		rec = rateLimitRequest(t, handler)
	}
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"error": "Rate limit exceeded. Try again later."}`, rec.Body.String())
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	store := newFakeCounterStore()
	store.incrErr = fmt.Errorf("redis unavailable")
	mw := NewRateLimitMiddleware(store, 1, time.Hour, zap.NewNop())

	handler := mw.Limit(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	for i := 0; i < 5; i++ {
		rec := rateLimitRequest(t, handler)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
