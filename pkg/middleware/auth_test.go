package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mechanic-system/pkg/service"
	"mechanic-system/pkg/utils"
)

func newAuthTestContext(t *testing.T, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	jwtSvc := service.NewJWTService("test-secret", time.Hour, zap.NewNop())
	mw := NewAuthMiddleware(jwtSvc, zap.NewNop())

	c, rec := newAuthTestContext(t, "")
	err := mw.Auth(func(c echo.Context) error {
		t.Fatal("handler should not be called")
		return nil
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Authorization header missing"}`, rec.Body.String())
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	jwtSvc := service.NewJWTService("test-secret", time.Hour, zap.NewNop())
	mw := NewAuthMiddleware(jwtSvc, zap.NewNop())

	for _, header := range []string{"Token abc", "Bearer", "Bearer a b"} {
		c, rec := newAuthTestContext(t, header)
		err := mw.Auth(func(c echo.Context) error { return nil })(c)

		require.NoError(t, err)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.JSONEq(t, `{"error": "Invalid token format"}`, rec.Body.String())
	}
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	expired := service.NewJWTService("test-secret", -time.Minute, zap.NewNop())
	token, err := expired.GenerateToken(1)
	require.NoError(t, err)

	mw := NewAuthMiddleware(service.NewJWTService("test-secret", time.Hour, zap.NewNop()), zap.NewNop())

	c, rec := newAuthTestContext(t, "Bearer "+token)
	require.NoError(t, mw.Auth(func(c echo.Context) error { return nil })(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error": "Token expired"}`, rec.Body.String())
}

func TestAuthMiddleware_ValidTokenInjectsCustomerID(t *testing.T) {
	jwtSvc := service.NewJWTService("test-secret", time.Hour, zap.NewNop())
	token, err := jwtSvc.GenerateToken(99)
	require.NoError(t, err)

	mw := NewAuthMiddleware(jwtSvc, zap.NewNop())

	c, rec := newAuthTestContext(t, "Bearer "+token)
	err = mw.Auth(func(c echo.Context) error {
		id, err := utils.CustomerIDFromContext(c.Request().Context())
		require.NoError(t, err)
		assert.Equal(t, uint64(99), id)
		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
