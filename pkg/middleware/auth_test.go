package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"asset-tracker/pkg/constants"
	"asset-tracker/pkg/service"
	"asset-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupAuthTest(t *testing.T) (*echo.Echo, service.JWTService) {
	t.Helper()
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	mw := NewAuthMiddleware(jwtSvc, "session", zap.NewNop())

	e := echo.New()
	secure := e.Group("/api", mw.Auth)
	secure.GET("/me", func(c echo.Context) error {
		return c.String(http.StatusOK, utils.GetUsernameFromCtx(c.Request().Context()))
	})
	secure.GET("/admin", func(c echo.Context) error {
		return c.NoContent(http.StatusNoContent)
	}, mw.RequireAdmin)
	return e, jwtSvc
}

func TestAuthMiddleware(t *testing.T) {
	e, jwtSvc := setupAuthTest(t)

	userToken, err := jwtSvc.GenerateToken(2, "bob", constants.RoleUser)
	require.NoError(t, err)
	adminToken, err := jwtSvc.GenerateToken(1, "admin", constants.RoleAdmin)
	require.NoError(t, err)

	t.Run("no session", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("cookie session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: userToken})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "bob", rec.Body.String())
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Bearer "+userToken)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		req.Header.Set("Authorization", "Token "+userToken)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("admin route denies user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: userToken})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("admin route allows admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
		req.AddCookie(&http.Cookie{Name: "session", Value: adminToken})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}
