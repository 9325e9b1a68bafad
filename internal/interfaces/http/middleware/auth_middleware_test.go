package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"vendor-hub.backend/pkg/jwt"
)

func TestAuthMiddleware_BearerFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.NewJWTService("secret", time.Minute, time.Hour)

	r := gin.New()
	r.Use(AuthMiddleware(jwtService))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	t.Run("missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer invalid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		pair, err := jwtService.GenerateTokenPair(uuid.New(), "admin@vendorhub.io", "admin")
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	expiredJWT := jwt.NewJWTService("secret", -1*time.Second, time.Hour)
	pair, err := expiredJWT.GenerateTokenPair(uuid.New(), "admin@vendorhub.io", "admin")
	require.NoError(t, err)

	r := gin.New()
	r.Use(AuthMiddleware(expiredJWT))
	r.GET("/me", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Token has expired")
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(role string, withRole bool) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			if withRole {
				c.Set(UserRoleKey, role)
			}
			c.Next()
		})
		r.Use(RequireAdmin())
		r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusNoContent) })
		return r
	}

	t.Run("admin allowed", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("admin", true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		require.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("merchant forbidden", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("merchant", true).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("no role is unauthorized", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("", false).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestGetUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := GetUserID(c)
	require.False(t, ok)

	id := uuid.New()
	c.Set(UserIDKey, id)
	got, ok := GetUserID(c)
	require.True(t, ok)
	require.Equal(t, id, got)
}
