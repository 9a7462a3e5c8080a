package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnector-backend/internal/delivery/http/middleware"
	"devconnector-backend/internal/domain"
	"devconnector-backend/pkg/token"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateRouter(tokens domain.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/private", middleware.AuthMiddleware(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(string(domain.KeyUserID))})
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	svc := token.NewService("test-secret", time.Minute)
	router := newGateRouter(svc)

	t.Run("Should reject request without token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "No token, authorization denied")
	})

	t.Run("Should reject invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token is not valid")
	})

	t.Run("Should pass valid bearer token and expose the user id", func(t *testing.T) {
		signed, err := svc.Issue("user-123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-123")
	})

	t.Run("Should accept the legacy x-auth-token header", func(t *testing.T) {
		signed, err := svc.Issue("user-123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("x-auth-token", signed)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-123")
	})

	t.Run("Should reject expired token", func(t *testing.T) {
		expired := token.NewService("test-secret", -time.Minute)
		signed, err := expired.Issue("user-123")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
