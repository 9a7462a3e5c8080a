package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnector-backend/internal/delivery/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newLimitedRouter := func(cfg middleware.RateLimitConfig) *gin.Engine {
		r := gin.New()
		r.POST("/login", middleware.RateLimit(cfg), func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return r
	}

	t.Run("Should allow requests up to the limit and reject beyond it", func(t *testing.T) {
		// Unique prefix keeps the shared in-memory store isolated per test.
		router := newLimitedRouter(middleware.RateLimitConfig{
			Limit:     3,
			Window:    time.Minute,
			KeyPrefix: "rl:test:burst:",
		})

		for i := 0; i < 3; i++ {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "60", w.Header().Get("Retry-After"))
	})

	t.Run("Should reset the counter after the window elapses", func(t *testing.T) {
		router := newLimitedRouter(middleware.RateLimitConfig{
			Limit:     1,
			Window:    50 * time.Millisecond,
			KeyPrefix: "rl:test:window:",
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)

		time.Sleep(60 * time.Millisecond)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
