//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"forget-bot/internal/handler/middleware"
	"forget-bot/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedRouter(limiter *middleware.RateLimiter, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/limited", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		c.Next()
	}, limiter.Limit(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func hit(router *gin.Engine) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/limited", nil)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimiter_Allow(t *testing.T) {
	limiter := middleware.NewRateLimiter(config.RateLimitConfig{
		RequestsPerMinute: 1,
		Burst:             2,
		EntryTTL:          time.Minute,
		MaxEntries:        10,
	})
	require.NotNil(t, limiter)

	assert.True(t, limiter.Allow("user:a"))
	assert.True(t, limiter.Allow("user:a"))
	assert.False(t, limiter.Allow("user:a"), "burst exhausted")
	assert.True(t, limiter.Allow("user:b"), "buckets are per key")
	assert.True(t, limiter.Allow(""), "empty key is never limited")
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := middleware.NewRateLimiter(config.RateLimitConfig{})

	assert.Nil(t, limiter)
	for i := 0; i < 5; i++ {
		assert.True(t, limiter.Allow("user:a"))
	}
}

func TestRateLimiter_Limit(t *testing.T) {
	cfg := config.RateLimitConfig{RequestsPerMinute: 1, Burst: 1, EntryTTL: time.Minute, MaxEntries: 10}

	t.Run("success: first request passes", func(t *testing.T) {
		router := newLimitedRouter(middleware.NewRateLimiter(cfg), "100000000000000001")
		assert.Equal(t, http.StatusNoContent, hit(router))
	})

	t.Run("error: second request from the same user is throttled", func(t *testing.T) {
		router := newLimitedRouter(middleware.NewRateLimiter(cfg), "100000000000000001")
		require.Equal(t, http.StatusNoContent, hit(router))
		assert.Equal(t, http.StatusTooManyRequests, hit(router))
	})

	t.Run("success: anonymous callers are keyed by client ip", func(t *testing.T) {
		router := newLimitedRouter(middleware.NewRateLimiter(cfg), "")
		require.Equal(t, http.StatusNoContent, hit(router))
		assert.Equal(t, http.StatusTooManyRequests, hit(router))
	})
}
