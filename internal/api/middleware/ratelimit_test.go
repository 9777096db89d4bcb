package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vms-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitedRouter(enabled bool) *gin.Engine {
	gin.SetMode(gin.TestMode)

	cfg := ratelimit.DefaultConfig()
	cfg.Enabled = enabled
	cfg.Limits["auth_login"] = ratelimit.RateLimit{
		RequestsPerMinute: 2,
		BurstSize:         2,
		WindowSize:        time.Minute,
	}

	limiter := ratelimit.NewMemoryRateLimiter(cfg)

	router := gin.New()
	router.POST("/auth/login", RateLimitMiddleware(limiter, cfg), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	return router
}

func doLogin(router *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/auth/login", nil)
	req.Header.Set("X-Forwarded-For", ip)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_BlocksAfterBurst(t *testing.T) {
	router := setupRateLimitedRouter(true)

	for i := 0; i < 2; i++ {
		w := doLogin(router, "192.168.1.1")
		assert.Equal(t, http.StatusOK, w.Code, "request %d within burst", i+1)
	}

	w := doLogin(router, "192.168.1.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "Rate limit exceeded")
}

func TestRateLimitMiddleware_PerClient(t *testing.T) {
	router := setupRateLimitedRouter(true)

	for i := 0; i < 2; i++ {
		doLogin(router, "192.168.1.1")
	}
	w := doLogin(router, "192.168.1.1")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	// A different client still has a full budget
	w = doLogin(router, "10.0.0.2")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	router := setupRateLimitedRouter(false)

	for i := 0; i < 10; i++ {
		w := doLogin(router, "192.168.1.1")
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_SetsLimitHeaders(t *testing.T) {
	router := setupRateLimitedRouter(true)

	w := doLogin(router, "192.168.1.1")
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "60", w.Header().Get("X-RateLimit-Window"))
}
