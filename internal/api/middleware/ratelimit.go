package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"vms-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimitMiddleware throttles requests per client per endpoint
// category. A limiter failure lets the request through rather than
// blocking traffic on a degraded backend.
func RateLimitMiddleware(limiter ratelimit.RateLimiter, cfg *ratelimit.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		clientID := getClientID(c)
		endpoint := fmt.Sprintf("%s:%s", c.Request.Method, c.Request.URL.Path)

		allowed, resetTime, err := limiter.Allow(clientID, endpoint)
		if err != nil {
			c.Header("X-RateLimit-Error", "Rate limiter unavailable")
			c.Next()
			return
		}

		limit := cfg.GetLimit(endpoint)
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit.RequestsPerMinute))
		c.Header("X-RateLimit-Window", strconv.Itoa(int(limit.WindowSize.Seconds())))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(resetTime.Seconds())))
			c.Header("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetTime).Unix(), 10))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":    "Rate limit exceeded",
				"retryAfter": int(resetTime.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// getClientID keys the limiter on the authenticated user when present,
// falling back to the caller's IP.
func getClientID(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		if uid, ok := userID.(string); ok && uid != "" {
			return "user:" + uid
		}
	}
	return "ip:" + getClientIP(c)
}

func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		return strings.TrimSpace(ips[0])
	}
	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}
	return c.ClientIP()
}
