package ratelimit

import "time"

// RateLimiter answers whether a request from a client to an endpoint is
// allowed, and if not, how long until the window resets.
type RateLimiter interface {
	Allow(clientID string, endpoint string) (bool, time.Duration, error)
}

// RateLimit describes the budget for one endpoint category.
type RateLimit struct {
	RequestsPerMinute int           `json:"requestsPerMinute"`
	BurstSize         int           `json:"burstSize"`
	WindowSize        time.Duration `json:"windowSize"`
}
