package ratelimit

import (
	"strings"
	"time"
)

// Config holds rate limit budgets per endpoint category.
type Config struct {
	Enabled        bool
	RedisKeyPrefix string
	Limits         map[string]RateLimit
}

// DefaultConfig keeps credential endpoints on a tight budget and leaves
// everything else generous; only auth routes are limited at all.
func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		RedisKeyPrefix: "vms:ratelimit:",
		Limits: map[string]RateLimit{
			"auth_login": {
				RequestsPerMinute: 10,
				BurstSize:         5,
				WindowSize:        time.Minute,
			},
			"auth_password": {
				RequestsPerMinute: 5,
				BurstSize:         3,
				WindowSize:        time.Minute,
			},
			"user_create": {
				RequestsPerMinute: 10,
				BurstSize:         5,
				WindowSize:        time.Minute,
			},
			"default": {
				RequestsPerMinute: 60,
				BurstSize:         20,
				WindowSize:        time.Minute,
			},
		},
	}
}

// GetEndpointKey maps a "METHOD:path" endpoint to its limit category.
func (c *Config) GetEndpointKey(endpoint string) string {
	switch {
	case strings.HasSuffix(endpoint, "/auth/login"):
		return "auth_login"
	case strings.Contains(endpoint, "/auth/initiate-reset-password"),
		strings.Contains(endpoint, "/auth/reset-password"):
		return "auth_password"
	case strings.HasSuffix(endpoint, "/user/create"):
		return "user_create"
	default:
		return "default"
	}
}

// GetLimit resolves the budget for an endpoint.
func (c *Config) GetLimit(endpoint string) RateLimit {
	if limit, ok := c.Limits[c.GetEndpointKey(endpoint)]; ok {
		return limit
	}
	return c.Limits["default"]
}
