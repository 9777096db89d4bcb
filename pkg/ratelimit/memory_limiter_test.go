package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Limits["auth_login"] = RateLimit{
		RequestsPerMinute: 60,
		BurstSize:         3,
		WindowSize:        time.Minute,
	}
	return cfg
}

func TestMemoryLimiter_AllowsWithinBurst(t *testing.T) {
	limiter := NewMemoryRateLimiter(testConfig())

	for i := 0; i < 3; i++ {
		allowed, _, err := limiter.Allow("user:1", "POST:/auth/login")
		require.NoError(t, err)
		assert.True(t, allowed, "request %d within burst", i+1)
	}
}

func TestMemoryLimiter_BlocksOverBurst(t *testing.T) {
	limiter := NewMemoryRateLimiter(testConfig())

	for i := 0; i < 3; i++ {
		_, _, err := limiter.Allow("user:1", "POST:/auth/login")
		require.NoError(t, err)
	}

	allowed, resetTime, err := limiter.Allow("user:1", "POST:/auth/login")
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.Greater(t, resetTime, time.Duration(0))
}

func TestMemoryLimiter_IsolatesClients(t *testing.T) {
	limiter := NewMemoryRateLimiter(testConfig())

	for i := 0; i < 3; i++ {
		_, _, err := limiter.Allow("user:1", "POST:/auth/login")
		require.NoError(t, err)
	}
	allowed, _, err := limiter.Allow("user:1", "POST:/auth/login")
	require.NoError(t, err)
	require.False(t, allowed)

	allowed, _, err = limiter.Allow("user:2", "POST:/auth/login")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryLimiter_IsolatesEndpointCategories(t *testing.T) {
	limiter := NewMemoryRateLimiter(testConfig())

	for i := 0; i < 3; i++ {
		_, _, err := limiter.Allow("user:1", "POST:/auth/login")
		require.NoError(t, err)
	}
	allowed, _, err := limiter.Allow("user:1", "POST:/auth/login")
	require.NoError(t, err)
	require.False(t, allowed)

	// The default category still has budget
	allowed, _, err = limiter.Allow("user:1", "GET:/vehicles")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestMemoryLimiter_RefillsOverTime(t *testing.T) {
	cfg := testConfig()
	// 600 per minute = 10 tokens per second
	cfg.Limits["auth_login"] = RateLimit{
		RequestsPerMinute: 600,
		BurstSize:         1,
		WindowSize:        time.Minute,
	}
	limiter := NewMemoryRateLimiter(cfg)

	allowed, _, err := limiter.Allow("user:1", "POST:/auth/login")
	require.NoError(t, err)
	require.True(t, allowed)

	allowed, _, err = limiter.Allow("user:1", "POST:/auth/login")
	require.NoError(t, err)
	require.False(t, allowed)

	time.Sleep(150 * time.Millisecond)

	allowed, _, err = limiter.Allow("user:1", "POST:/auth/login")
	require.NoError(t, err)
	assert.True(t, allowed, "bucket refills as time passes")
}

func TestMemoryLimiter_DisabledAllowsEverything(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	limiter := NewMemoryRateLimiter(cfg)

	for i := 0; i < 100; i++ {
		allowed, _, err := limiter.Allow("user:1", "POST:/auth/login")
		require.NoError(t, err)
		require.True(t, allowed)
	}
}

func TestConfig_EndpointKeys(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "auth_login", cfg.GetEndpointKey("POST:/auth/login"))
	assert.Equal(t, "auth_password", cfg.GetEndpointKey("POST:/auth/initiate-reset-password"))
	assert.Equal(t, "auth_password", cfg.GetEndpointKey("POST:/auth/reset-password"))
	assert.Equal(t, "user_create", cfg.GetEndpointKey("POST:/user/create"))
	assert.Equal(t, "default", cfg.GetEndpointKey("GET:/vehicles"))
}
