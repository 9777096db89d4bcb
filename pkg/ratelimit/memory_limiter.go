package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// MemoryRateLimiter implements RateLimiter with in-process token buckets.
type MemoryRateLimiter struct {
	config  *Config
	buckets map[string]*tokenBucket
	mu      sync.Mutex
}

type tokenBucket struct {
	tokens     float64
	capacity   float64
	lastRefill time.Time
}

// NewMemoryRateLimiter creates a new in-memory rate limiter
func NewMemoryRateLimiter(config *Config) *MemoryRateLimiter {
	if config == nil {
		config = DefaultConfig()
	}

	return &MemoryRateLimiter{
		config:  config,
		buckets: make(map[string]*tokenBucket),
	}
}

// Allow refills the client's bucket for the endpoint category and takes one
// token if available.
func (r *MemoryRateLimiter) Allow(clientID string, endpoint string) (bool, time.Duration, error) {
	if !r.config.Enabled {
		return true, 0, nil
	}

	limit := r.config.GetLimit(endpoint)
	key := fmt.Sprintf("%s:%s", clientID, r.config.GetEndpointKey(endpoint))

	r.mu.Lock()
	defer r.mu.Unlock()

	bucket, ok := r.buckets[key]
	now := time.Now()
	if !ok {
		bucket = &tokenBucket{
			tokens:     float64(limit.BurstSize),
			capacity:   float64(limit.BurstSize),
			lastRefill: now,
		}
		r.buckets[key] = bucket
	}

	refillRate := float64(limit.RequestsPerMinute) / time.Minute.Seconds()
	elapsed := now.Sub(bucket.lastRefill).Seconds()
	bucket.tokens = minFloat(bucket.capacity, bucket.tokens+elapsed*refillRate)
	bucket.lastRefill = now

	if bucket.tokens >= 1 {
		bucket.tokens--
		return true, 0, nil
	}

	// Time until one full token accrues
	resetTime := time.Duration((1 - bucket.tokens) / refillRate * float64(time.Second))
	return false, resetTime, nil
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
