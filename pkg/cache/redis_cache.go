package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"time"

	"vms-backend/internal/models"
	"vms-backend/pkg/redis"

	redisClient "github.com/redis/go-redis/v9"
)

// RedisCacheManager implements CacheManager using Redis
type RedisCacheManager struct {
	client *redis.Client
	config CacheConfig
	stats  *cacheStats
	ctx    context.Context
}

// cacheStats tracks cache performance metrics
type cacheStats struct {
	totalHits   int64
	totalMisses int64
}

// NewRedisCacheManager creates a new Redis-backed cache manager
func NewRedisCacheManager(client *redis.Client, config CacheConfig) *RedisCacheManager {
	return &RedisCacheManager{
		client: client,
		config: config,
		stats:  &cacheStats{},
		ctx:    context.Background(),
	}
}

// GetVehicle retrieves a vehicle from cache
func (r *RedisCacheManager) GetVehicle(vehicleID string) (*models.Vehicle, error) {
	key := r.buildKey("vehicle", vehicleID)

	data, err := r.client.GetClient().Get(r.ctx, key).Result()
	if err != nil {
		if err == redisClient.Nil {
			r.recordMiss()
			return nil, nil // Cache miss, not an error
		}
		return nil, fmt.Errorf("failed to get vehicle from cache: %w", err)
	}

	var vehicle models.Vehicle
	if err := json.Unmarshal([]byte(data), &vehicle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vehicle data: %w", err)
	}

	r.recordHit()
	return &vehicle, nil
}

// SetVehicle stores a vehicle in cache with TTL
func (r *RedisCacheManager) SetVehicle(vehicleID string, vehicle *models.Vehicle, ttl time.Duration) error {
	key := r.buildKey("vehicle", vehicleID)

	data, err := json.Marshal(vehicle)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle data: %w", err)
	}

	return r.client.GetClient().Set(r.ctx, key, data, ttl).Err()
}

// InvalidateVehicle removes a specific vehicle from cache
func (r *RedisCacheManager) InvalidateVehicle(vehicleID string) error {
	return r.client.GetClient().Del(r.ctx, r.buildKey("vehicle", vehicleID)).Err()
}

// GetVehicleList retrieves a list of vehicles from cache
func (r *RedisCacheManager) GetVehicleList(key string) ([]*models.VehicleWithModel, error) {
	cacheKey := r.buildKey("vehicle_list", key)

	data, err := r.client.GetClient().Get(r.ctx, cacheKey).Result()
	if err != nil {
		if err == redisClient.Nil {
			r.recordMiss()
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get vehicle list from cache: %w", err)
	}

	var vehicles []*models.VehicleWithModel
	if err := json.Unmarshal([]byte(data), &vehicles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vehicle list data: %w", err)
	}

	r.recordHit()
	return vehicles, nil
}

// SetVehicleList stores a list of vehicles in cache
func (r *RedisCacheManager) SetVehicleList(key string, vehicles []*models.VehicleWithModel, ttl time.Duration) error {
	cacheKey := r.buildKey("vehicle_list", key)

	data, err := json.Marshal(vehicles)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle list data: %w", err)
	}

	return r.client.GetClient().Set(r.ctx, cacheKey, data, ttl).Err()
}

// InvalidateVehicleList removes a cached vehicle list
func (r *RedisCacheManager) InvalidateVehicleList(key string) error {
	return r.client.GetClient().Del(r.ctx, r.buildKey("vehicle_list", key)).Err()
}

// Set stores a generic value in cache
func (r *RedisCacheManager) Set(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	return r.client.GetClient().Set(r.ctx, r.buildKey("generic", key), data, ttl).Err()
}

// Delete removes a key from cache
func (r *RedisCacheManager) Delete(key string) error {
	return r.client.GetClient().Del(r.ctx, r.buildKey("generic", key)).Err()
}

// GetCacheStats returns hit/miss counters
func (r *RedisCacheManager) GetCacheStats() CacheStats {
	hits := atomic.LoadInt64(&r.stats.totalHits)
	misses := atomic.LoadInt64(&r.stats.totalMisses)

	stats := CacheStats{
		TotalHits:   hits,
		TotalMisses: misses,
	}
	if total := hits + misses; total > 0 {
		stats.HitRate = float64(hits) / float64(total)
	}

	return stats
}

// HealthCheck pings the Redis server
func (r *RedisCacheManager) HealthCheck() error {
	ctx, cancel := context.WithTimeout(r.ctx, 5*time.Second)
	defer cancel()

	return r.client.GetClient().Ping(ctx).Err()
}

// Close releases the underlying connection
func (r *RedisCacheManager) Close() error {
	return r.client.Close()
}

func (r *RedisCacheManager) buildKey(dataType, key string) string {
	return fmt.Sprintf("%s%s:%s", r.config.KeyPrefix, dataType, key)
}

func (r *RedisCacheManager) recordHit() {
	atomic.AddInt64(&r.stats.totalHits, 1)
}

func (r *RedisCacheManager) recordMiss() {
	atomic.AddInt64(&r.stats.totalMisses, 1)
}
