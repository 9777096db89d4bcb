package cache

import (
	"time"

	"vms-backend/internal/models"
)

// AllVehiclesKey names the cached full vehicle list.
const AllVehiclesKey = "all_vehicles"

// CacheManager defines the interface for caching operations. Read methods
// return (nil, nil) on a cache miss.
type CacheManager interface {
	// Vehicle operations
	GetVehicle(vehicleID string) (*models.Vehicle, error)
	SetVehicle(vehicleID string, vehicle *models.Vehicle, ttl time.Duration) error
	InvalidateVehicle(vehicleID string) error

	// Vehicle list operations
	GetVehicleList(key string) ([]*models.VehicleWithModel, error)
	SetVehicleList(key string, vehicles []*models.VehicleWithModel, ttl time.Duration) error
	InvalidateVehicleList(key string) error

	// Generic operations
	Set(key string, value interface{}, ttl time.Duration) error
	Delete(key string) error

	// Statistics and health
	GetCacheStats() CacheStats
	HealthCheck() error
	Close() error
}

// CacheStats provides cache performance metrics
type CacheStats struct {
	TotalHits   int64   `json:"totalHits"`
	TotalMisses int64   `json:"totalMisses"`
	HitRate     float64 `json:"hitRate"`
}
