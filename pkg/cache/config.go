package cache

import "time"

// CacheConfig holds TTL values and key naming for the cache layer.
type CacheConfig struct {
	VehicleDataTTL time.Duration `json:"vehicleDataTTL"`
	VehicleListTTL time.Duration `json:"vehicleListTTL"`
	KeyPrefix      string        `json:"keyPrefix"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		VehicleDataTTL: 30 * time.Second,
		VehicleListTTL: 2 * time.Minute,
		KeyPrefix:      "vms:",
	}
}

// GetTTLForDataType returns appropriate TTL based on data type
func (c CacheConfig) GetTTLForDataType(dataType string) time.Duration {
	switch dataType {
	case "vehicle_list":
		return c.VehicleListTTL
	default:
		return c.VehicleDataTTL
	}
}
