package cache

import (
	"testing"
	"time"

	"vms-backend/internal/models"
	pkgredis "vms-backend/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupCache(t *testing.T) (*RedisCacheManager, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	manager := NewRedisCacheManager(pkgredis.NewClientFromRedis(client), DefaultCacheConfig())
	return manager, mr
}

func sampleVehicle() *models.Vehicle {
	return &models.Vehicle{
		ID:          primitive.NewObjectID(),
		PlateNumber: "KDA 123X",
		Color:       "white",
		ModelID:     primitive.NewObjectID(),
		IsAvailable: true,
	}
}

func TestVehicleRoundTrip(t *testing.T) {
	manager, _ := setupCache(t)
	vehicle := sampleVehicle()
	id := vehicle.ID.Hex()

	require.NoError(t, manager.SetVehicle(id, vehicle, time.Minute))

	cached, err := manager.GetVehicle(id)
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.Equal(t, vehicle.PlateNumber, cached.PlateNumber)
	assert.Equal(t, vehicle.ModelID, cached.ModelID)
	assert.True(t, cached.IsAvailable)
}

func TestGetVehicle_Miss(t *testing.T) {
	manager, _ := setupCache(t)

	cached, err := manager.GetVehicle("missing")
	require.NoError(t, err, "a miss is not an error")
	assert.Nil(t, cached)
}

func TestVehicleTTLExpiry(t *testing.T) {
	manager, mr := setupCache(t)
	vehicle := sampleVehicle()
	id := vehicle.ID.Hex()

	require.NoError(t, manager.SetVehicle(id, vehicle, 30*time.Second))

	mr.FastForward(time.Minute)

	cached, err := manager.GetVehicle(id)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestInvalidateVehicle(t *testing.T) {
	manager, _ := setupCache(t)
	vehicle := sampleVehicle()
	id := vehicle.ID.Hex()

	require.NoError(t, manager.SetVehicle(id, vehicle, time.Minute))
	require.NoError(t, manager.InvalidateVehicle(id))

	cached, err := manager.GetVehicle(id)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestVehicleListRoundTrip(t *testing.T) {
	manager, _ := setupCache(t)

	list := []*models.VehicleWithModel{
		{
			Vehicle: *sampleVehicle(),
			Model:   &models.VehicleModel{ID: primitive.NewObjectID(), Name: "Corolla", Brand: "Toyota"},
		},
		{Vehicle: *sampleVehicle()},
	}

	require.NoError(t, manager.SetVehicleList(AllVehiclesKey, list, time.Minute))

	cached, err := manager.GetVehicleList(AllVehiclesKey)
	require.NoError(t, err)
	require.Len(t, cached, 2)
	require.NotNil(t, cached[0].Model)
	assert.Equal(t, "Corolla", cached[0].Model.Name)
	assert.Nil(t, cached[1].Model)

	require.NoError(t, manager.InvalidateVehicleList(AllVehiclesKey))
	cached, err = manager.GetVehicleList(AllVehiclesKey)
	require.NoError(t, err)
	assert.Nil(t, cached)
}

func TestCacheStats(t *testing.T) {
	manager, _ := setupCache(t)
	vehicle := sampleVehicle()
	id := vehicle.ID.Hex()

	_, err := manager.GetVehicle(id)
	require.NoError(t, err)

	require.NoError(t, manager.SetVehicle(id, vehicle, time.Minute))
	_, err = manager.GetVehicle(id)
	require.NoError(t, err)

	stats := manager.GetCacheStats()
	assert.Equal(t, int64(1), stats.TotalHits)
	assert.Equal(t, int64(1), stats.TotalMisses)
	assert.InDelta(t, 0.5, stats.HitRate, 0.001)
}

func TestHealthCheck(t *testing.T) {
	manager, mr := setupCache(t)

	assert.NoError(t, manager.HealthCheck())

	mr.Close()
	assert.Error(t, manager.HealthCheck())
}
