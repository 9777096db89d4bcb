package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheck(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := NewClientFromRedis(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { client.Close() })

	status := client.HealthCheck()
	assert.True(t, status.IsConnected)
	assert.Empty(t, status.Error)
	assert.GreaterOrEqual(t, status.ResponseTime.Nanoseconds(), int64(0))
}

func TestHealthCheck_Down(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := NewClientFromRedis(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { client.Close() })

	mr.Close()

	status := client.HealthCheck()
	assert.False(t, status.IsConnected)
	assert.NotEmpty(t, status.Error)
}

func TestHealthCheck_NilClient(t *testing.T) {
	client := &Client{}

	status := client.HealthCheck()
	assert.False(t, status.IsConnected)
	assert.Equal(t, "Redis client not initialized", status.Error)
}
