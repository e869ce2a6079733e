package livecache

import (
	"testing"
	"time"

	"smarthelmet-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, ttl), mr
}

func TestSetAndGetStatus(t *testing.T) {
	cache, _ := setupCache(t, time.Minute)

	snapshot := models.StatusSnapshot{
		HelmetWorn:      true,
		AlcoholDetected: false,
		Battery:         80,
		IgnitionStatus:  models.IgnitionOn,
		LastSeen:        time.Now().UTC().Truncate(time.Second),
		IsActive:        true,
	}

	require.NoError(t, cache.SetStatus("B1", snapshot))

	got, err := cache.GetStatus("B1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snapshot.HelmetWorn, got.HelmetWorn)
	assert.Equal(t, snapshot.Battery, got.Battery)
	assert.Equal(t, snapshot.IgnitionStatus, got.IgnitionStatus)
	assert.True(t, got.IsActive)
}

func TestGetStatusMiss(t *testing.T) {
	cache, _ := setupCache(t, time.Minute)

	got, err := cache.GetStatus("unknown-bike")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStatusExpires(t *testing.T) {
	cache, mr := setupCache(t, 10*time.Second)

	require.NoError(t, cache.SetStatus("B1", models.StatusSnapshot{IsActive: true}))

	mr.FastForward(11 * time.Second)

	got, err := cache.GetStatus("B1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOverwriteReplacesWholesale(t *testing.T) {
	cache, _ := setupCache(t, time.Minute)

	require.NoError(t, cache.SetStatus("B1", models.StatusSnapshot{HelmetWorn: true, Battery: 90}))
	require.NoError(t, cache.SetStatus("B1", models.StatusSnapshot{HelmetWorn: false, Battery: 12}))

	got, err := cache.GetStatus("B1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.HelmetWorn)
	assert.Equal(t, 12, got.Battery)
}
