package services

import (
	"context"
	"testing"

	"ngi/constants"
	"ngi/dto"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestAvailabilityCache_ServesFromRedis(t *testing.T) {
	mr, rdb := setupRedis(t)
	ctx := context.Background()

	loads := 0
	cache := NewAvailabilityCache(rdb, func(context.Context) (dto.AvailabilitySnapshot, error) {
		loads++
		return dto.AvailabilitySnapshot{Booked: []string{"2025-06-06"}, Blocked: []string{}}, nil
	}, nil)

	snap, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-06"}, snap.Booked)
	assert.True(t, mr.Exists(constants.AvailabilityCacheKey))

	_, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
}

func TestAvailabilityCache_FallsBackWithoutRedis(t *testing.T) {
	mr, rdb := setupRedis(t)
	mr.Close()

	cache := NewAvailabilityCache(rdb, func(context.Context) (dto.AvailabilitySnapshot, error) {
		return dto.AvailabilitySnapshot{Booked: []string{}, Blocked: []string{"2025-06-10"}}, nil
	}, nil)

	snap, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-10"}, snap.Blocked)

	snap, err = NewAvailabilityCache(nil, func(context.Context) (dto.AvailabilitySnapshot, error) {
		return dto.AvailabilitySnapshot{Booked: []string{"2025-06-11"}}, nil
	}, nil).Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-11"}, snap.Booked)
}

func TestAvailabilityCache_WatchRefreshesOncePerEvent(t *testing.T) {
	_, rdb := setupRedis(t)
	f := newFixture(t)
	ctx := context.Background()

	loads := 0
	cache := NewAvailabilityCache(rdb, func(ctx context.Context) (dto.AvailabilitySnapshot, error) {
		loads++
		return f.store.Snapshot(ctx)
	}, nil)
	stop := cache.Watch(f.bus)
	defer stop()

	snap, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap.Booked)

	_, err = f.store.AddBooked(ctx, "2025-06-06", "2025-06-07", "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, loads)

	snap, err = cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-06-06", "2025-06-07"}, snap.Booked)
	assert.Equal(t, 2, loads)

	// a no-op change publishes nothing, so nothing is reloaded
	_, err = f.store.AddBooked(ctx, "2025-06-06", "", "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, loads)

	stop()
	_, err = f.store.AddBlocked(ctx, "2025-06-20", "", "admin")
	require.NoError(t, err)
	assert.Equal(t, 2, loads)
}
