package services

import (
	"context"
	"time"

	"ngi/constants"
	"ngi/dto"
	"ngi/services/logger"
	"ngi/services/notification"

	"github.com/redis/go-redis/v9"
)

const snapshotTTL = 24 * time.Hour

// SnapshotLoader reads the authoritative availability state
type SnapshotLoader func(ctx context.Context) (dto.AvailabilitySnapshot, error)

// AvailabilityCache keeps the public snapshot in Redis. It never patches the
// cached value: any change drops it and reloads from the store.
type AvailabilityCache struct {
	rdb    *redis.Client
	key    string
	load   SnapshotLoader
	logger logger.Logger
}

func NewAvailabilityCache(rdb *redis.Client, load SnapshotLoader, log logger.Logger) *AvailabilityCache {
	if log == nil {
		log = logger.Nop{}
	}
	return &AvailabilityCache{
		rdb:    rdb,
		key:    constants.AvailabilityCacheKey,
		load:   load,
		logger: log,
	}
}

// Get serves the cached snapshot, loading it on a miss. Redis errors fall
// back to the store.
func (c *AvailabilityCache) Get(ctx context.Context) (dto.AvailabilitySnapshot, error) {
	if c.rdb != nil {
		var snap dto.AvailabilitySnapshot
		found, err := GetFromRedis(ctx, c.rdb, c.key, &snap)
		if err != nil {
			c.logger.Error("read %s: %v", c.key, err)
		} else if found {
			return snap, nil
		}
	}
	return c.fill(ctx)
}

// Refresh drops the cached snapshot and loads a fresh one
func (c *AvailabilityCache) Refresh(ctx context.Context) (dto.AvailabilitySnapshot, error) {
	if c.rdb != nil {
		if err := DeleteFromRedis(ctx, c.rdb, c.key); err != nil {
			c.logger.Error("invalidate %s: %v", c.key, err)
		}
	}
	return c.fill(ctx)
}

func (c *AvailabilityCache) fill(ctx context.Context) (dto.AvailabilitySnapshot, error) {
	snap, err := c.load(ctx)
	if err != nil {
		return snap, err
	}
	if c.rdb != nil {
		if err := SetToRedis(ctx, c.rdb, c.key, snap, snapshotTTL); err != nil {
			c.logger.Error("write %s: %v", c.key, err)
		}
	}
	return snap, nil
}

// Watch refreshes once per bus event and returns the unsubscribe func
func (c *AvailabilityCache) Watch(bus notification.Bus) func() {
	return bus.Subscribe(func(e notification.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if _, err := c.Refresh(ctx); err != nil {
			c.logger.Error("refresh after %s: %v", e.Type, err)
		}
	})
}
