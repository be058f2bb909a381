package notification

import (
	"context"
	"strconv"

	"ngi/constants"
	"ngi/services/logger"

	"github.com/redis/go-redis/v9"
)

// RedisBus carries events between server instances over one pub/sub
// channel. Local subscribers only hear what comes back from Redis, so every
// instance, this one included, sees each event exactly once.
type RedisBus struct {
	rdb     *redis.Client
	channel string
	local   *MemoryBus
	logger  logger.Logger
}

func NewRedisBus(rdb *redis.Client, channel string, log logger.Logger) *RedisBus {
	if channel == "" {
		channel = constants.EventChannel
	}
	if log == nil {
		log = logger.Nop{}
	}
	return &RedisBus{
		rdb:     rdb,
		channel: channel,
		local:   NewMemoryBus(),
		logger:  log,
	}
}

func (b *RedisBus) Publish(ctx context.Context, event Event) error {
	payload, err := event.Encode()
	if err != nil {
		return err
	}

	if key := sentinelKey(event.Type); key != "" {
		if err := b.rdb.Set(ctx, key, strconv.FormatInt(event.Time, 10), 0).Err(); err != nil {
			b.logger.Error("sentinel %s not updated: %v", key, err)
		}
	}

	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

func (b *RedisBus) Subscribe(handler Handler) func() {
	return b.local.Subscribe(handler)
}

// Run relays channel messages to local subscribers until ctx ends.
// ready is closed once the subscription is confirmed.
func (b *RedisBus) Run(ctx context.Context, ready chan<- struct{}) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	if ready != nil {
		close(ready)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			event, err := DecodeEvent([]byte(msg.Payload))
			if err != nil {
				b.logger.Error("bad event on %s: %v", b.channel, err)
				continue
			}
			b.local.dispatch(event)
		}
	}
}

// LastUpdated returns the unix-ms sentinel values, zero when unset
func LastUpdated(ctx context.Context, rdb *redis.Client) (map[string]int64, error) {
	keys := []string{constants.BookedSentinelKey, constants.BlockedSentinelKey, constants.BookingsSentinelKey}
	vals, err := rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(keys))
	for i, k := range keys {
		out[k] = 0
		if s, ok := vals[i].(string); ok {
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				out[k] = n
			}
		}
	}
	return out, nil
}

func sentinelKey(t EventType) string {
	switch t {
	case BookedUpdated, BookedRemoved, BookedCleared:
		return constants.BookedSentinelKey
	case BlockedUpdated, BlockedRemoved:
		return constants.BlockedSentinelKey
	case BookingsUpdated:
		return constants.BookingsSentinelKey
	}
	return ""
}
