package services

import (
	"context"
	"fmt"
	"time"

	"ngi/constants"
	"ngi/models"
	"ngi/services/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// FallbackQueue parks bookings the database refused so the visitor still
// gets a reference. A cron job replays them.
type FallbackQueue struct {
	rdb    *redis.Client
	key    string
	logger logger.Logger
}

func NewFallbackQueue(rdb *redis.Client, log logger.Logger) *FallbackQueue {
	if log == nil {
		log = logger.Nop{}
	}
	return &FallbackQueue{rdb: rdb, key: constants.BookingFallbackQueue, logger: log}
}

// Push queues booking under a local_<unixms> reference and returns it
func (q *FallbackQueue) Push(ctx context.Context, booking *models.Booking, now time.Time) (string, error) {
	if q.rdb == nil {
		return "", fmt.Errorf("fallback queue has no redis client")
	}
	if booking.Reference == "" {
		booking.Reference = fmt.Sprintf(constants.LocalBookingRefFormat, now.UnixMilli())
	}
	booking.Source = constants.BookingSourceFallback

	payload, err := json.Marshal(booking)
	if err != nil {
		return "", err
	}
	if err := q.rdb.RPush(ctx, q.key, payload).Err(); err != nil {
		return "", err
	}
	return booking.Reference, nil
}

// Len reports how many bookings wait for replay
func (q *FallbackQueue) Len(ctx context.Context) (int64, error) {
	if q.rdb == nil {
		return 0, nil
	}
	return q.rdb.LLen(ctx, q.key).Result()
}

// Drain hands queued bookings to store in order. The first failure puts the
// booking back at the head and stops; undecodable entries are dropped.
func (q *FallbackQueue) Drain(ctx context.Context, store func(context.Context, *models.Booking) error) (int, error) {
	if q.rdb == nil {
		return 0, nil
	}

	replayed := 0
	for {
		raw, err := q.rdb.LPop(ctx, q.key).Result()
		if err == redis.Nil {
			return replayed, nil
		}
		if err != nil {
			return replayed, err
		}

		var booking models.Booking
		if err := json.Unmarshal([]byte(raw), &booking); err != nil {
			q.logger.Error("dropping unreadable queued booking: %v", err)
			continue
		}

		if err := store(ctx, &booking); err != nil {
			if perr := q.rdb.LPush(ctx, q.key, raw).Err(); perr != nil {
				q.logger.Error("requeue %s: %v", booking.Reference, perr)
			}
			return replayed, err
		}
		replayed++
	}
}
