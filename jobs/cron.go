package jobs

import (
	"context"
	"time"

	"ngi/dto"
	"ngi/services/logger"

	"github.com/robfig/cron/v3"
)

const (
	ReplaySchedule  = "@every 30s"
	RefreshSchedule = "0 0 * * *"

	jobTimeout = 20 * time.Second
)

// QueueReplayer stores bookings that were queued while the database was down
type QueueReplayer interface {
	ReplayQueued(ctx context.Context) (int, error)
}

// CacheRefresher rebuilds the availability cache
type CacheRefresher interface {
	Refresh(ctx context.Context) (dto.AvailabilitySnapshot, error)
}

// InitCronJobs registers the replay and midnight refresh jobs and starts c.
// Either dependency may be nil, its job is then skipped.
func InitCronJobs(c *cron.Cron, replayer QueueReplayer, refresher CacheRefresher, log logger.Logger) error {
	if log == nil {
		log = logger.Nop{}
	}

	if replayer != nil {
		if _, err := c.AddFunc(ReplaySchedule, func() { ReplayQueued(replayer, log) }); err != nil {
			return err
		}
	}

	// the past/today flags of every cached day change at midnight
	if refresher != nil {
		if _, err := c.AddFunc(RefreshSchedule, func() { RefreshAvailability(refresher, log) }); err != nil {
			return err
		}
	}

	c.Start()
	log.Info("Cron jobs initialized successfully")
	return nil
}

func ReplayQueued(replayer QueueReplayer, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := replayer.ReplayQueued(ctx)
	if err != nil {
		log.Error("replaying queued bookings: %v", err)
	}
	if n > 0 {
		log.Info("replayed %d queued bookings", n)
	}
}

func RefreshAvailability(refresher CacheRefresher, log logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	if _, err := refresher.Refresh(ctx); err != nil {
		log.Error("refreshing availability cache: %v", err)
		return
	}
	log.Debug("availability cache refreshed at %s", time.Now().Format(time.RFC3339))
}
