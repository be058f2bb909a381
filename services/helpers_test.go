package services

import (
	"sync"
	"testing"
	"time"

	"ngi/models"
	"ngi/services/notification"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Sunday 2025-06-01, mid-morning
var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

type eventRecorder struct {
	mu     sync.Mutex
	events []notification.Event
}

func recordEvents(bus notification.Bus) *eventRecorder {
	r := &eventRecorder{}
	bus.Subscribe(func(e notification.Event) {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.events = append(r.events, e)
	})
	return r
}

func (r *eventRecorder) Types() []notification.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notification.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

func (r *eventRecorder) Last() notification.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return notification.Event{}
	}
	return r.events[len(r.events)-1]
}

type fixture struct {
	db       *gorm.DB
	bus      *notification.MemoryBus
	events   *eventRecorder
	store    *AvailabilityStore
	bookings *BookingService
}

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	bus := notification.NewMemoryBus()
	f := &fixture{
		db:     db,
		bus:    bus,
		events: recordEvents(bus),
		store: NewAvailabilityStore(AvailabilityStoreOptions{
			DB: db, Bus: bus, Location: time.UTC, Now: fixedNow,
		}),
		bookings: NewBookingService(BookingServiceOptions{
			DB: db, Bus: bus, Location: time.UTC, Now: fixedNow,
		}),
	}
	return f
}

func newBooking(name, checkIn, checkOut string) *models.Booking {
	return &models.Booking{
		Name:     name,
		Phone:    "+91 98765 43210",
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Guests:   1,
	}
}
