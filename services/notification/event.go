package notification

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/goccy/go-json"
)

// EventType names a change other views should react to
type EventType string

const (
	BookedUpdated   EventType = "booked:updated"
	BookedRemoved   EventType = "booked:removed"
	BookedCleared   EventType = "booked:cleared"
	BlockedUpdated  EventType = "blocked:updated"
	BlockedRemoved  EventType = "blocked:removed"
	BookingsUpdated EventType = "bookings:updated"
)

// Event is the wire payload {type, dates | id, time}. Receivers re-read
// state instead of applying Dates.
type Event struct {
	Type  EventType `json:"type"`
	Dates []string  `json:"dates,omitempty"`
	ID    string    `json:"id,omitempty"`
	Time  int64     `json:"time"`
}

// DatesEvent builds an availability event stamped with now
func DatesEvent(t EventType, dates []string, now time.Time) Event {
	return Event{Type: t, Dates: dates, Time: now.UnixMilli()}
}

// BookingEvent builds a bookings:updated event for one record
func BookingEvent(id uint, now time.Time) Event {
	return Event{Type: BookingsUpdated, ID: strconv.FormatUint(uint64(id), 10), Time: now.UnixMilli()}
}

func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func DecodeEvent(data []byte) (Event, error) {
	var e Event
	err := json.Unmarshal(data, &e)
	return e, err
}

// Handler receives one event. It must not block for long.
type Handler func(Event)

// Bus is the one publish/subscribe surface of the service
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(handler Handler) (unsubscribe func())
}

// MemoryBus fans events out synchronously to in-process subscribers
type MemoryBus struct {
	mu       sync.RWMutex
	next     int
	handlers map[int]Handler
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{handlers: make(map[int]Handler)}
}

func (b *MemoryBus) Publish(_ context.Context, event Event) error {
	b.dispatch(event)
	return nil
}

func (b *MemoryBus) Subscribe(handler Handler) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.handlers[id] = handler
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.handlers, id)
			b.mu.Unlock()
		})
	}
}

func (b *MemoryBus) dispatch(event Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
