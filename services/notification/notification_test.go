package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"ngi/constants"
	"ngi/services/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingService struct {
	mu       sync.Mutex
	messages []string
}

func (s *recordingService) SendMessage(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, message)
	return nil
}

func TestEvent_Encode(t *testing.T) {
	now := time.UnixMilli(1749168000000)

	payload, err := DatesEvent(BookedUpdated, []string{"2025-06-06"}, now).Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"booked:updated","dates":["2025-06-06"],"time":1749168000000}`, string(payload))

	payload, err = BookingEvent(42, now).Encode()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"bookings:updated","id":"42","time":1749168000000}`, string(payload))

	decoded, err := DecodeEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, BookingsUpdated, decoded.Type)
	assert.Equal(t, "42", decoded.ID)
}

func TestMemoryBus_SubscribeAndUnsubscribe(t *testing.T) {
	bus := NewMemoryBus()

	var got []EventType
	stop := bus.Subscribe(func(e Event) { got = append(got, e.Type) })

	require.NoError(t, bus.Publish(context.Background(), Event{Type: BlockedUpdated}))
	stop()
	stop()
	require.NoError(t, bus.Publish(context.Background(), Event{Type: BlockedRemoved}))

	assert.Equal(t, []EventType{BlockedUpdated}, got)
}

func TestForward_BroadcastsJSON(t *testing.T) {
	bus := NewMemoryBus()
	svc := &recordingService{}
	Forward(bus, svc, logger.Nop{})

	require.NoError(t, bus.Publish(context.Background(), Event{Type: BookedCleared, Time: 1}))

	require.Len(t, svc.messages, 1)
	assert.JSONEq(t, `{"type":"booked:cleared","time":1}`, svc.messages[0])
}

func TestMelodyService_NilInstance(t *testing.T) {
	assert.Error(t, NewMelodyService(nil).SendMessage("x"))
}

func TestRedisBus_RoundTripAndSentinel(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	bus := NewRedisBus(rdb, "", logger.Nop{})

	received := make(chan Event, 1)
	bus.Subscribe(func(e Event) { received <- e })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan struct{})
	go func() { _ = bus.Run(ctx, ready) }()
	<-ready

	require.NoError(t, bus.Publish(ctx, DatesEvent(BookedRemoved, []string{"2025-06-07"}, time.UnixMilli(99))))

	select {
	case e := <-received:
		assert.Equal(t, BookedRemoved, e.Type)
		assert.Equal(t, []string{"2025-06-07"}, e.Dates)
	case <-time.After(2 * time.Second):
		t.Fatal("event not relayed")
	}

	last, err := LastUpdated(ctx, rdb)
	require.NoError(t, err)
	assert.Equal(t, int64(99), last[constants.BookedSentinelKey])
	assert.Equal(t, int64(0), last[constants.BlockedSentinelKey])
}
