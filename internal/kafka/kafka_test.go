package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewBookingEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:     9,
		Start:  at.Add(time.Hour),
		End:    at.Add(2 * time.Hour),
		Item:   domain.Item{ID: 3, OwnerID: 1},
		Booker: domain.User{ID: 2},
		Status: domain.BookingStatusApproved,
	}

	event := NewBookingEvent(EventBookingApproved, b, at)

	assert.Equal(t, EventBookingApproved, event.Type)
	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, int64(9), event.BookingID)
	assert.Equal(t, int64(3), event.ItemID)
	assert.Equal(t, int64(2), event.BookerID)
	assert.Equal(t, int64(1), event.OwnerID)
	assert.Equal(t, "APPROVED", event.Status)
	assert.Equal(t, at, event.OccurredAt)
	assert.Equal(t, "booking-9", event.Key())

	other := NewBookingEvent(EventBookingApproved, b, at)
	assert.NotEqual(t, event.EventID, other.EventID)
}

func TestBookingEventHandler(t *testing.T) {
	event := BookingEvent{Type: EventBookingCreated, BookingID: 4, Status: "WAITING"}
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	var got []BookingEvent
	handler := BookingEventHandler(zap.NewNop(), func(_ context.Context, e BookingEvent) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, handler(context.Background(), kafka.Message{Value: payload}))
	require.NoError(t, handler(context.Background(), kafka.Message{Value: []byte("{not json")}))

	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].BookingID)
	assert.Equal(t, EventBookingCreated, got[0].Type)
}

func TestBookingEventHandler_PropagatesError(t *testing.T) {
	payload, err := json.Marshal(BookingEvent{Type: EventBookingRejected})
	require.NoError(t, err)

	boom := errors.New("boom")
	handler := BookingEventHandler(zap.NewNop(), func(context.Context, BookingEvent) error { return boom })

	assert.ErrorIs(t, handler(context.Background(), kafka.Message{Value: payload}), boom)
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}

func TestProducer_CheckConnectionWithoutBrokers(t *testing.T) {
	p := NewProducer(nil, zap.NewNop())
	assert.Error(t, p.CheckConnection(context.Background()))
	assert.NoError(t, p.Close())
}
