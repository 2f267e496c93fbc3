package kafka

import (
	"strconv"
	"time"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/google/uuid"
)

const (
	EventBookingCreated  = "booking_created"
	EventBookingApproved = "booking_approved"
	EventBookingRejected = "booking_rejected"
)

// BookingEvent is the payload written to the bookings topic after a lifecycle change.
type BookingEvent struct {
	Type       string    `json:"type"`
	EventID    string    `json:"event_id"`
	BookingID  int64     `json:"booking_id"`
	ItemID     int64     `json:"item_id"`
	BookerID   int64     `json:"booker_id"`
	OwnerID    int64     `json:"owner_id"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *domain.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       eventType,
		EventID:    uuid.NewString(),
		BookingID:  b.ID,
		ItemID:     b.Item.ID,
		BookerID:   b.Booker.ID,
		OwnerID:    b.Item.OwnerID,
		Status:     string(b.Status),
		Start:      b.Start,
		End:        b.End,
		OccurredAt: at,
	}
}

// Key partitions events by booking so one booking's history stays ordered.
func (e BookingEvent) Key() string {
	return "booking-" + strconv.FormatInt(e.BookingID, 10)
}
