package audit

import (
	"context"
	"sync"

	"github.com/Domenick1991/shareit/internal/kafka"
	"go.uber.org/zap"
)

// maxRemembered bounds the event ids kept for deduplication.
const maxRemembered = 10000

// Recorder writes booking lifecycle events to the audit log. A redelivered
// event (same event id) is recorded once while its id is remembered.
type Recorder struct {
	logger *zap.Logger

	mu   sync.Mutex
	seen map[string]struct{}
}

func NewRecorder(logger *zap.Logger) *Recorder {
	return &Recorder{logger: logger, seen: make(map[string]struct{})}
}

func (r *Recorder) Record(_ context.Context, event kafka.BookingEvent) error {
	if r.duplicate(event.EventID) {
		r.logger.Debug("duplicate booking event", zap.String("event_id", event.EventID))
		return nil
	}

	r.logger.Info("booking event",
		zap.String("type", event.Type),
		zap.String("event_id", event.EventID),
		zap.Int64("booking_id", event.BookingID),
		zap.Int64("item_id", event.ItemID),
		zap.Int64("booker_id", event.BookerID),
		zap.Int64("owner_id", event.OwnerID),
		zap.String("status", event.Status),
		zap.Time("start", event.Start),
		zap.Time("end", event.End),
		zap.Time("occurred_at", event.OccurredAt),
	)
	return nil
}

func (r *Recorder) duplicate(eventID string) bool {
	if eventID == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.seen[eventID]; ok {
		return true
	}
	if len(r.seen) >= maxRemembered {
		r.seen = make(map[string]struct{})
	}
	r.seen[eventID] = struct{}{}
	return false
}
