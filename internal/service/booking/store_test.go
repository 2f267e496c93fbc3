package booking

import (
	"context"
	"sort"
	"sync"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/Domenick1991/shareit/internal/repository"
)

// memoryBookings is an in-process BookingRepository with the same query
// semantics as the Postgres store.
type memoryBookings struct {
	mu   sync.Mutex
	seq  int64
	rows map[int64]domain.Booking
}

func newMemoryBookings() *memoryBookings {
	return &memoryBookings{rows: make(map[int64]domain.Booking)}
}

func (m *memoryBookings) Create(_ context.Context, b *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	b.ID = m.seq
	m.rows[b.ID] = *b
	return nil
}

func (m *memoryBookings) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, domain.NotFound("booking %d not found", id)
	}
	return &b, nil
}

func (m *memoryBookings) ListByBooker(_ context.Context, bookerID int64, f repository.BookingFilter, page domain.Page) ([]domain.Booking, error) {
	return m.list(func(b domain.Booking) bool { return b.Booker.ID == bookerID }, f, page), nil
}

func (m *memoryBookings) ListByItemOwner(_ context.Context, ownerID int64, f repository.BookingFilter, page domain.Page) ([]domain.Booking, error) {
	return m.list(func(b domain.Booking) bool { return b.Item.OwnerID == ownerID }, f, page), nil
}

func (m *memoryBookings) ListByItem(_ context.Context, itemID int64) ([]domain.Booking, error) {
	return m.list(func(b domain.Booking) bool { return b.Item.ID == itemID }, repository.BookingFilter{}, domain.Page{Size: len(m.rows) + 1}), nil
}

func (m *memoryBookings) EarliestEndingApproved(_ context.Context, itemID int64) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var best *domain.Booking
	for _, b := range m.rows {
		if b.Item.ID != itemID || b.Status != domain.BookingStatusApproved {
			continue
		}
		if best == nil || b.End.Before(best.End) {
			b := b
			best = &b
		}
	}
	if best == nil {
		return nil, domain.NotFound("item %d has no approved bookings", itemID)
	}
	return best, nil
}

func (m *memoryBookings) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, domain.NotFound("booking %d not found", id)
	}
	if b.Status != from {
		return nil, domain.InvalidState("booking %d is not %s", id, from)
	}
	b.Status = to
	m.rows[id] = b
	return &b, nil
}

func (m *memoryBookings) list(scope func(domain.Booking) bool, f repository.BookingFilter, page domain.Page) []domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]domain.Booking, 0)
	for _, b := range m.rows {
		if scope(b) && matchesFilter(b, f) {
			matched = append(matched, b)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Start.After(matched[j].Start) })

	offset := page.Offset()
	if offset >= len(matched) {
		return []domain.Booking{}
	}
	end := offset + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end]
}

func matchesFilter(b domain.Booking, f repository.BookingFilter) bool {
	if f.StartBefore != nil && !b.Start.Before(*f.StartBefore) {
		return false
	}
	if f.StartAfter != nil && !b.Start.After(*f.StartAfter) {
		return false
	}
	if f.EndBefore != nil && !b.End.Before(*f.EndBefore) {
		return false
	}
	if f.EndAfter != nil && !b.End.After(*f.EndAfter) {
		return false
	}
	if f.Status != nil && b.Status != *f.Status {
		return false
	}
	return true
}

type directory map[int64]domain.User

func (d directory) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := d[id]
	if !ok {
		return nil, domain.NotFound("user %d not found", id)
	}
	return &u, nil
}

type catalog map[int64]domain.Item

func (c catalog) GetByID(_ context.Context, id int64) (*domain.Item, error) {
	it, ok := c[id]
	if !ok {
		return nil, domain.NotFound("item %d not found", id)
	}
	return &it, nil
}

var _ repository.BookingRepository = (*memoryBookings)(nil)
