package items

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/Domenick1991/shareit/internal/repository"
	"go.uber.org/zap"
)

type ItemUseCase interface {
	Create(ctx context.Context, ownerID int64, input CreateItemInput) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	View(ctx context.Context, requesterID, itemID int64) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]ItemView, error)
	SetAvailable(ctx context.Context, requesterID, itemID int64, available bool) (*domain.Item, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// BookingHistory is the read side of the booking store used to decorate owner views.
type BookingHistory interface {
	ListByItem(ctx context.Context, itemID int64) ([]domain.Booking, error)
	EarliestEndingApproved(ctx context.Context, itemID int64) (*domain.Booking, error)
}

type CreateItemInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   *bool  `json:"available"`
}

// BookingRef is the short form of a booking shown next to an item.
type BookingRef struct {
	ID       int64     `json:"id"`
	BookerID int64     `json:"bookerId"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
}

type ItemView struct {
	domain.Item
	LastBooking *BookingRef `json:"lastBooking"`
	NextBooking *BookingRef `json:"nextBooking"`
}

type ItemService struct {
	repo     repository.ItemRepository
	users    UserDirectory
	bookings BookingHistory
	logger   *zap.Logger
	now      func() time.Time
}

type ItemServiceOption func(*ItemService)

func WithClock(now func() time.Time) ItemServiceOption {
	return func(s *ItemService) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) ItemServiceOption {
	return func(s *ItemService) {
		s.logger = logger
	}
}

func NewItemService(repo repository.ItemRepository, users UserDirectory, bookings BookingHistory, opts ...ItemServiceOption) *ItemService {
	service := &ItemService{
		repo:     repo,
		users:    users,
		bookings: bookings,
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *ItemService) Create(ctx context.Context, ownerID int64, input CreateItemInput) (*domain.Item, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.InvalidInput("name is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, domain.InvalidInput("description is required")
	}
	if input.Available == nil {
		return nil, domain.InvalidInput("available is required")
	}

	item := &domain.Item{
		Name:        name,
		Description: input.Description,
		Available:   *input.Available,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("item created", zap.Int64("item_id", item.ID), zap.Int64("owner_id", ownerID))
	return item, nil
}

// GetByID is the catalog lookup used when booking.
func (s *ItemService) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ItemService) SetAvailable(ctx context.Context, requesterID, itemID int64, available bool) (*domain.Item, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != requesterID {
		return nil, domain.Forbidden("user %d is not the owner of item %d", requesterID, itemID)
	}
	return s.repo.SetAvailable(ctx, itemID, available)
}

// View returns the item. Booking references are filled in only for the owner.
func (s *ItemService) View(ctx context.Context, requesterID, itemID int64) (*ItemView, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	view := &ItemView{Item: *item}
	if item.OwnerID != requesterID {
		return view, nil
	}
	if err := s.decorate(ctx, view); err != nil {
		return nil, err
	}
	return view, nil
}

func (s *ItemService) ListByOwner(ctx context.Context, ownerID int64) ([]ItemView, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	owned, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	views := make([]ItemView, 0, len(owned))
	for _, item := range owned {
		view := ItemView{Item: item}
		if err := s.decorate(ctx, &view); err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// decorate sets LastBooking to the approved booking that ends first and
// NextBooking to the earliest approved booking that has not started yet.
func (s *ItemService) decorate(ctx context.Context, view *ItemView) error {
	last, err := s.bookings.EarliestEndingApproved(ctx, view.ID)
	switch {
	case err == nil:
		view.LastBooking = refOf(last)
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	history, err := s.bookings.ListByItem(ctx, view.ID)
	if err != nil {
		return err
	}
	now := s.now()
	var next *domain.Booking
	for i := range history {
		b := &history[i]
		if b.Status != domain.BookingStatusApproved || !b.Start.After(now) {
			continue
		}
		if next == nil || b.Start.Before(next.Start) {
			next = b
		}
	}
	if next != nil {
		view.NextBooking = refOf(next)
	}
	return nil
}

func refOf(b *domain.Booking) *BookingRef {
	return &BookingRef{ID: b.ID, BookerID: b.Booker.ID, Start: b.Start, End: b.End}
}

var _ ItemUseCase = (*ItemService)(nil)
