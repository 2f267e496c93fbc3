package booking

import (
	"context"
	"time"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/Domenick1991/shareit/internal/kafka"
	"github.com/Domenick1991/shareit/internal/repository"
	"go.uber.org/zap"
)

type BookingUseCase interface {
	Create(ctx context.Context, requesterID int64, input CreateBookingInput) (*domain.Booking, error)
	GetByID(ctx context.Context, requesterID, bookingID int64) (*domain.Booking, error)
	SetApproval(ctx context.Context, requesterID, bookingID int64, approve bool) (*domain.Booking, error)
	ListForBooker(ctx context.Context, userID int64, category string, from, size int) ([]domain.Booking, error)
	ListForOwner(ctx context.Context, userID int64, category string, from, size int) ([]domain.Booking, error)
}

// UserDirectory resolves registered users.
type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Catalog resolves items with their owner and availability.
type Catalog interface {
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings     repository.BookingRepository
	users        UserDirectory
	items        Catalog
	producer     Producer
	bookingTopic string
	logger       *zap.Logger
	now          func() time.Time
}

type CreateBookingInput struct {
	ItemID int64     `json:"itemId"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
}

type BookingServiceOption func(*BookingService)

// WithClock replaces the wall clock used for temporal categories.
func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

// NewBookingService wires the engine. producer may be nil, in which case no events are published.
func NewBookingService(
	bookings repository.BookingRepository,
	users UserDirectory,
	items Catalog,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		users:        users,
		items:        items,
		producer:     producer,
		bookingTopic: bookingTopic,
		logger:       zap.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) Create(ctx context.Context, requesterID int64, input CreateBookingInput) (*domain.Booking, error) {
	booker, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	item, err := s.items.GetByID(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID == booker.ID {
		return nil, domain.Masked("user %d owns item %d and cannot book it", booker.ID, item.ID)
	}
	if !item.Available {
		return nil, domain.InvalidState("item %d is not available for booking", item.ID)
	}
	if err := domain.ValidateDates(input.Start, input.End); err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		Start:  input.Start,
		End:    input.End,
		Item:   *item,
		Booker: *booker,
		Status: domain.BookingStatusWaiting,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("item_id", item.ID),
		zap.Int64("booker_id", booker.ID))
	s.publish(ctx, kafka.EventBookingCreated, booking)
	return booking, nil
}

// GetByID returns the booking only to its booker or the item owner. Anyone else gets not found.
func (s *BookingService) GetByID(ctx context.Context, requesterID, bookingID int64) (*domain.Booking, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !booking.VisibleTo(requesterID) {
		return nil, domain.NotFound("booking %d not found", bookingID)
	}
	return booking, nil
}

func (s *BookingService) SetApproval(ctx context.Context, requesterID, bookingID int64, approve bool) (*domain.Booking, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.Item.OwnerID != requesterID {
		return nil, domain.Forbidden("user %d is not the owner of item %d", requesterID, current.Item.ID)
	}
	target := domain.ApprovalStatus(approve)
	if !current.Status.CanTransitionTo(target) {
		return nil, domain.InvalidState("booking %d is already %s", bookingID, current.Status)
	}

	// The store re-checks the status, so a concurrent decision fails here with InvalidState.
	updated, err := s.bookings.UpdateStatus(ctx, bookingID, current.Status, target)
	if err != nil {
		return nil, err
	}

	eventType := kafka.EventBookingRejected
	if approve {
		eventType = kafka.EventBookingApproved
	}
	s.logger.Info("booking decided",
		zap.Int64("booking_id", updated.ID),
		zap.String("status", string(updated.Status)))
	s.publish(ctx, eventType, updated)
	return updated, nil
}

func (s *BookingService) ListForBooker(ctx context.Context, userID int64, category string, from, size int) ([]domain.Booking, error) {
	filter, page, err := s.prepareListing(ctx, userID, category, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByBooker(ctx, userID, filter, page)
}

func (s *BookingService) ListForOwner(ctx context.Context, userID int64, category string, from, size int) ([]domain.Booking, error) {
	filter, page, err := s.prepareListing(ctx, userID, category, from, size)
	if err != nil {
		return nil, err
	}
	return s.bookings.ListByItemOwner(ctx, userID, filter, page)
}

func (s *BookingService) prepareListing(ctx context.Context, userID int64, category string, from, size int) (repository.BookingFilter, domain.Page, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return repository.BookingFilter{}, domain.Page{}, err
	}
	page, err := domain.PageFromOffset(from, size)
	if err != nil {
		return repository.BookingFilter{}, domain.Page{}, err
	}
	c, err := domain.ParseCategory(category)
	if err != nil {
		return repository.BookingFilter{}, domain.Page{}, err
	}
	return FilterFor(c, s.now()), page, nil
}

// FilterFor translates a category into store predicates evaluated at now.
// The predicates agree with domain.BookingCategory.Match.
func FilterFor(c domain.BookingCategory, now time.Time) repository.BookingFilter {
	switch c {
	case domain.CategoryCurrent:
		return repository.BookingFilter{StartBefore: &now, EndAfter: &now}
	case domain.CategoryPast:
		return repository.BookingFilter{StartBefore: &now, EndBefore: &now}
	case domain.CategoryFuture:
		return repository.BookingFilter{StartAfter: &now}
	case domain.CategoryWaiting:
		status := domain.BookingStatusWaiting
		return repository.BookingFilter{Status: &status}
	case domain.CategoryRejected:
		status := domain.BookingStatusRejected
		return repository.BookingFilter{Status: &status}
	case domain.CategoryAll:
		return repository.BookingFilter{}
	}
	return repository.BookingFilter{}
}

// publish is best effort: the persisted write already happened.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.NewBookingEvent(eventType, booking, s.now())
	if err := s.producer.Publish(ctx, s.bookingTopic, event.Key(), event); err != nil {
		s.logger.Warn("failed to publish booking event",
			zap.String("type", eventType),
			zap.Int64("booking_id", booking.ID),
			zap.Error(err))
	}
}

var _ BookingUseCase = (*BookingService)(nil)
