package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/shareit/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// BookingFilter narrows a scoped booking listing. Nil fields do not constrain.
type BookingFilter struct {
	StartBefore *time.Time
	StartAfter  *time.Time
	EndBefore   *time.Time
	EndAfter    *time.Time
	Status      *domain.BookingStatus
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	ListByBooker(ctx context.Context, bookerID int64, filter BookingFilter, page domain.Page) ([]domain.Booking, error)
	ListByItemOwner(ctx context.Context, ownerID int64, filter BookingFilter, page domain.Page) ([]domain.Booking, error)
	ListByItem(ctx context.Context, itemID int64) ([]domain.Booking, error)
	EarliestEndingApproved(ctx context.Context, itemID int64) (*domain.Booking, error)
	// UpdateStatus moves the booking from one status to another and fails with
	// domain.ErrInvalidState when the stored status is no longer from.
	UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error)
}

type PGBookingRepository struct {
	db     *pgxpool.Pool
	tracer trace.Tracer
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db, tracer: otel.Tracer("shareit/repository/bookings")}
}

const bookingColumns = `b.id, b.start_date, b.end_date, b.status,
	i.id, i.name, i.description, i.available, i.owner_id,
	u.id, u.name, u.email`

const bookingFrom = `FROM bookings b
	JOIN items i ON i.id = b.item_id
	JOIN users u ON u.id = b.booker_id`

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	ctx, span := r.tracer.Start(ctx, "bookings.create",
		trace.WithAttributes(attribute.Int64("item.id", booking.Item.ID), attribute.Int64("booker.id", booking.Booker.ID)))
	defer span.End()

	err := r.db.QueryRow(ctx, `INSERT INTO bookings (start_date, end_date, item_id, booker_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`, booking.Start, booking.End, booking.Item.ID, booking.Booker.ID, booking.Status).
		Scan(&booking.ID)
	if err != nil {
		return spanError(span, fmt.Errorf("insert booking: %w", err))
	}
	return nil
}

func (r *PGBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	ctx, span := r.tracer.Start(ctx, "bookings.get", trace.WithAttributes(attribute.Int64("booking.id", id)))
	defer span.End()

	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` `+bookingFrom+` WHERE b.id = $1`, id)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("booking %d not found", id)
		}
		return nil, spanError(span, fmt.Errorf("get booking %d: %w", id, err))
	}
	return b, nil
}

func (r *PGBookingRepository) ListByBooker(ctx context.Context, bookerID int64, filter BookingFilter, page domain.Page) ([]domain.Booking, error) {
	return r.list(ctx, "bookings.list_by_booker", "b.booker_id", bookerID, filter, page)
}

func (r *PGBookingRepository) ListByItemOwner(ctx context.Context, ownerID int64, filter BookingFilter, page domain.Page) ([]domain.Booking, error) {
	return r.list(ctx, "bookings.list_by_owner", "i.owner_id", ownerID, filter, page)
}

func (r *PGBookingRepository) list(ctx context.Context, spanName, scopeColumn string, scopeID int64, filter BookingFilter, page domain.Page) ([]domain.Booking, error) {
	ctx, span := r.tracer.Start(ctx, spanName, trace.WithAttributes(
		attribute.Int64("scope.id", scopeID),
		attribute.Int("page.number", page.Number),
		attribute.Int("page.size", page.Size),
	))
	defer span.End()

	if page.Size < 1 {
		return nil, domain.InvalidInput("page size must be positive, got %d", page.Size)
	}

	where, args := buildBookingFilter(scopeColumn, scopeID, filter)
	args = append(args, page.Size, page.Offset())
	query := fmt.Sprintf(`SELECT %s %s WHERE %s ORDER BY b.start_date DESC LIMIT $%d OFFSET $%d`,
		bookingColumns, bookingFrom, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list bookings: %w", err))
	}
	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, spanError(span, err)
	}
	return bookings, nil
}

func (r *PGBookingRepository) ListByItem(ctx context.Context, itemID int64) ([]domain.Booking, error) {
	ctx, span := r.tracer.Start(ctx, "bookings.list_by_item", trace.WithAttributes(attribute.Int64("item.id", itemID)))
	defer span.End()

	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` `+bookingFrom+` WHERE b.item_id = $1 ORDER BY b.start_date DESC`, itemID)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("list item bookings: %w", err))
	}
	bookings, err := collectBookings(rows)
	if err != nil {
		return nil, spanError(span, err)
	}
	return bookings, nil
}

func (r *PGBookingRepository) EarliestEndingApproved(ctx context.Context, itemID int64) (*domain.Booking, error) {
	ctx, span := r.tracer.Start(ctx, "bookings.earliest_ending_approved", trace.WithAttributes(attribute.Int64("item.id", itemID)))
	defer span.End()

	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` `+bookingFrom+`
		WHERE b.item_id = $1 AND b.status = $2
		ORDER BY b.end_date ASC
		LIMIT 1`, itemID, domain.BookingStatusApproved)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFound("item %d has no approved bookings", itemID)
		}
		return nil, spanError(span, fmt.Errorf("earliest approved booking for item %d: %w", itemID, err))
	}
	return b, nil
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) (*domain.Booking, error) {
	ctx, span := r.tracer.Start(ctx, "bookings.update_status", trace.WithAttributes(
		attribute.Int64("booking.id", id),
		attribute.String("status.from", string(from)),
		attribute.String("status.to", string(to)),
	))
	defer span.End()

	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return nil, spanError(span, fmt.Errorf("update booking %d status: %w", id, err))
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.InvalidState("booking %d is not %s", id, from)
	}
	return r.GetByID(ctx, id)
}

// buildBookingFilter renders the WHERE clause for a scoped listing. Placeholders start at $1 with the scope id.
func buildBookingFilter(scopeColumn string, scopeID int64, filter BookingFilter) (string, []any) {
	clauses := []string{scopeColumn + " = $1"}
	args := []any{scopeID}

	add := func(expr string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(expr, len(args)))
	}
	if filter.StartBefore != nil {
		add("b.start_date < $%d", *filter.StartBefore)
	}
	if filter.StartAfter != nil {
		add("b.start_date > $%d", *filter.StartAfter)
	}
	if filter.EndBefore != nil {
		add("b.end_date < $%d", *filter.EndBefore)
	}
	if filter.EndAfter != nil {
		add("b.end_date > $%d", *filter.EndAfter)
	}
	if filter.Status != nil {
		add("b.status = $%d", string(*filter.Status))
	}
	return strings.Join(clauses, " AND "), args
}

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.Start, &b.End, &b.Status,
		&b.Item.ID, &b.Item.Name, &b.Item.Description, &b.Item.Available, &b.Item.OwnerID,
		&b.Booker.ID, &b.Booker.Name, &b.Booker.Email); err != nil {
		return nil, err
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

var _ BookingRepository = (*PGBookingRepository)(nil)
