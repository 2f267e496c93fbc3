package domain

import (
	"strings"
	"time"
)

// BookingCategory is the derived classification used to list bookings. It is never persisted.
type BookingCategory string

const (
	CategoryAll      BookingCategory = "ALL"
	CategoryCurrent  BookingCategory = "CURRENT"
	CategoryPast     BookingCategory = "PAST"
	CategoryFuture   BookingCategory = "FUTURE"
	CategoryWaiting  BookingCategory = "WAITING"
	CategoryRejected BookingCategory = "REJECTED"
)

// ParseCategory accepts any letter case. An empty value means ALL.
func ParseCategory(value string) (BookingCategory, error) {
	if strings.TrimSpace(value) == "" {
		return CategoryAll, nil
	}
	switch c := BookingCategory(strings.ToUpper(value)); c {
	case CategoryAll, CategoryCurrent, CategoryPast, CategoryFuture, CategoryWaiting, CategoryRejected:
		return c, nil
	default:
		return "", UnsupportedCategory(value)
	}
}

// Match reports whether the booking falls into the category at the given instant.
// Stores use it as the reference semantics for their query predicates.
func (c BookingCategory) Match(b Booking, now time.Time) bool {
	switch c {
	case CategoryAll:
		return true
	case CategoryCurrent:
		return b.Start.Before(now) && b.End.After(now)
	case CategoryPast:
		return b.Start.Before(now) && b.End.Before(now)
	case CategoryFuture:
		return b.Start.After(now)
	case CategoryWaiting:
		return b.Status == BookingStatusWaiting
	case CategoryRejected:
		return b.Status == BookingStatusRejected
	}
	return false
}

// Page is a zero-based page index and a page size.
type Page struct {
	Number int
	Size   int
}

// PageFromOffset converts an item offset into the page that contains it (truncating).
func PageFromOffset(from, size int) (Page, error) {
	if size <= 0 {
		return Page{}, InvalidInput("size must be positive, got %d", size)
	}
	if from < 0 {
		return Page{}, InvalidInput("from must not be negative, got %d", from)
	}
	return Page{Number: from / size, Size: size}, nil
}

func (p Page) Offset() int {
	return p.Number * p.Size
}
