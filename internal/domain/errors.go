package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidState        = errors.New("invalid state")
	ErrInvalidInput        = errors.New("invalid input")
	ErrUnsupportedCategory = errors.New("unsupported category")
)

// Error is a business failure of a given kind with a caller-facing message.
type Error struct {
	Kind    error
	Message string
	// masked errors also match ErrNotFound so callers cannot tell them apart from a missing entity.
	masked bool
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	return e.masked && target == ErrNotFound
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...)}
}

// Masked is a Forbidden failure reported as not found.
func Masked(format string, args ...any) error {
	return &Error{Kind: ErrForbidden, Message: fmt.Sprintf(format, args...), masked: true}
}

func InvalidState(format string, args ...any) error {
	return &Error{Kind: ErrInvalidState, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) error {
	return &Error{Kind: ErrInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func UnsupportedCategory(value string) error {
	return &Error{Kind: ErrUnsupportedCategory, Message: fmt.Sprintf("Unknown state: %s", value)}
}
