package gps

import (
	"context"
	"errors"
)

// Providers return these (optionally wrapped) so failures can be categorized
var (
	ErrPermissionDenied    = errors.New("permission denied")
	ErrPositionUnavailable = errors.New("position unavailable")
	ErrTimeout             = errors.New("position request timed out")
)

type ErrorCategory string

const (
	CategoryPermission  ErrorCategory = "permission"
	CategoryUnavailable ErrorCategory = "unavailable"
	CategoryTimeout     ErrorCategory = "timeout"
	CategoryUnknown     ErrorCategory = "unknown"
)

var categoryMessages = map[ErrorCategory]string{
	CategoryPermission:  "Location access was denied. Allow location access to use GPS tracking.",
	CategoryUnavailable: "Your position is currently unavailable. Check that location services are on.",
	CategoryTimeout:     "Timed out waiting for a GPS fix. Please try again.",
	CategoryUnknown:     "An unknown error occurred while getting your location.",
}

// Message is the user facing text for c
func (c ErrorCategory) Message() string {
	if msg, ok := categoryMessages[c]; ok {
		return msg
	}
	return categoryMessages[CategoryUnknown]
}

// PositionError is a categorized geolocation failure
type PositionError struct {
	Category ErrorCategory
	Err      error
}

func (e *PositionError) Error() string {
	return e.Category.Message()
}

func (e *PositionError) Unwrap() error {
	return e.Err
}

// Categorize maps any provider error onto a PositionError
func Categorize(err error) *PositionError {
	if err == nil {
		return nil
	}

	var pe *PositionError
	if errors.As(err, &pe) {
		return pe
	}

	category := CategoryUnknown
	switch {
	case errors.Is(err, ErrPermissionDenied):
		category = CategoryPermission
	case errors.Is(err, ErrPositionUnavailable):
		category = CategoryUnavailable
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		category = CategoryTimeout
	}

	return &PositionError{Category: category, Err: err}
}
