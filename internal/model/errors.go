package model

import (
	"errors"
	"fmt"
)

// Domain error kinds. Every error returned by the services and stores wraps
// exactly one of these sentinels so callers can branch with errors.Is.
var (
	// ErrValidation covers missing or malformed fields, inverted or past
	// dates, and non-conforming stay lengths.
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned for unknown accommodation, guest, property,
	// or reservation identifiers.
	ErrNotFound = errors.New("not found")
	// ErrCapacity is returned when the guest count exceeds the unit's
	// maximum.
	ErrCapacity = errors.New("capacity exceeded")
	// ErrConflict is returned for an overlapping active reservation at
	// write time or an illegal lifecycle transition.
	ErrConflict = errors.New("conflict")
	// ErrPersistence wraps underlying storage failures.
	ErrPersistence = errors.New("persistence error")
)

// Validationf wraps ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Capacityf wraps ErrCapacity with a formatted message.
func Capacityf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrCapacity, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a formatted message.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Persistencef wraps ErrPersistence with a formatted message and cause.
func Persistencef(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
