package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure returned by the question bank wraps exactly one of these.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrUnprocessable   = errors.New("unprocessable entity")
	ErrStoreFailure    = errors.New("store failure")
)

// ErrQuestionNotFound is returned when no question has the requested id
var ErrQuestionNotFound = fmt.Errorf("question %w", ErrNotFound)

// StoreFailure tags an infrastructure error coming out of a Store adapter.
func StoreFailure(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreFailure, err)
}

// IsKnown reports whether err already carries one of the error kinds.
func IsKnown(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrUnprocessable) ||
		errors.Is(err, ErrStoreFailure)
}
