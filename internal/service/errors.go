package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks caller input that can never succeed as sent.
	ErrValidation      = errors.New("validation failed")
	ErrNoCompletedTask = errors.New("no completed task found")
	ErrInvalidAmount   = errors.New("points amount must be positive")
)

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
