package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no settings record has been saved yet.
	ErrNotFound = errors.New("settings not found")

	// ErrInvalidSettings is returned when a record fails write-time validation.
	ErrInvalidSettings = errors.New("invalid settings")
)

// ValidationError names the offending field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid settings: %s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidSettings
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
