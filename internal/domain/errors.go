package domain

import (
	"errors"
	"fmt"
)

// Validation errors shared by the domain entities. They are usually wrapped
// in a ValidationError that names the offending field.
var (
	// ErrValidation is the generic validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an identifier is missing or malformed.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyEmail is returned when an email address is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrNameTooLong is returned when a display or product name exceeds its limit.
	ErrNameTooLong = errors.New("name is too long")

	// ErrEmptyProductName is returned when a product has no name.
	ErrEmptyProductName = errors.New("product name cannot be empty")

	// ErrNegativePrice is returned when a product price is below zero.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrNegativeStock is returned when a product stock level is below zero.
	ErrNegativeStock = errors.New("stock cannot be negative")

	// ErrInvalidQuantity is returned when a requested quantity is not positive.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// ValidationError names the field that failed validation and wraps the
// underlying sentinel so callers can still use errors.Is.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// Unwrap returns the wrapped sentinel.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError match ErrValidation in addition to its own sentinel.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError builds a ValidationError for field.
func NewValidationError(field, message string, err error) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
