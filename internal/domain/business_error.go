package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable, machine-readable classification of a business
// error. Clients branch on the code; the message is for humans.
type ErrorCode string

// Business error codes. The string values are part of the public API and
// must not change.
const (
	// CodeInvalidToken: the authentication token is absent, malformed, or expired.
	CodeInvalidToken ErrorCode = "INVALID_TOKEN"

	// CodeProductOutOfStock: the requested quantity exceeds available inventory.
	CodeProductOutOfStock ErrorCode = "PRODUCT_OUT_OF_STOCK"

	// CodeUserNotFound: the referenced user identifier has no record.
	CodeUserNotFound ErrorCode = "USER_NOT_FOUND"
)

// Default messages used by the no-argument constructors.
const (
	DefaultInvalidTokenMessage      = "token is invalid or has expired"
	DefaultProductOutOfStockMessage = "insufficient product stock"
	DefaultUserNotFoundMessage      = "user not found"
)

// BusinessError is an application-level failure, as opposed to an
// infrastructure fault. It pairs a stable Code with a client-safe Message and
// may carry the underlying cause for logging.
type BusinessError struct {
	Code    ErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause, if any.
func (e *BusinessError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a BusinessError with the same code. Messages
// and causes are ignored, so errors.Is(err, ErrUserNotFound) matches every
// user-not-found error.
func (e *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause returns a copy of e that wraps cause. The receiver is not modified,
// which keeps the package-level sentinels immutable.
func (e *BusinessError) WithCause(cause error) *BusinessError {
	return &BusinessError{
		Code:    e.Code,
		Message: e.Message,
		Err:     cause,
	}
}

// NewBusinessError creates a BusinessError with an explicit code and message.
func NewBusinessError(code ErrorCode, message string) *BusinessError {
	return &BusinessError{Code: code, Message: message}
}

// NewInvalidTokenError returns an INVALID_TOKEN error with the default message.
func NewInvalidTokenError() *BusinessError {
	return NewBusinessError(CodeInvalidToken, DefaultInvalidTokenMessage)
}

// NewInvalidTokenErrorWithMessage returns an INVALID_TOKEN error with message.
func NewInvalidTokenErrorWithMessage(message string) *BusinessError {
	return NewBusinessError(CodeInvalidToken, message)
}

// NewProductOutOfStockError returns a PRODUCT_OUT_OF_STOCK error with the
// default message.
func NewProductOutOfStockError() *BusinessError {
	return NewBusinessError(CodeProductOutOfStock, DefaultProductOutOfStockMessage)
}

// NewProductOutOfStockErrorWithMessage returns a PRODUCT_OUT_OF_STOCK error
// with message.
func NewProductOutOfStockErrorWithMessage(message string) *BusinessError {
	return NewBusinessError(CodeProductOutOfStock, message)
}

// NewUserNotFoundError returns a USER_NOT_FOUND error with the default message.
func NewUserNotFoundError() *BusinessError {
	return NewBusinessError(CodeUserNotFound, DefaultUserNotFoundMessage)
}

// NewUserNotFoundErrorWithMessage returns a USER_NOT_FOUND error with message.
func NewUserNotFoundErrorWithMessage(message string) *BusinessError {
	return NewBusinessError(CodeUserNotFound, message)
}

// Sentinels for classification with errors.Is. Never return these directly
// with a cause attached; use WithCause, which copies.
var (
	ErrInvalidToken      = NewInvalidTokenError()
	ErrProductOutOfStock = NewProductOutOfStockError()
	ErrUserNotFound      = NewUserNotFoundError()
)

// AsBusinessError unwraps err until it finds a BusinessError.
func AsBusinessError(err error) (*BusinessError, bool) {
	var bizErr *BusinessError
	if errors.As(err, &bizErr) {
		return bizErr, true
	}
	return nil, false
}

// ErrorCodeOf returns the business code carried by err, or "" when err is not
// (and does not wrap) a BusinessError.
func ErrorCodeOf(err error) ErrorCode {
	if bizErr, ok := AsBusinessError(err); ok {
		return bizErr.Code
	}
	return ""
}
