package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/ecommerce-system/ecommerce-api/internal/api/shared"
	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/store"
	"github.com/go-playground/validator/v10"
)

const genericErrorMessage = "An unexpected error occurred"

// MapErrorToStatusCode returns the HTTP status and API error code for err.
// Business errors keep their own code; infrastructure errors collapse into
// INTERNAL_ERROR.
func MapErrorToStatusCode(err error) (int, string) {
	if bizErr, ok := domain.AsBusinessError(err); ok {
		switch bizErr.Code {
		case domain.CodeInvalidToken:
			return http.StatusUnauthorized, string(bizErr.Code)
		case domain.CodeUserNotFound:
			return http.StatusNotFound, string(bizErr.Code)
		case domain.CodeProductOutOfStock:
			return http.StatusConflict, string(bizErr.Code)
		default:
			return http.StatusUnprocessableEntity, string(bizErr.Code)
		}
	}

	var validationErrs validator.ValidationErrors
	switch {
	case errors.Is(err, domain.ErrValidation), errors.As(err, &validationErrs):
		return http.StatusBadRequest, shared.CodeValidationError
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, shared.CodeNotFound
	case errors.Is(err, store.ErrDuplicate):
		return http.StatusConflict, shared.CodeConflict
	case errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest, shared.CodeValidationError
	default:
		return http.StatusInternalServerError, shared.CodeInternalError
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Business error
// messages are returned verbatim; everything else gets a fixed message so
// internal details never leak.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return genericErrorMessage
	}

	if bizErr, ok := domain.AsBusinessError(err); ok {
		return bizErr.Message
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		if ve.Field == "" {
			return "Invalid request: " + ve.Message
		}
		return fmt.Sprintf("Invalid %s: %s", ve.Field, ve.Message)
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return SanitizeValidationError(validationErrs)
	}

	switch {
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, store.ErrProductNotFound):
		return "Product not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"
	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"
	case errors.Is(err, store.ErrUserExists):
		return "User already exists"
	case errors.Is(err, store.ErrDuplicate):
		return "Resource already exists"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	default:
		return genericErrorMessage
	}
}

// HandleAPIError writes the error response for err. A non-empty message
// overrides the derived one, except for business errors and 5xx responses,
// whose messages are fixed.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status, code := MapErrorToStatusCode(err)

	userMessage := GetSafeErrorMessage(err)
	_, isBiz := domain.AsBusinessError(err)
	if message != "" && !isBiz && status < http.StatusInternalServerError {
		userMessage = message
	}

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, code, userMessage, err, opts...)
}

// SanitizeValidationError turns validator errors into a short message naming
// the first failing field.
func SanitizeValidationError(errs validator.ValidationErrors) string {
	if len(errs) == 0 {
		return "Validation error"
	}
	fe := errs[0]
	return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min", "gte", "gt":
		return "too small"
	case "max", "lte", "lt":
		return "too large"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}
