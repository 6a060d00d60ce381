package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ecommerce-system/ecommerce-api/internal/api/shared"
	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// errMissingIdentity means an authenticated route ran without an identity in
// context, i.e. the auth middleware was not applied.
var errMissingIdentity = errors.New("authenticated user not found in request context")

// getPathUUID parses the chi path parameter paramName as a UUID.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	raw := chi.URLParam(r, paramName)
	if raw == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required", domain.ErrValidation)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "has invalid format", domain.ErrInvalidID)
	}
	return id, nil
}

// handlePathUUID is getPathUUID that writes the 400 response itself.
func handlePathUUID(w http.ResponseWriter, r *http.Request, paramName string) (uuid.UUID, bool) {
	id, err := getPathUUID(r, paramName)
	if err != nil {
		logger.FromContext(r.Context()).Debug("invalid path parameter",
			slog.String("param_name", paramName))
		HandleAPIError(w, r, err, "")
		return uuid.Nil, false
	}
	return id, true
}

// handleUserID returns the authenticated user ID, writing a 500 response when
// it is missing.
func handleUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := shared.GetUserID(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Error("user ID not found in request context")
		HandleAPIError(w, r, errMissingIdentity, "")
		return uuid.Nil, false
	}
	return userID, true
}

// handleQueryInt parses an integer query parameter, writing a 400 response
// when it is not a number.
func handleQueryInt(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	v, err := shared.QueryInt(r.URL.Query(), name, def)
	if err != nil {
		HandleAPIError(w, r, domain.NewValidationError(name, "must be an integer", domain.ErrValidation), "")
		return 0, false
	}
	return v, true
}
