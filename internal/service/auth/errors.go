package auth

import (
	"errors"

	"github.com/ecommerce-system/ecommerce-api/internal/domain"
)

// Verification failure causes. VerifyToken never returns these directly: they
// are wrapped in an INVALID_TOKEN business error and reachable with errors.Is.
var (
	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrMalformedToken indicates the token is not a well-formed JWT.
	ErrMalformedToken = errors.New("authentication token is malformed")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the nbf or iat claim lies in the future.
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrInvalidSignature indicates the signature does not verify, the
	// algorithm is not accepted, or no matching key is known.
	ErrInvalidSignature = errors.New("authentication token signature is invalid")

	// ErrInvalidClaims indicates required claims are missing or wrong.
	ErrInvalidClaims = errors.New("authentication token claims are invalid")
)

// invalidToken wraps cause in an INVALID_TOKEN business error carrying the
// default client-facing message.
func invalidToken(cause error) error {
	return domain.ErrInvalidToken.WithCause(cause)
}
