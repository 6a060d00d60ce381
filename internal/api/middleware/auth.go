package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ecommerce-system/ecommerce-api/internal/api/shared"
	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/ecommerce-system/ecommerce-api/internal/platform/logger"
	"github.com/ecommerce-system/ecommerce-api/internal/service/auth"
)

// AuthMiddleware authenticates requests with bearer tokens.
type AuthMiddleware struct {
	verifier auth.TokenVerifier
}

// NewAuthMiddleware creates an AuthMiddleware backed by verifier.
func NewAuthMiddleware(verifier auth.TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// Authenticate verifies the bearer token in the Authorization header and puts
// the caller's identity into the request context. Every failure is answered
// with 401 and code INVALID_TOKEN.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r.Header.Get("Authorization"))
		if err == nil {
			var claims *auth.Claims
			claims, err = m.verifier.VerifyToken(r.Context(), token)
			if err == nil {
				ctx := shared.SetUser(r.Context(), claims.UserID, claims.Email)
				ctx = logger.WithContext(ctx,
					logger.FromContext(ctx).With(slog.String("user_id", claims.UserID.String())))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		bizErr, ok := domain.AsBusinessError(err)
		if !ok || bizErr.Code != domain.CodeInvalidToken {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				shared.CodeInternalError, "An unexpected error occurred", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
			string(bizErr.Code), bizErr.Message, err)
	})
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.NewInvalidTokenError().WithCause(auth.ErrMissingToken)
	}

	scheme, token, found := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.ContainsAny(token, " \t") {
		return "", domain.NewInvalidTokenError().WithCause(auth.ErrMalformedToken)
	}
	return token, nil
}
