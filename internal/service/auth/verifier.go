package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ecommerce-system/ecommerce-api/internal/platform/logger"
	"github.com/ecommerce-system/ecommerce-api/internal/redact"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenVerifier checks bearer tokens issued by the identity provider.
type TokenVerifier interface {
	// VerifyToken validates tokenString and returns its claims.
	// Every failure is an INVALID_TOKEN business error whose cause is one of
	// the Err* values in this package.
	VerifyToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified identity carried by a token.
type Claims struct {
	UserID    uuid.UUID // parsed from sub
	Email     string
	Issuer    string
	ExpiresAt time.Time
	IssuedAt  time.Time
	ID        string
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// jwtVerifier holds the parsing rules shared by every key source.
type jwtVerifier struct {
	keyFunc  jwt.Keyfunc
	methods  []string
	issuer   string
	audience string
	leeway   time.Duration
	timeFunc func() time.Time
	logger   *slog.Logger
}

func (v *jwtVerifier) VerifyToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContextOrDefault(ctx, v.logger)

	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		log.Debug("token validation failed: missing token")
		return nil, invalidToken(ErrMissingToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithLeeway(v.leeway),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	}
	if v.timeFunc != nil {
		opts = append(opts, jwt.WithTimeFunc(v.timeFunc))
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, v.keyFunc, opts...)
	if err != nil {
		cause := classify(err)
		log.Debug("token validation failed",
			slog.String("reason", redact.Error(cause)),
			slog.String("error", redact.Error(err)))
		return nil, invalidToken(cause)
	}

	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		log.Debug("token validation failed: unexpected claims type")
		return nil, invalidToken(ErrInvalidClaims)
	}

	userID, err := uuid.Parse(tc.Subject)
	if err != nil || userID == uuid.Nil {
		log.Debug("token validation failed: subject is not a user ID")
		return nil, invalidToken(fmt.Errorf("%w: subject is not a valid user ID", ErrInvalidClaims))
	}

	claims := &Claims{
		UserID: userID,
		Email:  tc.Email,
		Issuer: tc.Issuer,
		ID:     tc.ID,
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}

	log.Debug("token validated successfully",
		slog.String("user_id", userID.String()),
		slog.String("token_id", claims.ID))
	return claims, nil
}

// classify maps a jwt parse error to one of the package causes.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformedToken
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpiredToken
	case errors.Is(err, jwt.ErrTokenNotValidYet), errors.Is(err, jwt.ErrTokenUsedBeforeIssued):
		return ErrTokenNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSignature
	default:
		return ErrInvalidClaims
	}
}
