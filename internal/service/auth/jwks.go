package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/ecommerce-system/ecommerce-api/internal/config"
	"github.com/ecommerce-system/ecommerce-api/internal/redact"
	"github.com/golang-jwt/jwt/v5"
)

// JWKSRefreshInterval is how often the key set is refetched in the background.
const JWKSRefreshInterval = time.Hour

// asymmetricMethods are the algorithms accepted for JWKS-backed tokens.
var asymmetricMethods = []string{
	jwt.SigningMethodRS256.Name,
	jwt.SigningMethodRS384.Name,
	jwt.SigningMethodRS512.Name,
	jwt.SigningMethodES256.Name,
	jwt.SigningMethodES384.Name,
	jwt.SigningMethodPS256.Name,
}

// JWKSVerifier verifies tokens against keys published by the identity
// provider. Keys are refreshed hourly and whenever a token names an unknown
// key ID.
type JWKSVerifier struct {
	*jwtVerifier
	jwks *keyfunc.JWKS
}

// NewJWKSVerifier fetches the key set at cfg.JWKSURL. Background refresh stops
// when ctx is cancelled or Close is called.
func NewJWKSVerifier(ctx context.Context, cfg config.AuthConfig, logger *slog.Logger) (*JWKSVerifier, error) {
	if cfg.JWKSURL == "" {
		return nil, errors.New("jwks url is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "token_verifier"), slog.String("keys", "jwks"))

	jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
		Ctx:               ctx,
		RefreshInterval:   JWKSRefreshInterval,
		RefreshRateLimit:  time.Minute,
		RefreshTimeout:    10 * time.Second,
		RefreshUnknownKID: true,
		RefreshErrorHandler: func(err error) {
			logger.Warn("failed to refresh JWKS", slog.String("error", redact.Error(err)))
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch JWKS: %w", err)
	}

	logger.Info("JWKS loaded", slog.Int("keys", len(jwks.KIDs())))

	return &JWKSVerifier{
		jwtVerifier: &jwtVerifier{
			keyFunc:  jwks.Keyfunc,
			methods:  asymmetricMethods,
			issuer:   cfg.Issuer,
			audience: cfg.Audience,
			leeway:   time.Duration(cfg.ClockSkewSeconds) * time.Second,
			logger:   logger,
		},
		jwks: jwks,
	}, nil
}

// Close stops the background refresh.
func (v *JWKSVerifier) Close() {
	v.jwks.EndBackground()
}

// NewTokenVerifier picks the JWKS verifier when a JWKS URL is configured and
// the HMAC verifier otherwise. The returned close function is never nil.
func NewTokenVerifier(ctx context.Context, cfg config.AuthConfig, logger *slog.Logger) (TokenVerifier, func(), error) {
	if cfg.JWKSURL != "" {
		v, err := NewJWKSVerifier(ctx, cfg, logger)
		if err != nil {
			return nil, func() {}, err
		}
		return v, v.Close, nil
	}

	v, err := NewHMACVerifier(cfg, logger)
	if err != nil {
		return nil, func() {}, err
	}
	return v, func() {}, nil
}
