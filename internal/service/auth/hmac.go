package auth

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/ecommerce-system/ecommerce-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest accepted HMAC secret.
const MinSecretLength = 32

// NewHMACVerifier creates a TokenVerifier for HS256 tokens signed with the
// shared secret in cfg.
func NewHMACVerifier(cfg config.AuthConfig, logger *slog.Logger) (TokenVerifier, error) {
	if len(cfg.JWTSecret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d characters", MinSecretLength)
	}
	if logger == nil {
		logger = slog.Default()
	}

	key := []byte(cfg.JWTSecret)
	return &jwtVerifier{
		keyFunc: func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return key, nil
		},
		methods:  []string{jwt.SigningMethodHS256.Name},
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		leeway:   time.Duration(cfg.ClockSkewSeconds) * time.Second,
		logger:   logger.With(slog.String("component", "token_verifier"), slog.String("keys", "hmac")),
	}, nil
}
