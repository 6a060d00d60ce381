package auth

import (
	"context"
	"testing"
	"time"

	"github.com/ecommerce-system/ecommerce-api/internal/config"
	"github.com/ecommerce-system/ecommerce-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "thisisaverysecuresecretkeythatisatleast32characterslong"

func signHS256(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims(userID uuid.UUID) tokenClaims {
	now := time.Now()
	return tokenClaims{
		Email: "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    "https://id.example.com",
			Audience:  jwt.ClaimStrings{"ecommerce-api"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			ID:        "token-1",
		},
	}
}

func TestNewHMACVerifier_RejectsShortSecret(t *testing.T) {
	_, err := NewHMACVerifier(config.AuthConfig{JWTSecret: "short"}, nil)
	assert.Error(t, err)
}

func TestHMACVerifier_VerifyToken(t *testing.T) {
	userID := uuid.New()
	cfg := config.AuthConfig{
		JWTSecret:        testSecret,
		Issuer:           "https://id.example.com",
		Audience:         "ecommerce-api",
		ClockSkewSeconds: 0,
	}
	v, err := NewHMACVerifier(cfg, nil)
	require.NoError(t, err)

	expired := validClaims(userID)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))

	future := validClaims(userID)
	future.NotBefore = jwt.NewNumericDate(time.Now().Add(time.Hour))

	wrongIssuer := validClaims(userID)
	wrongIssuer.Issuer = "https://evil.example.com"

	wrongAudience := validClaims(userID)
	wrongAudience.Audience = jwt.ClaimStrings{"someone-else"}

	badSubject := validClaims(userID)
	badSubject.Subject = "not-a-uuid"

	noExpiry := validClaims(userID)
	noExpiry.ExpiresAt = nil

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, validClaims(userID)).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		wantCause error
	}{
		{name: "empty", token: "", wantCause: ErrMissingToken},
		{name: "whitespace", token: "   ", wantCause: ErrMissingToken},
		{name: "garbage", token: "not.a.jwt", wantCause: ErrMalformedToken},
		{name: "expired", token: signHS256(t, testSecret, expired), wantCause: ErrExpiredToken},
		{name: "not yet valid", token: signHS256(t, testSecret, future), wantCause: ErrTokenNotYetValid},
		{name: "wrong secret", token: signHS256(t, testSecret+"x", validClaims(userID)), wantCause: ErrInvalidSignature},
		{name: "alg none", token: noneToken, wantCause: ErrInvalidSignature},
		{name: "wrong issuer", token: signHS256(t, testSecret, wrongIssuer), wantCause: ErrInvalidClaims},
		{name: "wrong audience", token: signHS256(t, testSecret, wrongAudience), wantCause: ErrInvalidClaims},
		{name: "subject not a uuid", token: signHS256(t, testSecret, badSubject), wantCause: ErrInvalidClaims},
		{name: "missing expiry", token: signHS256(t, testSecret, noExpiry), wantCause: ErrInvalidClaims},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := v.VerifyToken(context.Background(), tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, domain.ErrInvalidToken)
			assert.ErrorIs(t, err, tt.wantCause)
			assert.Equal(t, domain.CodeInvalidToken, domain.ErrorCodeOf(err))

			bizErr, ok := domain.AsBusinessError(err)
			require.True(t, ok)
			assert.Equal(t, domain.DefaultInvalidTokenMessage, bizErr.Message)
		})
	}

	t.Run("valid", func(t *testing.T) {
		claims, err := v.VerifyToken(context.Background(), signHS256(t, testSecret, validClaims(userID)))
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, "ada@example.com", claims.Email)
		assert.Equal(t, "https://id.example.com", claims.Issuer)
		assert.Equal(t, "token-1", claims.ID)
		assert.False(t, claims.ExpiresAt.IsZero())
		assert.False(t, claims.IssuedAt.IsZero())
	})
}

func TestHMACVerifier_ClockSkew(t *testing.T) {
	userID := uuid.New()
	claims := validClaims(userID)
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-30 * time.Second))
	token := signHS256(t, testSecret, claims)

	strict, err := NewHMACVerifier(config.AuthConfig{JWTSecret: testSecret}, nil)
	require.NoError(t, err)
	_, err = strict.VerifyToken(context.Background(), token)
	assert.ErrorIs(t, err, ErrExpiredToken)

	lenient, err := NewHMACVerifier(config.AuthConfig{JWTSecret: testSecret, ClockSkewSeconds: 120}, nil)
	require.NoError(t, err)
	got, err := lenient.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)
}

func TestHMACVerifier_IssuerAndAudienceOptional(t *testing.T) {
	v, err := NewHMACVerifier(config.AuthConfig{JWTSecret: testSecret}, nil)
	require.NoError(t, err)

	claims := validClaims(uuid.New())
	claims.Issuer = "anyone"
	claims.Audience = nil

	_, err = v.VerifyToken(context.Background(), signHS256(t, testSecret, claims))
	assert.NoError(t, err)
}
