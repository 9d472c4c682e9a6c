package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/gympos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret",
		AccessTokenExpiration: expiration,
		Issuer:                "gympos-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(time.Hour)
	userID := uuid.New()

	token, err := svc.Generate(userID, "maria", "operator")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, "Bearer", token.TokenType)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, time.Minute)

	claims, err := svc.Validate(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, "gympos-test", claims.Issuer)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_Validate_Expired(t *testing.T) {
	svc := newTestJWTService(-time.Minute)

	token, err := svc.Generate(uuid.New(), "maria", "operator")
	require.NoError(t, err)

	_, err = svc.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_Validate_WrongSecret(t *testing.T) {
	issuer := newTestJWTService(time.Hour)
	verifier := NewJWTService(config.JWTConfig{
		Secret:                "a-different-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "gympos-test",
	})

	token, err := issuer.Generate(uuid.New(), "maria", "operator")
	require.NoError(t, err)

	_, err = verifier.Validate(token.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Validate_Garbage(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_Validate_RejectsNonHMAC(t *testing.T) {
	svc := newTestJWTService(time.Hour)

	// An unsigned token must not pass the signing-method check.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID:   uuid.New().String(),
		Username: "maria",
		Role:     "operator",
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Validate(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
