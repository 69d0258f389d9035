package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/securecampus/campuscore/internal/app/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    "6f1d1c3a-9b2e-4a77-8f0e-2d5a7c1b9e44",
		Email: "jane@campus.edu",
		Role:  models.RoleStudent,
	}
}

func TestSessionTokenRoundTrip(t *testing.T) {
	svc := NewJWTService(JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "campuscore.test",
	})

	token, tokenID, expiresAt, err := svc.GenerateSessionToken(testUser())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, tokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "6f1d1c3a-9b2e-4a77-8f0e-2d5a7c1b9e44", claims.UserID)
	assert.Equal(t, "jane@campus.edu", claims.Email)
	assert.Equal(t, "Student", claims.Role)
	assert.Equal(t, tokenID, claims.ID)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService(JWTConfig{SecretKey: "secret-a", TokenExp: time.Hour})
	verifier := NewJWTService(JWTConfig{SecretKey: "secret-b", TokenExp: time.Hour})

	token, _, _, err := issuer.GenerateSessionToken(testUser())
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "test-secret", TokenExp: -time.Minute})

	token, _, _, err := svc.GenerateSessionToken(testUser())
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService(JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour})

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractBearerToken(t *testing.T) {
	token, err := ExtractBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractBearerToken("")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = ExtractBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
