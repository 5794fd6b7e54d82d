package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a-long-enough-secret-for-hs256-tests"

func TestGenerateAndValidateToken(t *testing.T) {
	svc := NewTokenService(testSecret, "interview-coach")

	token, err := svc.GenerateToken("user-1", "ana@example.com", "Ana", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewTokenService(testSecret, "")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := svc.GenerateToken("user-1", "", "", time.Hour)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateTokenRejectsWrongSecretAndIssuer(t *testing.T) {
	token, err := NewTokenService("other-secret", "").GenerateToken("user-1", "", "", time.Hour)
	require.NoError(t, err)
	_, err = NewTokenService(testSecret, "").ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	token, err = NewTokenService(testSecret, "someone-else").GenerateToken("user-1", "", "", time.Hour)
	require.NoError(t, err)
	_, err = NewTokenService(testSecret, "interview-coach").ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenRejectsOtherAlgorithms(t *testing.T) {
	claims := Claims{UID: "user-1", RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, "").ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerateTokenRequiresUID(t *testing.T) {
	_, err := NewTokenService(testSecret, "").GenerateToken("", "", "", time.Hour)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
