package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT("agent@travomine.com", "Employee")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.True(t, parsed.Valid)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "agent@travomine.com", claims["email"])
	assert.Equal(t, "Employee", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestRefreshTokenBoundToSession(t *testing.T) {
	token, err := GenerateRefreshToken("agent@travomine.com", "session-123")
	require.NoError(t, err)

	parsed, err := ValidateJWT(token)
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "session-123", claims["sessionId"])
	assert.Equal(t, "refresh", claims["type"])
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	_, err := ValidateJWT("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, ValidatePassword(hash, "s3cret-pass"))
	assert.False(t, ValidatePassword(hash, "wrong-pass"))
}
