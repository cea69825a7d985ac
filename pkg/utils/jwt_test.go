package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", "essay-ai-api")

	token, err := m.GenerateToken("u-1", "pro", "access", time.Minute)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "pro", claims.Plan)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "essay-ai-api", claims.Issuer)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", "essay-ai-api")

	token, err := m.GenerateToken("u-1", "", "access", -time.Minute)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret", "essay-ai-api")
	other := NewJWTManager("other-secret", "essay-ai-api")

	token, err := m.GenerateToken("u-1", "", "access", time.Minute)
	require.NoError(t, err)

	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
