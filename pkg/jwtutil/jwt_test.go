package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkerrobotics/luckydraw-admin/pkg/config"
)

func newTestUtil() *JWTUtil {
	return NewJWTUtil(&config.JWTConfig{
		SigningKey:      "test-signing-key",
		ExpirationHours: 24,
	})
}

func TestGenerateAndValidateAdminToken(t *testing.T) {
	j := newTestUtil()

	token, err := j.GenerateToken("admin@example.com", 7, "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, TokenTypeAdmin, claims.TokenType)
	assert.Nil(t, claims.TenantID)
}

func TestGenerateAndValidateTenantToken(t *testing.T) {
	j := newTestUtil()

	token, err := j.GenerateTenantToken("shop@example.com", 42)
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "shop@example.com", claims.Email)
	require.NotNil(t, claims.TenantID)
	assert.Equal(t, uint(42), *claims.TenantID)
	assert.Equal(t, TokenTypeTenant, claims.TokenType)
	assert.Zero(t, claims.UserID)
}

func TestValidateTokenWrongKey(t *testing.T) {
	j := newTestUtil()
	token, err := j.GenerateToken("admin@example.com", 1, "ADMIN")
	require.NoError(t, err)

	other := NewJWTUtil(&config.JWTConfig{SigningKey: "different-key", ExpirationHours: 24})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	j := newTestUtil()
	_, err := j.ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExpiry(t *testing.T) {
	j := newTestUtil()
	assert.Equal(t, 24*time.Hour, j.Expiry())

	token, err := j.GenerateToken("admin@example.com", 1, "ADMIN")
	require.NoError(t, err)

	claims, err := j.ValidateToken(token)
	require.NoError(t, err)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}
