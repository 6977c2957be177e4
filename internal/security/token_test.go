package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters-long"

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	access, err := m.GenerateAccessToken(42, "sasha@example.com", "CUSTOMER", "sess-1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, int32(42), claims.UserID)
	assert.Equal(t, "sasha@example.com", claims.Email)
	assert.Equal(t, "CUSTOMER", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Equal(t, "sess-1", claims.SessionID)
}

func TestTokenManager_RefreshTokenType(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, 24*time.Hour)

	refresh, err := m.GenerateRefreshToken(7, "o@example.com", "sess-2")
	require.NoError(t, err)

	claims, err := m.ValidateToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager(testSecret, -time.Minute, 24*time.Hour)

	access, err := m.GenerateAccessToken(1, "a@example.com", "STYLIST", "sess-3")
	require.NoError(t, err)

	_, err = m.ValidateToken(access)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour, 24*time.Hour)
	other := NewTokenManager("another-secret-that-is-32-chars-long!!", time.Hour, 24*time.Hour)

	access, err := m.GenerateAccessToken(1, "a@example.com", "OWNER", "sess-4")
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCSRFIssuer(t *testing.T) {
	issuer := NewCSRFIssuer(testSecret)

	token := issuer.Token("sess-1")
	assert.NotEmpty(t, token)
	assert.True(t, issuer.Verify("sess-1", token))
	assert.False(t, issuer.Verify("sess-2", token))
	assert.False(t, issuer.Verify("sess-1", token+"x"))

	// Deterministic per session.
	assert.Equal(t, token, issuer.Token("sess-1"))
}
