package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)

	token, expiresAt, err := tm.GenerateToken(42, []string{"ADMIN", "USER"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.True(t, expiresAt.After(time.Now()))

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	require.EqualValues(t, 42, claims.UserID)
	require.Equal(t, []string{"ADMIN", "USER"}, claims.Roles)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)
	token, _, err := tm.GenerateToken(42, nil)
	require.NoError(t, err)

	other := NewTokenManager("different-secret", 15)
	_, err = other.ParseToken(token)
	require.Error(t, err)
}

func TestTokenExpiredRejected(t *testing.T) {
	tm := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}
	token, _, err := tm.GenerateToken(42, nil)
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
}

func TestTokenGarbageRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", 15)
	_, err := tm.ParseToken("not.a.token")
	require.Error(t, err)
}
