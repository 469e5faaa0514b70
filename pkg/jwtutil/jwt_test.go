package jwtutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestGenerateTokens_ClaimsRoundTrip(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateTokens("68b1c2d3e4f5a6b7c8d9e0f1", true)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := m.VerifyAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "68b1c2d3e4f5a6b7c8d9e0f1", claims.ID)
	assert.True(t, claims.IsAdmin)

	claims, err = m.VerifyRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "68b1c2d3e4f5a6b7c8d9e0f1", claims.ID)
	assert.True(t, claims.IsAdmin)
}

func TestVerify_CrossUseRejected(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateTokens("uid-1", false)
	require.NoError(t, err)

	// A refresh token must not pass as an access token and vice versa.
	_, err = m.VerifyAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSecretRejected(t *testing.T) {
	m := newTestManager()
	other := NewManager("other-access", "other-refresh", time.Hour, time.Hour)

	pair, err := m.GenerateTokens("uid-1", false)
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_ExpiredRejected(t *testing.T) {
	m := NewManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	pair, err := m.GenerateTokens("uid-1", false)
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyRefreshToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	m := newTestManager()

	_, err := m.VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyRefreshToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
