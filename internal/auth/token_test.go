package auth

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret")
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	got, err := m.VerifyAccessToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	token, err := m.GenerateRefreshToken(userID)
	assert.NoError(t, err)

	got, err := m.VerifyRefreshToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestAccessAndRefreshSecretsAreSeparate(t *testing.T) {
	m := newTestManager()
	userID := uuid.New()

	access, _ := m.GenerateAccessToken(userID)
	refresh, _ := m.GenerateRefreshToken(userID)

	_, err := m.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	userID := uuid.New()
	token, _ := newTestManager().GenerateAccessToken(userID)

	other := NewTokenManager("different-secret", "refresh-secret")
	_, err := other.VerifyAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m := newTestManager()

	_, err := m.VerifyAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.VerifyAccessToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter2sEcret")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2sEcret", hash)

	assert.True(t, CheckPassword(hash, "hunter2sEcret"))
	assert.False(t, CheckPassword(hash, "wrong-password"))
	assert.False(t, CheckPassword("", "hunter2sEcret"))
}
