// Package auth implements the bearer-token + refresh-cookie credential flow:
// short-lived access tokens, longer-lived refresh tokens persisted on the
// user row, and bcrypt password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// AccessTokenTTL is the lifetime of a bearer token.
	AccessTokenTTL = 15 * time.Minute
	// RefreshTokenTTL is the lifetime of the refresh cookie and token.
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager signs and verifies access and refresh tokens with separate
// secrets.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
}

func NewTokenManager(accessSecret, refreshSecret string) *TokenManager {
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
	}
}

// GenerateAccessToken issues a 15-minute bearer token for the user.
func (m *TokenManager) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return m.generate(userID, m.accessSecret, AccessTokenTTL)
}

// GenerateRefreshToken issues a 7-day refresh token for the user.
func (m *TokenManager) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return m.generate(userID, m.refreshSecret, RefreshTokenTTL)
}

func (m *TokenManager) generate(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// VerifyAccessToken validates a bearer token and returns the user ID.
func (m *TokenManager) VerifyAccessToken(tokenString string) (uuid.UUID, error) {
	return m.verify(tokenString, m.accessSecret)
}

// VerifyRefreshToken validates a refresh token and returns the user ID.
func (m *TokenManager) VerifyRefreshToken(tokenString string) (uuid.UUID, error) {
	return m.verify(tokenString, m.refreshSecret)
}

func (m *TokenManager) verify(tokenString string, secret []byte) (uuid.UUID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return userID, nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
