// Package auth provides token managers for authenticating against
// OpenStack-compatible identity services.
package auth

import (
	"context"
	"errors"
	"time"
)

// Static errors for err113 compliance.
var (
	ErrStaticTokenCannotRefresh = errors.New("static token cannot be refreshed")
)

// TokenManager supplies auth tokens for API requests.
type TokenManager interface {
	// GetToken returns a valid token, obtaining or renewing one if needed.
	GetToken(ctx context.Context) (string, error)

	// RefreshToken forces a renewal.
	RefreshToken(ctx context.Context) error

	// SetToken manually installs a token.
	SetToken(token string, expiresAt time.Time)
}

// StaticTokenManager serves one pre-issued token.
type StaticTokenManager struct {
	token string
}

// NewStaticTokenManager creates a token manager around a fixed token.
func NewStaticTokenManager(token string) *StaticTokenManager {
	return &StaticTokenManager{token: token}
}

// GetToken returns the static token.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

// RefreshToken fails; a static token has no credentials behind it.
func (m *StaticTokenManager) RefreshToken(ctx context.Context) error {
	return ErrStaticTokenCannotRefresh
}

// SetToken replaces the static token.
func (m *StaticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}
