// Package storage declares the client-side session storage contract.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrAuthNotFound indicates that no session is stored locally
var ErrAuthNotFound = errors.New("auth data not found")

// AuthData представляет сохраненную сессию пользователя
type AuthData struct {
	UserID       string    `json:"user_id"`       // UUID пользователя
	AccessToken  string    `json:"access_token"`  // JWT access token
	RefreshToken string    `json:"refresh_token"` // JWT refresh token
	SavedAt      time.Time `json:"saved_at"`      // время сохранения
}

// AuthStore defines interface for persisting the current session
type AuthStore interface {
	// SaveAuth stores authentication data, replacing any previous session
	SaveAuth(ctx context.Context, auth *AuthData) error

	// GetAuth retrieves stored authentication data
	// Returns ErrAuthNotFound if no session is stored
	GetAuth(ctx context.Context) (*AuthData, error)

	// DeleteAuth removes stored authentication data (logout)
	// Returns ErrAuthNotFound if no session is stored
	DeleteAuth(ctx context.Context) error
}
