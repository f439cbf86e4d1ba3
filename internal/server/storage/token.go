package storage

import (
	"context"

	"github.com/iudanet/microblog/internal/models"
)

// TokenStorage defines interface for the per-user refresh token allowlist.
// A refresh token is honored only while it is present here; rotation and
// revocation work by mutating this set.
type TokenStorage interface {
	// SaveRefreshToken stores a new refresh token for its user
	SaveRefreshToken(ctx context.Context, token *models.RefreshToken) error

	// GetRefreshToken retrieves refresh token by token value
	// Returns ErrTokenNotFound if token doesn't exist
	GetRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error)

	// RotateRefreshToken atomically removes oldToken and inserts newToken
	// in a single transaction. Returns ErrTokenNotFound without inserting
	// anything if oldToken is not currently stored for newToken.UserID,
	// so two concurrent rotations of the same token cannot both succeed.
	RotateRefreshToken(ctx context.Context, oldToken string, newToken *models.RefreshToken) error

	// DeleteRefreshToken deletes the token if it is stored for userID
	// Returns ErrTokenNotFound if it is not
	DeleteRefreshToken(ctx context.Context, userID, token string) error

	// DeleteUserTokens deletes all refresh tokens for a user (revoke-all)
	// Returns number of deleted tokens
	DeleteUserTokens(ctx context.Context, userID string) (int, error)

	// DeleteExpiredTokens removes all expired tokens
	// Returns number of deleted tokens
	DeleteExpiredTokens(ctx context.Context) (int, error)
}
