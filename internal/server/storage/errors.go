package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token is not in the user's
	// active set (never issued, already rotated out, or revoked)
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrPostNotFound indicates that post was not found in storage
	ErrPostNotFound = errors.New("post not found")

	// ErrCommentNotFound indicates that comment was not found in storage
	ErrCommentNotFound = errors.New("comment not found")
)
