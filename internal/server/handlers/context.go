package handlers

import "context"

type contextKey string

// UserIDKey is the context key under which the auth middleware stores the
// authenticated user's ID for downstream handlers.
const UserIDKey contextKey = "user_id"

// UserIDFromContext возвращает ID аутентифицированного пользователя,
// положенный в контекст auth middleware
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(UserIDKey).(string)
	return userID, ok
}
