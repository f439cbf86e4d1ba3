package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/iudanet/microblog/internal/server/handlers"
	"github.com/iudanet/microblog/internal/server/token"
)

// AuthMiddleware создает middleware для проверки access token.
// Проверка полностью stateless: storage не используется, только подпись
// и срок действия. ID пользователя кладется в контекст запроса.
func AuthMiddleware(logger *slog.Logger, tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header")
				http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("Invalid Authorization header format")
				http.Error(w, "Unauthorized: invalid token format", http.StatusUnauthorized)
				return
			}

			tokenString := parts[1]

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				// Отсутствующий секрет — ошибка сервера, а не клиента
				if errors.Is(err, token.ErrSecretMissing) {
					logger.Error("Token secret is not configured")
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				logger.Warn("Invalid access token", "error", err)
				http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
				return
			}

			// Добавляем ID пользователя в контекст
			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.Subject)

			logger.Debug("User authenticated", "user_id", claims.Subject)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
