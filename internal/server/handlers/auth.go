package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/microblog/internal/crypto"
	"github.com/iudanet/microblog/internal/models"
	"github.com/iudanet/microblog/internal/server/storage"
	"github.com/iudanet/microblog/internal/server/token"
	"github.com/iudanet/microblog/internal/validation"
	"github.com/iudanet/microblog/pkg/api"
)

// AuthHandler обрабатывает запросы авторизации: регистрацию, вход, выход
// и ротацию refresh token
type AuthHandler struct {
	logger       *slog.Logger
	userStorage  storage.UserStorage
	tokenStorage storage.TokenStorage
	tokens       *token.Service
}

// NewAuthHandler создает новый handler для авторизации
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, tokenStorage storage.TokenStorage, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		logger:       logger,
		userStorage:  userStorage,
		tokenStorage: tokenStorage,
		tokens:       tokens,
	}
}

// Register обрабатывает POST /auth/register
// Регистрация нового пользователя
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.String("email", req.Email), slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		h.logger.WarnContext(ctx, "invalid password", slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	user := &models.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "email already taken", slog.String("email", req.Email))
			sendError(h.logger, w, "email already taken", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("email", req.Email),
		slog.String("user_id", user.ID))

	resp := api.RegisterResponse{
		ID:       user.ID,
		Email:    user.Email,
		Username: user.Username,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Login обрабатывает POST /auth/login
// Аутентификация пользователя и выпуск пары токенов
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	user, err := h.userStorage.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			// Тот же ответ, что и при неверном пароле: нельзя раскрывать,
			// существует ли email
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("email", req.Email))
			sendError(h.logger, w, "wrong email or password", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.String("email", req.Email))
		sendError(h.logger, w, "wrong email or password", http.StatusBadRequest)
		return
	}

	// Выпуск токенов до записи в storage: при отсутствии секрета
	// запись пользователя не меняется
	accessToken, err := h.tokens.IssueAccessToken(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	refreshToken, expiresAt, err := h.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	rt := &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	if err := h.tokenStorage.SaveRefreshToken(ctx, rt); err != nil {
		h.logger.ErrorContext(ctx, "failed to save refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("email", req.Email),
		slog.String("user_id", user.ID))

	resp := api.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Refresh обрабатывает POST /auth/refresh
// Ротация refresh token: предъявленный токен можно обменять ровно один
// раз; повторное предъявление отзывает все сессии пользователя
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode refresh request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.RefreshToken == "" {
		sendError(h.logger, w, "missing refresh token", http.StatusBadRequest)
		return
	}

	claims, err := h.tokens.Parse(req.RefreshToken)
	if err != nil {
		if errors.Is(err, token.ErrSecretMissing) {
			h.logger.ErrorContext(ctx, "token secret is not configured")
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}
		h.logger.WarnContext(ctx, "invalid refresh token", slog.Any("error", err))
		sendError(h.logger, w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "refresh failed: user not found", slog.String("user_id", claims.Subject))
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	// Подпись верна, но токена нет в активном наборе: значит он уже был
	// обменян или отозван. Повторное использование — признак кражи,
	// отзываем все сессии пользователя.
	stored, err := h.tokenStorage.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "refresh token reuse detected, revoking all sessions",
				slog.String("user_id", user.ID))
			h.revokeAllTokens(ctx, user.ID)
			sendError(h.logger, w, "invalid refresh token", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if stored.UserID != user.ID {
		h.logger.WarnContext(ctx, "refresh token does not belong to subject, revoking all sessions",
			slog.String("user_id", user.ID))
		h.revokeAllTokens(ctx, user.ID)
		sendError(h.logger, w, "invalid refresh token", http.StatusBadRequest)
		return
	}

	newAccessToken, err := h.tokens.IssueAccessToken(user.ID)
	if err != nil {
		// Fail safe: старый токен уже нельзя считать надежным
		h.logger.ErrorContext(ctx, "failed to issue access token, revoking all sessions", slog.Any("error", err))
		h.revokeAllTokens(ctx, user.ID)
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	newRefreshToken, expiresAt, err := h.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue refresh token, revoking all sessions", slog.Any("error", err))
		h.revokeAllTokens(ctx, user.ID)
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	newToken := &models.RefreshToken{
		Token:     newRefreshToken,
		UserID:    user.ID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}

	// Атомарная ротация: удаление старого и вставка нового в одной
	// транзакции. Если старый уже исчез, параллельный refresh выиграл
	// гонку — трактуем как повторное использование.
	if err := h.tokenStorage.RotateRefreshToken(ctx, req.RefreshToken, newToken); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			h.logger.WarnContext(ctx, "concurrent refresh detected, revoking all sessions",
				slog.String("user_id", user.ID))
			h.revokeAllTokens(ctx, user.ID)
			sendError(h.logger, w, "invalid refresh token", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to rotate refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "tokens refreshed successfully", slog.String("user_id", user.ID))

	resp := api.TokenResponse{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Logout обрабатывает POST /auth/logout
// Завершение сессии: удаляет ровно предъявленный refresh token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode logout request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.RefreshToken == "" {
		sendError(h.logger, w, "missing refresh token", http.StatusBadRequest)
		return
	}

	claims, err := h.tokens.Parse(req.RefreshToken)
	if err != nil {
		if errors.Is(err, token.ErrSecretMissing) {
			h.logger.ErrorContext(ctx, "token secret is not configured")
			sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
			return
		}
		h.logger.WarnContext(ctx, "invalid refresh token", slog.Any("error", err))
		sendError(h.logger, w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	user, err := h.userStorage.GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "logout failed: user not found", slog.String("user_id", claims.Subject))
			sendError(h.logger, w, "user not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if err := h.tokenStorage.DeleteRefreshToken(ctx, user.ID, req.RefreshToken); err != nil {
		if errors.Is(err, storage.ErrTokenNotFound) {
			// Токен подписан нами, но в активном наборе его нет —
			// защитно отзываем все сессии пользователя
			h.logger.WarnContext(ctx, "logout with unknown refresh token, revoking all sessions",
				slog.String("user_id", user.ID))
			h.revokeAllTokens(ctx, user.ID)
			sendError(h.logger, w, "invalid refresh token", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete refresh token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged out successfully", slog.String("user_id", user.ID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "logged out"}, http.StatusOK)
}

// revokeAllTokens отзывает все refresh tokens пользователя (best effort)
func (h *AuthHandler) revokeAllTokens(ctx context.Context, userID string) {
	deleted, err := h.tokenStorage.DeleteUserTokens(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to revoke user tokens",
			slog.String("user_id", userID), slog.Any("error", err))
		return
	}
	h.logger.InfoContext(ctx, "revoked all user sessions",
		slog.String("user_id", userID), slog.Int("tokens_deleted", deleted))
}
