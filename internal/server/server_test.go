package server

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/microblog/internal/models"
	"github.com/iudanet/microblog/internal/server/config"
	"github.com/iudanet/microblog/internal/server/storage/sqlite"
	"github.com/iudanet/microblog/pkg/api"
)

func setupTestServer(t *testing.T, secret string) http.Handler {
	t.Helper()

	store, err := sqlite.New(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})

	cfg := &config.Config{
		Addr:            ":0",
		TokenSecret:     secret,
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 720 * time.Hour,
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))

	return New(logger, cfg, store, "test").httpServer.Handler
}

func do(t *testing.T, handler http.Handler, method, path, accessToken string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

// Полный жизненный цикл: регистрация, вход, публикация, ротация,
// повторное использование старого токена и отзыв всех сессий
func TestServer_AuthLifecycle(t *testing.T) {
	handler := setupTestServer(t, "test-secret")

	// Короткий пароль допустим
	w := do(t, handler, http.MethodPost, "/auth/register", "", api.RegisterRequest{
		Email:    "a@b.co",
		Username: "x",
		Password: "pw",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Повторная регистрация того же email
	w = do(t, handler, http.MethodPost, "/auth/register", "", api.RegisterRequest{
		Email:    "a@b.co",
		Username: "y",
		Password: "pw",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, handler, http.MethodPost, "/auth/login", "", api.LoginRequest{
		Email:    "a@b.co",
		Password: "pw",
	})
	require.Equal(t, http.StatusOK, w.Code)
	session := decode[api.LoginResponse](t, w)

	// Публикация без токена отклоняется
	w = do(t, handler, http.MethodPost, "/posts", "", api.CreatePostRequest{Title: "hello"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// С токеном проходит, автор из токена
	w = do(t, handler, http.MethodPost, "/posts", session.AccessToken, api.CreatePostRequest{Title: "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	post := decode[models.Post](t, w)
	assert.Equal(t, session.UserID, post.Sender)

	// Чтение публичное
	w = do(t, handler, http.MethodGet, "/posts/"+post.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Ротация выдает новую пару
	w = do(t, handler, http.MethodPost, "/auth/refresh", "", api.RefreshRequest{
		RefreshToken: session.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)
	rotated := decode[api.TokenResponse](t, w)
	assert.NotEqual(t, session.RefreshToken, rotated.RefreshToken)

	// Старый refresh token отработан: повторное предъявление не только
	// отклоняется, но и отзывает свежевыданную пару
	w = do(t, handler, http.MethodPost, "/auth/refresh", "", api.RefreshRequest{
		RefreshToken: session.RefreshToken,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, handler, http.MethodPost, "/auth/refresh", "", api.RefreshRequest{
		RefreshToken: rotated.RefreshToken,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_LogoutEndsSession(t *testing.T) {
	handler := setupTestServer(t, "test-secret")

	w := do(t, handler, http.MethodPost, "/auth/register", "", api.RegisterRequest{
		Email:    "a@b.co",
		Username: "x",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, handler, http.MethodPost, "/auth/login", "", api.LoginRequest{
		Email:    "a@b.co",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	session := decode[api.LoginResponse](t, w)

	w = do(t, handler, http.MethodPost, "/auth/logout", "", api.LogoutRequest{
		RefreshToken: session.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// После выхода refresh token мертв
	w = do(t, handler, http.MethodPost, "/auth/refresh", "", api.RefreshRequest{
		RefreshToken: session.RefreshToken,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_MissingSecret(t *testing.T) {
	handler := setupTestServer(t, "")

	// Регистрация токенов не требует и работает без секрета
	w := do(t, handler, http.MethodPost, "/auth/register", "", api.RegisterRequest{
		Email:    "a@b.co",
		Username: "x",
		Password: "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// Вход и защищенные операции отвечают 500, а не тихо пропускают
	w = do(t, handler, http.MethodPost, "/auth/login", "", api.LoginRequest{
		Email:    "a@b.co",
		Password: "secret123",
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = do(t, handler, http.MethodPost, "/posts", "some-token", api.CreatePostRequest{Title: "hi"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_HealthAndMethodRouting(t *testing.T) {
	handler := setupTestServer(t, "test-secret")

	w := do(t, handler, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Метод не из паттерна
	w = do(t, handler, http.MethodGet, "/auth/login", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
