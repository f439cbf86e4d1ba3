// Package server wires storage, handlers and middleware into an HTTP server.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/microblog/internal/server/config"
	"github.com/iudanet/microblog/internal/server/handlers"
	"github.com/iudanet/microblog/internal/server/middleware"
	"github.com/iudanet/microblog/internal/server/storage/sqlite"
	"github.com/iudanet/microblog/internal/server/token"
)

// Server представляет HTTP сервер приложения
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
}

// New создает сервер с настроенным роутингом и цепочкой middleware
func New(logger *slog.Logger, cfg *config.Config, store *sqlite.Storage, version string) *Server {
	tokens := token.NewService(cfg.TokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	authHandler := handlers.NewAuthHandler(logger, store, store, tokens)
	postsHandler := handlers.NewPostsHandler(logger, store)
	commentsHandler := handlers.NewCommentsHandler(logger, store, store)
	healthHandler := handlers.NewHealthHandler(logger, version)

	authRequired := middleware.AuthMiddleware(logger, tokens)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /auth/refresh", authHandler.Refresh)

	// Чтение публичное, изменение — только с валидным access token
	mux.HandleFunc("GET /posts", postsHandler.List)
	mux.HandleFunc("GET /posts/{id}", postsHandler.GetByID)
	mux.Handle("POST /posts", authRequired(http.HandlerFunc(postsHandler.Create)))
	mux.Handle("PUT /posts/{id}", authRequired(http.HandlerFunc(postsHandler.Update)))
	mux.Handle("DELETE /posts/{id}", authRequired(http.HandlerFunc(postsHandler.Delete)))

	mux.HandleFunc("GET /comments", commentsHandler.List)
	mux.HandleFunc("GET /comments/{id}", commentsHandler.GetByID)
	mux.Handle("POST /comments", authRequired(http.HandlerFunc(commentsHandler.Create)))
	mux.Handle("PUT /comments/{id}", authRequired(http.HandlerFunc(commentsHandler.Update)))
	mux.Handle("DELETE /comments/{id}", authRequired(http.HandlerFunc(commentsHandler.Delete)))

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(logger)(handler)
	handler = middleware.RecoveryMiddleware(logger)(handler)

	return &Server{
		logger: logger,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run запускает сервер и блокируется до его остановки
func (s *Server) Run() error {
	s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown останавливает сервер, дожидаясь активных запросов
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
