package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/microblog/internal/models"
	"github.com/iudanet/microblog/internal/server/storage"
	"github.com/iudanet/microblog/pkg/api"
)

// PostsHandler обрабатывает CRUD запросы для публикаций
type PostsHandler struct {
	logger      *slog.Logger
	postStorage storage.PostStorage
}

// NewPostsHandler создает новый handler для публикаций
func NewPostsHandler(logger *slog.Logger, postStorage storage.PostStorage) *PostsHandler {
	return &PostsHandler{
		logger:      logger,
		postStorage: postStorage,
	}
}

// Create обрабатывает POST /posts
// Автор берется из access token, не из тела запроса
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sender, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create post request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		sendError(h.logger, w, "title is required", http.StatusBadRequest)
		return
	}

	now := time.Now()
	post := &models.Post{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Content:   req.Content,
		Sender:    sender,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.postStorage.CreatePost(ctx, post); err != nil {
		h.logger.ErrorContext(ctx, "failed to create post", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "post created",
		slog.String("post_id", post.ID), slog.String("sender", sender))

	sendJSON(h.logger, w, post, http.StatusCreated)
}

// GetByID обрабатывает GET /posts/{id}
func (h *PostsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID := r.PathValue("id")
	if uuid.Validate(postID) != nil {
		sendError(h.logger, w, "invalid ID format", http.StatusBadRequest)
		return
	}

	post, err := h.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			sendError(h.logger, w, "post not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get post", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, post, http.StatusOK)
}

// List обрабатывает GET /posts
// Необязательный query параметр sender ограничивает выборку одним автором
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := h.postStorage.ListPosts(ctx, r.URL.Query().Get("sender"))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list posts", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if posts == nil {
		posts = []*models.Post{}
	}

	sendJSON(h.logger, w, posts, http.StatusOK)
}

// Update обрабатывает PUT /posts/{id}
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID := r.PathValue("id")
	if uuid.Validate(postID) != nil {
		sendError(h.logger, w, "invalid ID format", http.StatusBadRequest)
		return
	}

	var req api.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update post request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title == "" {
		sendError(h.logger, w, "title is required", http.StatusBadRequest)
		return
	}

	post, err := h.postStorage.GetPostByID(ctx, postID)
	if err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			sendError(h.logger, w, "post not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get post", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	post.Title = req.Title
	post.Content = req.Content
	post.UpdatedAt = time.Now()

	if err := h.postStorage.UpdatePost(ctx, post); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			sendError(h.logger, w, "post not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update post", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, post, http.StatusOK)
}

// Delete обрабатывает DELETE /posts/{id}
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	postID := r.PathValue("id")
	if uuid.Validate(postID) != nil {
		sendError(h.logger, w, "invalid ID format", http.StatusBadRequest)
		return
	}

	if err := h.postStorage.DeletePost(ctx, postID); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			sendError(h.logger, w, "post not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete post", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "post deleted"}, http.StatusOK)
}
