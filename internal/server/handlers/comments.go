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

// CommentsHandler обрабатывает CRUD запросы для комментариев
type CommentsHandler struct {
	logger         *slog.Logger
	commentStorage storage.CommentStorage
	postStorage    storage.PostStorage
}

// NewCommentsHandler создает новый handler для комментариев
func NewCommentsHandler(logger *slog.Logger, commentStorage storage.CommentStorage, postStorage storage.PostStorage) *CommentsHandler {
	return &CommentsHandler{
		logger:         logger,
		commentStorage: commentStorage,
		postStorage:    postStorage,
	}
}

// Create обрабатывает POST /comments
// Автор берется из access token, не из тела запроса
func (h *CommentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sender, ok := UserIDFromContext(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create comment request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Content == "" {
		sendError(h.logger, w, "content is required", http.StatusBadRequest)
		return
	}
	if uuid.Validate(req.PostID) != nil {
		sendError(h.logger, w, "invalid post ID format", http.StatusBadRequest)
		return
	}

	// Комментарий можно оставить только к существующей публикации
	if _, err := h.postStorage.GetPostByID(ctx, req.PostID); err != nil {
		if errors.Is(err, storage.ErrPostNotFound) {
			sendError(h.logger, w, "post not found", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get post", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	comment := &models.Comment{
		ID:        uuid.New().String(),
		Content:   req.Content,
		Sender:    sender,
		PostID:    req.PostID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.commentStorage.CreateComment(ctx, comment); err != nil {
		h.logger.ErrorContext(ctx, "failed to create comment", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "comment created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", comment.PostID),
		slog.String("sender", sender))

	sendJSON(h.logger, w, comment, http.StatusCreated)
}

// GetByID обрабатывает GET /comments/{id}
func (h *CommentsHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	commentID := r.PathValue("id")
	if uuid.Validate(commentID) != nil {
		sendError(h.logger, w, "invalid ID format", http.StatusBadRequest)
		return
	}

	comment, err := h.commentStorage.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			sendError(h.logger, w, "comment not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get comment", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, comment, http.StatusOK)
}

// List обрабатывает GET /comments
// Необязательный query параметр post_id ограничивает выборку одной публикацией
func (h *CommentsHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	comments, err := h.commentStorage.ListComments(ctx, r.URL.Query().Get("post_id"))
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list comments", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if comments == nil {
		comments = []*models.Comment{}
	}

	sendJSON(h.logger, w, comments, http.StatusOK)
}

// Update обрабатывает PUT /comments/{id}
func (h *CommentsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	commentID := r.PathValue("id")
	if uuid.Validate(commentID) != nil {
		sendError(h.logger, w, "invalid ID format", http.StatusBadRequest)
		return
	}

	var req api.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update comment request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Content == "" {
		sendError(h.logger, w, "content is required", http.StatusBadRequest)
		return
	}

	comment, err := h.commentStorage.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			sendError(h.logger, w, "comment not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get comment", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	comment.Content = req.Content
	comment.UpdatedAt = time.Now()

	if err := h.commentStorage.UpdateComment(ctx, comment); err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			sendError(h.logger, w, "comment not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update comment", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, comment, http.StatusOK)
}

// Delete обрабатывает DELETE /comments/{id}
func (h *CommentsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	commentID := r.PathValue("id")
	if uuid.Validate(commentID) != nil {
		sendError(h.logger, w, "invalid ID format", http.StatusBadRequest)
		return
	}

	if err := h.commentStorage.DeleteComment(ctx, commentID); err != nil {
		if errors.Is(err, storage.ErrCommentNotFound) {
			sendError(h.logger, w, "comment not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete comment", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	sendJSON(h.logger, w, api.MessageResponse{Message: "comment deleted"}, http.StatusOK)
}
