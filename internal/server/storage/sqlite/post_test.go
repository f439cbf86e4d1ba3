package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/microblog/internal/models"
	"github.com/iudanet/microblog/internal/server/storage"
)

func newTestPost(sender string) *models.Post {
	now := time.Now()
	return &models.Post{
		ID:        uuid.New().String(),
		Title:     "title",
		Content:   "content",
		Sender:    sender,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPostStorage_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	post := newTestPost("user1")
	require.NoError(t, s.CreatePost(ctx, post))

	got, err := s.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, post.Content, got.Content)
	assert.Equal(t, post.Sender, got.Sender)

	_, err = s.GetPostByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrPostNotFound)
}

func TestPostStorage_ListPosts(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	first := newTestPost("alice")
	first.CreatedAt = time.Now().Add(-2 * time.Hour)
	second := newTestPost("alice")
	second.CreatedAt = time.Now().Add(-time.Hour)
	third := newTestPost("bob")

	require.NoError(t, s.CreatePost(ctx, first))
	require.NoError(t, s.CreatePost(ctx, second))
	require.NoError(t, s.CreatePost(ctx, third))

	all, err := s.ListPosts(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Новые публикации первыми
	assert.Equal(t, third.ID, all[0].ID)
	assert.Equal(t, second.ID, all[1].ID)
	assert.Equal(t, first.ID, all[2].ID)

	byAlice, err := s.ListPosts(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, byAlice, 2)

	none, err := s.ListPosts(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPostStorage_UpdatePost(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	post := newTestPost("user1")
	require.NoError(t, s.CreatePost(ctx, post))

	post.Title = "updated"
	post.Content = "new content"
	post.UpdatedAt = time.Now()
	require.NoError(t, s.UpdatePost(ctx, post))

	got, err := s.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", got.Title)
	assert.Equal(t, "new content", got.Content)

	missing := newTestPost("user1")
	err = s.UpdatePost(ctx, missing)
	assert.ErrorIs(t, err, storage.ErrPostNotFound)
}

func TestPostStorage_DeletePost(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	post := newTestPost("user1")
	require.NoError(t, s.CreatePost(ctx, post))

	require.NoError(t, s.DeletePost(ctx, post.ID))

	_, err := s.GetPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, storage.ErrPostNotFound)

	err = s.DeletePost(ctx, post.ID)
	assert.ErrorIs(t, err, storage.ErrPostNotFound)
}
