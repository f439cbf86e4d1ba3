package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iudanet/microblog/internal/models"
	pkgapi "github.com/iudanet/microblog/pkg/api"
)

func (c *Cli) runPost(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: post <title> [text]")
	}
	title := args[0]
	content := strings.Join(args[1:], " ")

	var created *models.Post
	err := c.withAuth(ctx, func(accessToken string) error {
		var err error
		created, err = c.apiClient.CreatePost(ctx, accessToken, pkgapi.CreatePostRequest{
			Title:   title,
			Content: content,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}

	fmt.Printf("Created post %s\n", created.ID)
	return nil
}

func (c *Cli) runPosts(ctx context.Context, args []string) error {
	var sender string
	if len(args) > 0 {
		sender = args[0]
	}

	posts, err := c.apiClient.ListPosts(ctx, sender)
	if err != nil {
		return fmt.Errorf("failed to list posts: %w", err)
	}

	if len(posts) == 0 {
		fmt.Println("No posts.")
		return nil
	}

	for _, p := range posts {
		fmt.Printf("%s  %s  @%s\n", p.CreatedAt.Format(time.RFC822), p.ID, p.Sender)
		fmt.Printf("  %s\n", p.Title)
		if p.Content != "" {
			fmt.Printf("  %s\n", p.Content)
		}
	}
	return nil
}

func (c *Cli) runComment(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: comment <post-id> <text>")
	}
	postID := args[0]
	content := strings.Join(args[1:], " ")

	var created *models.Comment
	err := c.withAuth(ctx, func(accessToken string) error {
		var err error
		created, err = c.apiClient.CreateComment(ctx, accessToken, pkgapi.CreateCommentRequest{
			Content: content,
			PostID:  postID,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	fmt.Printf("Created comment %s\n", created.ID)
	return nil
}
