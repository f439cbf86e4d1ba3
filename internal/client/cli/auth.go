package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/microblog/internal/client/api"
	"github.com/iudanet/microblog/internal/client/storage"
	pkgapi "github.com/iudanet/microblog/pkg/api"
)

func (c *Cli) runRegister(ctx context.Context) error {
	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	username, err := readInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password confirmation: %w", err)
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	resp, err := c.apiClient.Register(ctx, pkgapi.RegisterRequest{
		Email:    email,
		Username: username,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	fmt.Printf("Registered %s (%s)\n", resp.Username, resp.Email)
	fmt.Println("Run 'login' to start a session.")
	return nil
}

func (c *Cli) runLogin(ctx context.Context) error {
	email, err := readInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	resp, err := c.apiClient.Login(ctx, pkgapi.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	auth := &storage.AuthData{
		UserID:       resp.UserID,
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		SavedAt:      time.Now(),
	}
	if err := c.authStore.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	fmt.Println("Logged in.")
	return nil
}

func (c *Cli) runLogout(ctx context.Context) error {
	auth, err := c.authStore.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			fmt.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	// сервер может отклонить уже ротированный токен, локальную сессию чистим всегда
	if err := c.apiClient.Logout(ctx, auth.RefreshToken); err != nil {
		fmt.Printf("Server logout failed: %v\n", err)
	}

	if err := c.authStore.DeleteAuth(ctx); err != nil {
		return fmt.Errorf("failed to drop session: %w", err)
	}

	fmt.Println("Logged out.")
	return nil
}

func (c *Cli) runStatus(ctx context.Context) error {
	auth, err := c.authStore.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			fmt.Println("Not logged in.")
			return nil
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	fmt.Printf("Logged in as user %s\n", auth.UserID)
	fmt.Printf("Session saved at %s\n", auth.SavedAt.Format(time.RFC822))
	return nil
}

func (c *Cli) runRefresh(ctx context.Context) error {
	auth, err := c.authStore.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return errors.New("not logged in")
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	if err := c.refreshSession(ctx, auth); err != nil {
		return err
	}

	fmt.Println("Session refreshed.")
	return nil
}

// refreshSession ротирует refresh токен и сохраняет новую пару
func (c *Cli) refreshSession(ctx context.Context, auth *storage.AuthData) error {
	resp, err := c.apiClient.Refresh(ctx, auth.RefreshToken)
	if err != nil {
		// старый токен больше не действует, держать его нет смысла
		_ = c.authStore.DeleteAuth(ctx)
		return fmt.Errorf("session expired, log in again: %w", err)
	}

	auth.AccessToken = resp.AccessToken
	auth.RefreshToken = resp.RefreshToken
	auth.SavedAt = time.Now()

	if err := c.authStore.SaveAuth(ctx, auth); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// withAuth выполняет fn с access токеном, при 401 обновляет пару и повторяет один раз
func (c *Cli) withAuth(ctx context.Context, fn func(accessToken string) error) error {
	auth, err := c.authStore.GetAuth(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrAuthNotFound) {
			return errors.New("not logged in")
		}
		return fmt.Errorf("failed to load session: %w", err)
	}

	err = fn(auth.AccessToken)
	if !errors.Is(err, api.ErrUnauthorized) {
		return err
	}

	if err := c.refreshSession(ctx, auth); err != nil {
		return err
	}
	return fn(auth.AccessToken)
}
