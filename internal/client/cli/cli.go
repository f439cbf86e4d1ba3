// Package cli implements the interactive command-line client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/iudanet/microblog/internal/client/api"
	"github.com/iudanet/microblog/internal/client/storage"
)

// Cli связывает API клиент и локальное хранилище сессии
type Cli struct {
	apiClient *api.Client
	authStore storage.AuthStore
}

// New создает новый CLI
func New(apiClient *api.Client, authStore storage.AuthStore) *Cli {
	return &Cli{
		apiClient: apiClient,
		authStore: authStore,
	}
}

// Run выполняет команду command с аргументами args
func (c *Cli) Run(ctx context.Context, command string, args []string) {
	var err error

	switch command {
	case "register":
		err = c.runRegister(ctx)
	case "login":
		err = c.runLogin(ctx)
	case "logout":
		err = c.runLogout(ctx)
	case "status":
		err = c.runStatus(ctx)
	case "refresh":
		err = c.runRefresh(ctx)
	case "post":
		err = c.runPost(ctx, args)
	case "posts":
		err = c.runPosts(ctx, args)
	case "comment":
		err = c.runComment(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		PrintUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// PrintUsage печатает справку по командам
func PrintUsage() {
	fmt.Println("Usage: microblog <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  register             register a new account")
	fmt.Println("  login                log in and save the session")
	fmt.Println("  logout               log out and drop the session")
	fmt.Println("  status               show the current session")
	fmt.Println("  refresh              rotate the refresh token manually")
	fmt.Println("  post <title> [text]  create a post")
	fmt.Println("  posts [sender]       list posts, optionally by author")
	fmt.Println("  comment <post-id> <text>  comment on a post")
}

// readInput читает строку из stdin
func readInput(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword читает пароль без эха в терминале
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(password), nil
}
