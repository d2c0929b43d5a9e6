package client

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"classattend/internal/mockapi"
	"classattend/internal/session"
)

// App holds the shell's session: the persisted token and the signed-in user.
type App struct {
	client *Client
	tokens session.TokenStore

	mu   sync.Mutex
	user *mockapi.User
}

func NewApp(c *Client, tokens session.TokenStore) *App {
	return &App{client: c, tokens: tokens}
}

func (a *App) Client() *Client { return a.client }

// User returns the signed-in user, or nil.
func (a *App) User() *mockapi.User {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user
}

// Login exchanges credentials for a token, persists it and loads the profile.
func (a *App) Login(ctx context.Context, email, password string) (*mockapi.User, error) {
	tok, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.client.SetToken(tok.AccessToken)
	if err := a.tokens.Save(ctx, tok.AccessToken); err != nil {
		return nil, fmt.Errorf("persist token: %w", err)
	}
	return a.loadProfile(ctx)
}

// Restore re-establishes a session from a persisted token. It returns nil, nil
// when no token is stored.
func (a *App) Restore(ctx context.Context) (*mockapi.User, error) {
	tok, err := a.tokens.Load(ctx)
	if errors.Is(err, session.ErrNoToken) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	a.client.SetToken(tok)
	return a.loadProfile(ctx)
}

// Logout forgets the user and the persisted token.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.user = nil
	a.mu.Unlock()
	a.client.SetToken("")
	return a.tokens.Clear(ctx)
}

// loadProfile fetches the current user. Any failure logs out.
func (a *App) loadProfile(ctx context.Context) (*mockapi.User, error) {
	u, err := a.client.Me(ctx)
	if err != nil {
		log.Printf("[client] load profile: %v", err)
		if lerr := a.Logout(ctx); lerr != nil {
			log.Printf("[client] logout: %v", lerr)
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	a.mu.Lock()
	a.user = &u
	a.mu.Unlock()
	return &u, nil
}
