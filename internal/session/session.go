// Package session keeps the shell's auth token across restarts.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"
)

// ErrNoToken is returned by Load when nothing is stored.
var ErrNoToken = errors.New("no stored token")

// TokenStore persists a single opaque token.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// Memory keeps the token for the life of the process.
type Memory struct {
	mu    sync.Mutex
	token string
}

func (m *Memory) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *Memory) Save(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	return nil
}

func (m *Memory) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	return nil
}

// File keeps the token in a file readable only by the owner.
type File struct {
	Path string
}

func (f File) Load(context.Context) (string, error) {
	raw, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

// Save writes through a temp file so a crash never leaves a partial token.
func (f File) Save(_ context.Context, token string) error {
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create token dir: %w", err)
		}
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.Rename(tmp, f.Path); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

func (f File) Clear(context.Context) error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Redis keeps the token under a single key.
type Redis struct {
	Client *redis.Client
	Key    string
}

func NewRedis(client *redis.Client, key string) *Redis {
	if key == "" {
		key = "session:authToken"
	}
	return &Redis{Client: client, Key: key}
}

func (r *Redis) Load(ctx context.Context) (string, error) {
	token, err := r.Client.Get(ctx, r.Key).Result()
	if errors.Is(err, redis.Nil) || (err == nil && token == "") {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}

func (r *Redis) Save(ctx context.Context, token string) error {
	return r.Client.Set(ctx, r.Key, token, 0).Err()
}

func (r *Redis) Clear(ctx context.Context) error {
	return r.Client.Del(ctx, r.Key).Err()
}
