// Command shell drives the attendance API the way the browser shell does:
//
//	shell login <email> <password>
//	shell me
//	shell dashboard
//	shell logout
//
// With USE_MOCK_DATA=true (the default) calls are answered in-process by the mock;
// otherwise they go to API_BASE_URL over HTTP. The token persists between runs.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"classattend/internal/client"
	"classattend/internal/config"
	"classattend/internal/mockapi"
	"classattend/internal/session"
	"classattend/internal/store"
)

func main() {
	log.SetFlags(0)
	cfg := config.Load()
	if len(os.Args) < 2 {
		log.Fatal("usage: shell login <email> <password> | me | dashboard | logout")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tokens, closeTokens, err := tokenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}
	defer closeTokens()

	app := client.NewApp(newClient(cfg), tokens)
	if err := run(ctx, app, os.Args[1], os.Args[2:]); err != nil {
		log.Fatal(err)
	}
}

func newClient(cfg config.App) *client.Client {
	if !cfg.UseMock {
		return client.New(cfg.BaseURL, client.NewHTTP())
	}
	svc := mockapi.NewService(mockapi.NewStore(mockapi.DefaultSeed(time.Now())), mockapi.Options{
		Delay:   cfg.MockDelay,
		BaseURL: cfg.BaseURL,
	})
	return client.NewMock(cfg.BaseURL, svc)
}

func tokenStore(ctx context.Context, cfg config.App) (session.TokenStore, func(), error) {
	switch cfg.SessionBackend {
	case "memory":
		return &session.Memory{}, func() {}, nil
	case "redis":
		r, err := store.OpenRedis(ctx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		return session.NewRedis(r.Client, cfg.SessionKey), func() { _ = r.Close() }, nil
	case "file", "":
		return session.File{Path: cfg.SessionPath}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
}

func run(ctx context.Context, app *client.App, cmd string, args []string) error {
	switch cmd {
	case "login":
		if len(args) != 2 {
			return fmt.Errorf("usage: shell login <email> <password>")
		}
		u, err := app.Login(ctx, args[0], args[1])
		if err != nil {
			return fmt.Errorf("login failed: %w", err)
		}
		fmt.Printf("Login successful! Signed in as %s (%s)\n", u.Name, u.Role)
		return nil
	case "logout":
		return app.Logout(ctx)
	case "me":
		u, err := restore(ctx, app)
		if err != nil {
			return err
		}
		return printJSON(u)
	case "dashboard":
		u, err := restore(ctx, app)
		if err != nil {
			return err
		}
		if u.Role == mockapi.RoleTeacher {
			return teacherDashboard(ctx, app.Client())
		}
		return studentDashboard(ctx, app.Client())
	}
	return fmt.Errorf("unknown command %q", cmd)
}

func restore(ctx context.Context, app *client.App) (*mockapi.User, error) {
	u, err := app.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("not signed in")
	}
	return u, nil
}

func studentDashboard(ctx context.Context, c *client.Client) error {
	face, err := c.FaceStatus(ctx)
	if err != nil {
		return err
	}
	subjects, err := c.MySubjects(ctx)
	if err != nil {
		return err
	}
	stats, err := c.MyStats(ctx)
	if err != nil {
		return err
	}
	recent, err := c.MyAttendance(ctx)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{
		"face":       face,
		"subjects":   subjects,
		"stats":      stats,
		"attendance": recent,
	})
}

func teacherDashboard(ctx context.Context, c *client.Client) error {
	subjects, err := c.TeacherSubjects(ctx)
	if err != nil {
		return err
	}
	return printJSON(map[string]any{"subjects": subjects})
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
