package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"classattend/internal/auth"
	"classattend/internal/mockapi"
)

// APIError is a not-ok response with the detail the server gave.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Detail, e.Status)
}

// Client issues calls against the attendance API through a Transport.
type Client struct {
	baseURL   string
	transport Transport

	mu    sync.RWMutex
	token string
}

// New creates a client for the API at baseURL.
func New(baseURL string, t Transport) *Client {
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), transport: t}
}

// NewMock creates a client answered by svc in-process.
func NewMock(baseURL string, svc *mockapi.Service) *Client {
	return New(baseURL, Mock{Service: svc})
}

// SetToken sets the bearer token sent with every call.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Fetch is the raw fetch contract: url is a full URL.
func (c *Client) Fetch(ctx context.Context, url string, opts Options) (*Response, error) {
	return c.transport.RoundTrip(ctx, url, opts)
}

// call sends in as JSON (when non-nil) to path, and decodes a successful body into out (when non-nil).
func (c *Client) call(ctx context.Context, method, path string, in, out any) error {
	opts := Options{Method: method, Header: http.Header{}}
	auth.SetBearer(opts.Header, c.Token())
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		opts.Body = raw
		opts.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.Fetch(ctx, c.baseURL+path, opts)
	if err != nil {
		return err
	}
	if !resp.OK {
		return newAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return resp.JSON(out)
}

func newAPIError(resp *Response) *APIError {
	var body mockapi.ErrorBody
	if err := resp.JSON(&body); err != nil || body.Detail == "" {
		body.Detail = http.StatusText(resp.Status)
	}
	if body.Detail == "" {
		body.Detail = "request failed"
	}
	return &APIError{Status: resp.Status, Detail: body.Detail}
}
