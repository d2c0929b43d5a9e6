package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"classattend/internal/mockapi"
)

// Options mirror the init argument of a browser fetch.
type Options struct {
	Method string
	Header http.Header
	Body   []byte
}

// Response mirrors a fetch response: an ok flag, a status and a JSON body.
type Response struct {
	OK     bool
	Status int
	body   []byte
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.body, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Transport performs one fetch against a full URL.
type Transport interface {
	RoundTrip(ctx context.Context, url string, opts Options) (*Response, error)
}

// Mock answers from an in-process mock API service.
type Mock struct {
	Service *mockapi.Service
}

func (m Mock) RoundTrip(ctx context.Context, url string, opts Options) (*Response, error) {
	resp, err := m.Service.Do(ctx, mockapi.Request{
		Method: opts.Method,
		Path:   url,
		Header: opts.Header,
		Body:   opts.Body,
	})
	if err != nil {
		return nil, err
	}
	return &Response{OK: resp.OK(), Status: resp.Status, body: resp.Body}, nil
}

// HTTP talks to a real server.
type HTTP struct {
	Client *http.Client
}

// NewHTTP returns an HTTP transport with a bounded timeout.
func NewHTTP() HTTP {
	return HTTP{Client: &http.Client{Timeout: 30 * time.Second}}
}

func (h HTTP) RoundTrip(ctx context.Context, url string, opts Options) (*Response, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	for k, vs := range opts.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	return &Response{
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status: resp.StatusCode,
		body:   raw,
	}, nil
}
