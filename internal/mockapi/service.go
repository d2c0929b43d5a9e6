package mockapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"classattend/internal/journal"
	"classattend/internal/metrics"
)

// DefaultDelay is the simulated network latency applied to every request.
const DefaultDelay = 300 * time.Millisecond

// Request describes one call. Path may be a full URL; the service base is stripped before routing.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Response carries a status and a JSON body.
type Response struct {
	Status int
	Body   []byte
}

// OK reports whether the status is 2xx.
func (r Response) OK() bool { return r.Status >= 200 && r.Status < 300 }

// Decode unmarshals the JSON body into v.
func (r Response) Decode(v any) error { return json.Unmarshal(r.Body, v) }

func jsonResponse(status int, v any) Response {
	body, err := json.Marshal(v)
	if err != nil {
		body, _ = json.Marshal(ErrorBody{Detail: err.Error()})
		status = http.StatusInternalServerError
	}
	return Response{Status: status, Body: body}
}

// Recorder receives one entry per answered request.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry)
}

// Options configures a Service. Zero values mean no delay, no base stripping, no metrics and no journal.
type Options struct {
	Delay    time.Duration
	BaseURL  string
	Metrics  *metrics.Mock
	Recorder Recorder
}

// Service simulates the remote attendance API over an owned Store.
type Service struct {
	store    *Store
	routes   []route
	delay    time.Duration
	baseURL  string
	metrics  *metrics.Mock
	recorder Recorder
}

// NewService creates a service answering from store.
func NewService(store *Store, opts Options) *Service {
	if opts.Delay < 0 {
		opts.Delay = 0
	}
	return &Service{
		store:    store,
		routes:   routeTable(),
		delay:    opts.Delay,
		baseURL:  strings.TrimSuffix(opts.BaseURL, "/"),
		metrics:  opts.Metrics,
		recorder: opts.Recorder,
	}
}

// Call is a request in flight. It resolves exactly once, after the simulated delay.
type Call struct {
	done chan struct{}
	resp Response
}

// Done is closed when the response is ready.
func (c *Call) Done() <-chan struct{} { return c.done }

// Wait blocks until the response is ready or ctx is done. Giving up does not cancel
// the call; it still runs to completion and applies its effects.
func (c *Call) Wait(ctx context.Context) (Response, error) {
	select {
	case <-c.done:
		return c.resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Send submits req and returns immediately. The handler runs once the delay elapses.
func (s *Service) Send(req Request) *Call {
	c := &Call{done: make(chan struct{})}
	start := time.Now()
	time.AfterFunc(s.delay, func() {
		resp, entry := s.handle(req)
		c.resp = resp
		close(c.done)

		entry.Duration = time.Since(start)
		s.metrics.Observe(entry.Route, entry.Status, entry.Duration)
		if s.recorder != nil {
			s.recorder.Record(context.Background(), entry)
		}
	})
	return c
}

// Do sends req and waits for its response.
func (s *Service) Do(ctx context.Context, req Request) (Response, error) {
	return s.Send(req).Wait(ctx)
}

func (s *Service) handle(req Request) (Response, journal.Entry) {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}
	path := StripBase(req.Path, s.baseURL)
	log.Printf("[mockapi] Request to: %s %s", method, path)

	entry := journal.Entry{Method: method, Path: path, Route: "not-found"}
	rt, params, ok := match(s.routes, method, path)
	if !ok {
		log.Printf("[mockapi] Unhandled route: %s", path)
		resp := errorResponse(ErrNotFound)
		entry.Status = resp.Status
		return resp, entry
	}
	entry.Route = rt.Name
	resp := s.invoke(rt, req, params)
	entry.Status = resp.Status
	return resp, entry
}

// invoke runs a handler to completion under the store lock. Faults, including panics,
// become a 500 response carrying the fault's message.
func (s *Service) invoke(rt route, req Request, params map[string]string) (resp Response) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[mockapi] %s panicked: %v", rt.Name, r)
			resp = errorResponse(fmt.Errorf("%v", r))
		}
	}()

	body, err := rt.Handle(s.store, req, params)
	if err != nil {
		if _, handled := err.(*Error); !handled {
			log.Printf("[mockapi] %s failed: %v", rt.Name, err)
		}
		return errorResponse(err)
	}
	return jsonResponse(http.StatusOK, body)
}
