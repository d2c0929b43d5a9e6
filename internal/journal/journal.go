// Package journal records one entry per request answered by the mock API and
// ships entries over a queue so another process can follow the traffic.
package journal

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"

	"classattend/internal/queue"
)

// MessageType tags journal messages on a shared queue.
const MessageType = "request"

// Entry describes one answered request.
type Entry struct {
	ID       string        `json:"id"`
	Method   string        `json:"method"`
	Path     string        `json:"path"`
	Route    string        `json:"route"`
	Status   int           `json:"status"`
	Duration time.Duration `json:"duration"`
	At       time.Time     `json:"at"`
}

// Recorder publishes entries to a queue.
type Recorder struct {
	q       queue.Queue
	timeout time.Duration
}

// NewRecorder creates a recorder. Publishing gives up after timeout so a full or
// unreachable queue never holds up a response.
func NewRecorder(q queue.Queue, timeout time.Duration) *Recorder {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &Recorder{q: q, timeout: timeout}
}

// Record publishes e, filling ID and At when unset. Failures are logged and dropped.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	if r == nil || r.q == nil {
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	msg, err := Encode(e)
	if err != nil {
		log.Printf("[journal] encode %s: %v", e.ID, err)
		return
	}
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	if err := r.q.Publish(ctx, msg); err != nil {
		log.Printf("[journal] publish %s: %v", e.ID, err)
	}
}

func Encode(e Entry) (queue.Message, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return queue.Message{}, err
	}
	return queue.Message{Type: MessageType, Body: body}, nil
}

func Decode(msg queue.Message) (Entry, error) {
	var e Entry
	err := json.Unmarshal(msg.Body, &e)
	return e, err
}

// Follow delivers every journal entry on q to fn until ctx is done.
// Messages of other types and undecodable bodies are skipped.
func Follow(ctx context.Context, q queue.Queue, fn func(Entry)) error {
	messages, err := q.Consume(ctx)
	if err != nil {
		return err
	}
	for msg := range messages {
		if msg.Type != MessageType {
			continue
		}
		e, err := Decode(msg)
		if err != nil {
			log.Printf("[journal] skip undecodable entry: %v", err)
			continue
		}
		fn(e)
	}
	return ctx.Err()
}

// Logf is a Follow callback that writes one line per entry.
func Logf(e Entry) {
	log.Printf("[journal] %s %s %s -> %d (%s) route=%s", e.ID, e.Method, e.Path, e.Status, e.Duration, e.Route)
}
