package events

import (
	"context"
	"sync"
)

// NoopPublisher is a Publisher that does nothing (used when NATS is not configured).
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, topic string, event any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}

// Recorder is an in-memory Publisher that keeps every published change.
type Recorder struct {
	mu        sync.Mutex
	published []Published
}

// Published is one call recorded by a Recorder.
type Published struct {
	Topic string
	Event any
}

func (r *Recorder) Publish(ctx context.Context, topic string, event any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.published = append(r.published, Published{Topic: topic, Event: event})
	return nil
}

func (r *Recorder) Close() error { return nil }

// All returns a copy of everything recorded so far.
func (r *Recorder) All() []Published {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Published(nil), r.published...)
}

// Topics returns the recorded topics in publish order.
func (r *Recorder) Topics() []string {
	var out []string
	for _, p := range r.All() {
		out = append(out, p.Topic)
	}
	return out
}
