package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
)

// subscriberBuffer is how many undelivered messages a subscription holds
// before new ones are dropped.
const subscriberBuffer = 64

func connect(url, name string, opts []nats.Option, extra ...nats.Option) (*nats.Conn, error) {
	all := append([]nats.Option{nats.Name(name)}, opts...)
	nc, err := nats.Connect(url, append(all, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}
	return nc, nil
}

// NATSPublisher publishes JSON-encoded changes to NATS subjects.
type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string, opts ...nats.Option) (*NATSPublisher, error) {
	nc, err := connect(url, "planora", nil, opts...)
	if err != nil {
		return nil, err
	}
	return &NATSPublisher{conn: nc}, nil
}

// Publish marshals event and sends it on topic. It does not wait for the
// server; call Flush for that.
func (p *NATSPublisher) Publish(ctx context.Context, topic string, event any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling change for %s: %w", topic, err)
	}
	if err := p.conn.Publish(topic, data); err != nil {
		return fmt.Errorf("publishing %s: %w", topic, err)
	}
	return nil
}

// Flush waits until the server has processed everything published so far.
func (p *NATSPublisher) Flush() error { return p.conn.Flush() }

func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// NATSSubscriber receives changes from NATS subjects. It reconnects
// forever.
type NATSSubscriber struct {
	conn *nats.Conn
}

// NewNATSSubscriber connects to url. Extra options such as disconnect and
// reconnect handlers are applied after the defaults.
func NewNATSSubscriber(url string, opts ...nats.Option) (*NATSSubscriber, error) {
	nc, err := connect(url, "planora-watch",
		[]nats.Option{nats.MaxReconnects(-1), nats.ReconnectWait(time.Second)}, opts...)
	if err != nil {
		return nil, err
	}
	return &NATSSubscriber{conn: nc}, nil
}

// feed is the channel side of one subscription. deliver never blocks the
// NATS client, and nothing is delivered once shut.
type feed struct {
	mu     sync.Mutex
	ch     chan Message
	closed bool
}

func (f *feed) deliver(msg *nats.Msg) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	select {
	case f.ch <- Message{Subject: msg.Subject, Data: msg.Data}:
	default:
	}
}

func (f *feed) shut() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.ch)
	}
}

// Subscribe delivers messages matching topic, which may use NATS wildcards
// like "planora.task.*" or AllTopics. The cancel function unsubscribes and
// closes the channel; it is safe to call more than once.
func (s *NATSSubscriber) Subscribe(topic string) (<-chan Message, func(), error) {
	f := &feed{ch: make(chan Message, subscriberBuffer)}
	sub, err := s.conn.Subscribe(topic, f.deliver)
	if err != nil {
		f.shut()
		return nil, nil, fmt.Errorf("subscribing to %s: %w", topic, err)
	}
	// Publishers on other connections only reach the subscription once the
	// server has seen it.
	if err := s.conn.Flush(); err != nil {
		_ = sub.Unsubscribe()
		f.shut()
		return nil, nil, fmt.Errorf("flushing subscription to %s: %w", topic, err)
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			_ = sub.Unsubscribe()
			f.shut()
		})
	}
	return f.ch, cancel, nil
}

func (s *NATSSubscriber) Close() error {
	s.conn.Close()
	return nil
}
