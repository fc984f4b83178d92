package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	natsserver "github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
)

// runServer starts an embedded NATS server for the test.
func runServer(t *testing.T) string {
	t.Helper()
	srv, err := natsserver.NewServer(&natsserver.Options{Host: "127.0.0.1", Port: -1})
	if err != nil {
		t.Fatalf("starting embedded NATS: %v", err)
	}
	srv.Start()
	t.Cleanup(srv.Shutdown)
	if !srv.ReadyForConnections(5 * time.Second) {
		t.Fatal("embedded NATS not ready")
	}
	return srv.ClientURL()
}

// feedPair connects a publisher and a subscriber to a fresh server and
// subscribes to topic.
func feedPair(t *testing.T, topic string) (*NATSPublisher, <-chan Message, func()) {
	t.Helper()
	url := runServer(t)
	pub, err := NewNATSPublisher(url)
	if err != nil {
		t.Fatalf("creating publisher: %v", err)
	}
	t.Cleanup(func() { pub.Close() })
	sub, err := NewNATSSubscriber(url)
	if err != nil {
		t.Fatalf("creating subscriber: %v", err)
	}
	t.Cleanup(func() { sub.Close() })
	ch, cancel, err := sub.Subscribe(topic)
	if err != nil {
		t.Fatalf("subscribing: %v", err)
	}
	t.Cleanup(cancel)
	return pub, ch, cancel
}

func next(t *testing.T, ch <-chan Message) Message {
	t.Helper()
	select {
	case msg, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}
	return Message{}
}

// drainClosed reads until ch closes.
func drainClosed(t *testing.T, ch <-chan Message) {
	t.Helper()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestNATS_ChangeRoundTrip(t *testing.T) {
	pub, ch, _ := feedPair(t, AllTopics)
	ctx := context.Background()

	sent := NewChange(TopicPollVoted, "e1", "p1", map[string]string{"option": "a"})
	sent.ActorID = "u1"
	if err := pub.Publish(ctx, sent.Topic, sent); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if err := pub.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	msg := next(t, ch)
	if msg.Subject != TopicPollVoted {
		t.Errorf("subject = %q, want %q", msg.Subject, TopicPollVoted)
	}
	var got Change
	if err := json.Unmarshal(msg.Data, &got); err != nil {
		t.Fatalf("decoding change: %v", err)
	}
	if got.EventID != "e1" || got.EntityID != "p1" || got.ActorID != "u1" {
		t.Errorf("got %+v", got)
	}
	if string(got.Data) != `{"option":"a"}` {
		t.Errorf("data = %s", got.Data)
	}
}

func TestNATS_ResourceWildcard(t *testing.T) {
	pub, ch, _ := feedPair(t, Prefix+".task.*")
	ctx := context.Background()

	for _, topic := range []string{TopicTaskCreated, TopicPollVoted, TopicTaskDeleted} {
		if err := pub.Publish(ctx, topic, NewChange(topic, "e1", "", nil)); err != nil {
			t.Fatalf("Publish %s: %v", topic, err)
		}
	}
	pub.Flush()

	if got := next(t, ch).Subject; got != TopicTaskCreated {
		t.Errorf("first = %q, want %q", got, TopicTaskCreated)
	}
	if got := next(t, ch).Subject; got != TopicTaskDeleted {
		t.Errorf("second = %q, want %q (poll must be filtered)", got, TopicTaskDeleted)
	}
}

func TestNATS_PublishUnmarshalable(t *testing.T) {
	pub, _, _ := feedPair(t, AllTopics)
	if err := pub.Publish(context.Background(), TopicTaskCreated, make(chan int)); err == nil {
		t.Fatal("expected a marshal error")
	}
}

func TestNATSSubscriber_CancelClosesChannel(t *testing.T) {
	_, ch, cancel := feedPair(t, AllTopics)
	cancel()
	cancel()
	drainClosed(t, ch)
}

func TestNATSSubscriber_CancelDuringMessages(t *testing.T) {
	pub, ch, cancel := feedPair(t, AllTopics)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 200 {
			_ = pub.Publish(context.Background(), TopicMessageSent, NewChange(TopicMessageSent, "e1", "m", nil))
		}
		pub.Flush()
	}()

	cancel()
	<-done
	drainClosed(t, ch)
}

func TestNATSSubscriber_FullBufferDrops(t *testing.T) {
	pub, ch, _ := feedPair(t, AllTopics)
	for range subscriberBuffer + 20 {
		if err := pub.Publish(context.Background(), TopicTaskUpdated, NewChange(TopicTaskUpdated, "e1", "t1", nil)); err != nil {
			t.Fatal(err)
		}
	}
	pub.Flush()

	// The extra messages are dropped without blocking the NATS client.
	deadline := time.Now().Add(2 * time.Second)
	for len(ch) < subscriberBuffer && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := len(ch); n != subscriberBuffer {
		t.Errorf("buffered %d messages, want %d", n, subscriberBuffer)
	}
}

func TestNATSSubscriber_Options(t *testing.T) {
	url := runServer(t)
	var _ Subscriber = (*NATSSubscriber)(nil)

	sub, err := NewNATSSubscriber(url, nats.ReconnectHandler(func(*nats.Conn) {}))
	if err != nil {
		t.Fatalf("creating subscriber: %v", err)
	}
	defer sub.Close()
	if !sub.conn.IsConnected() {
		t.Fatal("expected subscriber to be connected")
	}
	if got := sub.conn.Opts.Name; got != "planora-watch" {
		t.Errorf("connection name = %q", got)
	}
}

func TestNewNATSPublisher_Unreachable(t *testing.T) {
	if _, err := NewNATSPublisher("nats://127.0.0.1:1", nats.Timeout(100*time.Millisecond)); err == nil {
		t.Fatal("expected a connection error")
	}
}
