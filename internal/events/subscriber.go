package events

// Message is one delivery from the change feed.
type Message struct {
	Subject string
	Data    []byte
}

// Subscriber receives changes from the feed.
type Subscriber interface {
	// Subscribe delivers messages on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan Message, func(), error)
	Close() error
}
