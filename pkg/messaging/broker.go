package messaging

import (
	"context"
)

// Broker defines the interface for message brokers. Channels carry
// JSON-encoded payloads; a subscription lives until its context is
// cancelled.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Message is the generic envelope published to broker channels.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
