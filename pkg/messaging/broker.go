package messaging

import (
	"context"
)

// Broker is the interface for message brokers used to fan out entity
// change events.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Message is the envelope published for every entity change.
type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
