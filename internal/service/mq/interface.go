package mq

import "context"

// Producer publishes messages to the broker.
type Producer interface {
	// Publish sends one message. key selects the partition; an empty key
	// means random placement.
	Publish(ctx context.Context, topic string, key string, payload []byte) error
}
