package messaging

import "context"

// Broker publishes application messages to interested consumers. The reminder
// dispatcher publishes due reminders here; push-delivery workers subscribe.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}
