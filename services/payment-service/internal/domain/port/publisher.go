package port

import (
	"context"

	"github.com/bibbank/bib/pkg/events"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, events ...events.DomainEvent) error
}
