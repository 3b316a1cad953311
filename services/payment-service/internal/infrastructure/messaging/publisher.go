package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bibbank/bib/pkg/events"
	pkgkafka "github.com/bibbank/bib/pkg/kafka"
	"github.com/bibbank/bib/services/payment-service/internal/domain/port"
)

var (
	_ port.EventPublisher = (*Publisher)(nil)
	_ port.EventPublisher = (*LogPublisher)(nil)
)

// Producer is the subset of pkg/kafka.Producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements EventPublisher using Kafka. Messages are keyed by
// aggregate ID so events for one message land on one partition.
type Publisher struct {
	producer Producer
}

func NewPublisher(producer Producer) *Publisher {
	return &Publisher{producer: producer}
}

func (p *Publisher) Publish(ctx context.Context, topic string, domainEvents ...events.DomainEvent) error {
	if len(domainEvents) == 0 {
		return nil
	}
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		payload, err := events.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}
		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type":     evt.EventType(),
				"aggregate_type": evt.AggregateType(),
				"event_id":       evt.EventID(),
				"content_type":   "application/json",
			},
		})
	}
	if err := p.producer.Publish(ctx, topic, messages...); err != nil {
		return fmt.Errorf("kafka publish: %w", err)
	}
	return nil
}

// LogPublisher writes events to a logger. It is used when no broker is
// configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, topic string, domainEvents ...events.DomainEvent) error {
	for _, evt := range domainEvents {
		p.logger.InfoContext(ctx, "domain event",
			"topic", topic,
			"event_type", evt.EventType(),
			"event_id", evt.EventID(),
			"aggregate_id", evt.AggregateID(),
			"payload", json.RawMessage(evt.Payload()),
		)
	}
	return nil
}
