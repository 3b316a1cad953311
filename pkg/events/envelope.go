package events

import (
	"encoding/json"
	"time"
)

// Envelope is the wire form of a DomainEvent.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   string          `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload,omitempty"`
}

// EnvelopeOf copies the metadata and payload of e.
func EnvelopeOf(e DomainEvent) Envelope {
	return Envelope{
		EventID:       e.EventID(),
		EventType:     e.EventType(),
		AggregateID:   e.AggregateID(),
		AggregateType: e.AggregateType(),
		OccurredAt:    e.OccurredAt(),
		Payload:       e.Payload(),
	}
}

// Marshal encodes e as a JSON Envelope.
func Marshal(e DomainEvent) ([]byte, error) {
	return json.Marshal(EnvelopeOf(e))
}
