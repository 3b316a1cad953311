package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events must implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
	Payload() []byte
}

// BaseEvent provides a default implementation of DomainEvent.
type BaseEvent struct {
	id            string
	eventType     string
	aggregateID   string
	aggregateType string
	occurredAt    time.Time
	payload       []byte
}

// NewBaseEvent creates a new BaseEvent with a generated UUID and the given
// occurrence time (normalised to UTC). The payload is JSON-encoded; a nil
// payload is stored as nil.
func NewBaseEvent(eventType, aggregateID, aggregateType string, occurredAt time.Time, payload any) (BaseEvent, error) {
	var raw []byte
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return BaseEvent{}, fmt.Errorf("encode %s payload: %w", eventType, err)
		}
	}
	return BaseEvent{
		id:            uuid.NewString(),
		eventType:     eventType,
		aggregateID:   aggregateID,
		aggregateType: aggregateType,
		occurredAt:    occurredAt.UTC(),
		payload:       raw,
	}, nil
}

// EventID returns the unique identifier for this event.
func (e BaseEvent) EventID() string {
	return e.id
}

// EventType returns the type name of this event.
func (e BaseEvent) EventType() string {
	return e.eventType
}

// AggregateID returns the identifier of the aggregate that produced this event.
func (e BaseEvent) AggregateID() string {
	return e.aggregateID
}

// AggregateType returns the type name of the aggregate that produced this event.
func (e BaseEvent) AggregateType() string {
	return e.aggregateType
}

// OccurredAt returns the time at which this event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.occurredAt
}

// Payload returns the serialized event payload.
func (e BaseEvent) Payload() []byte {
	return e.payload
}
