package events

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMarshal(t *testing.T) {
	at := time.Date(2025, 6, 2, 11, 30, 0, 0, time.FixedZone("CEST", 7200))
	event := newEvent(t, "credit_transfer.document.rejected", "req-1", "CreditTransfer", at,
		map[string]string{"reason": "Transactions can't be blank"})

	raw, err := Marshal(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("expected JSON envelope, got error: %v", err)
	}
	if got["event_id"] != event.EventID() {
		t.Errorf("expected event_id %q, got %v", event.EventID(), got["event_id"])
	}
	if got["event_type"] != "credit_transfer.document.rejected" {
		t.Errorf("unexpected event_type %v", got["event_type"])
	}
	if got["aggregate_id"] != "req-1" {
		t.Errorf("unexpected aggregate_id %v", got["aggregate_id"])
	}
	if got["occurred_at"] != "2025-06-02T09:30:00Z" {
		t.Errorf("expected UTC occurred_at, got %v", got["occurred_at"])
	}
	payload, ok := got["payload"].(map[string]any)
	if !ok || payload["reason"] != "Transactions can't be blank" {
		t.Errorf("expected embedded payload, got %v", got["payload"])
	}
}

func TestMarshalWithoutPayload(t *testing.T) {
	raw, err := Marshal(newEvent(t, "noop", "agg", "Test", time.Now(), nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("expected JSON envelope, got error: %v", err)
	}
	if _, ok := got["payload"]; ok {
		t.Errorf("expected payload to be omitted, got %v", got["payload"])
	}
}
