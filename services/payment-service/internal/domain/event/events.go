package event

import (
	"time"

	"github.com/bibbank/bib/pkg/events"
)

// AggregateTypeCreditTransfer is the aggregate type for credit transfer messages.
const AggregateTypeCreditTransfer = "CreditTransfer"

const (
	TypeDocumentGenerated = "credit_transfer.document.generated"
	TypeDocumentRejected  = "credit_transfer.document.rejected"
)

// DocumentGenerated is emitted when a pain.001 document has been rendered.
type DocumentGenerated struct {
	events.BaseEvent
	MessageID        string `json:"message_id"`
	Schema           string `json:"schema"`
	Transactions     int    `json:"transactions"`
	PaymentInfoCount int    `json:"payment_info_count"`
	ControlSum       string `json:"control_sum"`
}

func NewDocumentGenerated(messageID, schema string, transactions, blocks int, controlSum string, at time.Time) (DocumentGenerated, error) {
	e := DocumentGenerated{
		MessageID:        messageID,
		Schema:           schema,
		Transactions:     transactions,
		PaymentInfoCount: blocks,
		ControlSum:       controlSum,
	}
	base, err := events.NewBaseEvent(TypeDocumentGenerated, messageID, AggregateTypeCreditTransfer, at, struct {
		MessageID        string `json:"message_id"`
		Schema           string `json:"schema"`
		Transactions     int    `json:"transactions"`
		PaymentInfoCount int    `json:"payment_info_count"`
		ControlSum       string `json:"control_sum"`
	}{messageID, schema, transactions, blocks, controlSum})
	if err != nil {
		return DocumentGenerated{}, err
	}
	e.BaseEvent = base
	return e, nil
}

// DocumentRejected is emitted when a request could not be turned into a document.
// The aggregate ID is the request ID since no message ID was minted.
type DocumentRejected struct {
	events.BaseEvent
	RequestID string `json:"request_id"`
	Schema    string `json:"schema"`
	Reason    string `json:"reason"`
}

func NewDocumentRejected(requestID, schema, reason string, at time.Time) (DocumentRejected, error) {
	base, err := events.NewBaseEvent(TypeDocumentRejected, requestID, AggregateTypeCreditTransfer, at, struct {
		RequestID string `json:"request_id"`
		Schema    string `json:"schema"`
		Reason    string `json:"reason"`
	}{requestID, schema, reason})
	if err != nil {
		return DocumentRejected{}, err
	}
	return DocumentRejected{
		BaseEvent: base,
		RequestID: requestID,
		Schema:    schema,
		Reason:    reason,
	}, nil
}
