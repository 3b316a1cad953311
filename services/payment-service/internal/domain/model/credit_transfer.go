package model

import (
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/pkg/events"
	"github.com/bibbank/bib/pkg/iso20022"
	"github.com/bibbank/bib/pkg/money"
	"github.com/bibbank/bib/services/payment-service/internal/domain/event"
	"github.com/bibbank/bib/services/payment-service/internal/domain/validation"
)

// MessageIDPrefix starts every generated message identifier.
const MessageIDPrefix = "BIB-SCT"

const messageIDEntropy = 22

// NewMessageID returns "BIB-SCT/" followed by 22 lowercase hex characters
// drawn from a random UUID.
func NewMessageID() string {
	id := uuid.New()
	return MessageIDPrefix + "/" + hex.EncodeToString(id[:])[:messageIDEntropy]
}

// CreditTransfer is the aggregate that collects payment legs for one debtor
// and renders them as a pain.001 document. It is not safe for concurrent use.
type CreditTransfer struct {
	events.EventCollector

	account      Account
	transactions []CreditTransferTransaction
	now          func() time.Time
	newID        func() string
}

// Option configures a CreditTransfer.
type Option func(*CreditTransfer)

// WithClock overrides the clock used for date checks and creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *CreditTransfer) {
		c.now = now
	}
}

// WithIDGenerator overrides how message identifiers are minted.
func WithIDGenerator(gen func() string) Option {
	return func(c *CreditTransfer) {
		c.newID = gen
	}
}

// NewCreditTransfer starts an empty message for the given debtor account.
func NewCreditTransfer(account Account, opts ...Option) *CreditTransfer {
	c := &CreditTransfer{
		account: account,
		now:     time.Now,
		newID:   NewMessageID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Account returns the debtor account the transfer was opened with.
func (c *CreditTransfer) Account() Account { return c.account }

// Transactions returns the legs in insertion order.
func (c *CreditTransfer) Transactions() []CreditTransferTransaction {
	out := make([]CreditTransferTransaction, len(c.transactions))
	copy(out, c.transactions)
	return out
}

// AddTransaction applies defaults to t, validates it and appends it.
// An invalid leg is rejected with a validation.Violations error.
func (c *CreditTransfer) AddTransaction(t CreditTransferTransaction) error {
	t = NewCreditTransferTransaction(t)
	if err := t.Validate(c.now()); err != nil {
		return fmt.Errorf("add transaction %q: %w", t.Name, err)
	}
	c.transactions = append(c.transactions, t)
	return nil
}

// AmountTotal sums the amounts of all legs.
func (c *CreditTransfer) AmountTotal() decimal.Decimal {
	amounts := make([]decimal.Decimal, len(c.transactions))
	for i, t := range c.transactions {
		amounts[i] = t.Amount
	}
	return money.Sum(amounts...)
}

// Groups partitions the legs into future payment information blocks.
func (c *CreditTransfer) Groups() []Group {
	return GroupTransactions(c.account, c.transactions)
}

// Validate checks the debtor account, that at least one leg exists, and
// every leg against the current date.
func (c *CreditTransfer) Validate() error {
	var vs validation.Violations
	if avs := c.account.violations(); len(avs) > 0 {
		vs = append(vs, avs.Prefix("Account")...)
	}
	if len(c.transactions) == 0 {
		vs.Add("Transactions", "can't be blank")
	}
	today := c.now()
	for i, t := range c.transactions {
		if err := t.Validate(today); err != nil {
			tvs, _ := validation.As(err)
			vs = append(vs, tvs.Prefix(fmt.Sprintf("Transactions[%d]", i))...)
		}
	}
	return vs.Err()
}

// SchemaCompatible returns nil when every leg can be rendered in schema.
func (c *CreditTransfer) SchemaCompatible(schema iso20022.Schema) error {
	if !schema.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownSchema, string(schema))
	}
	var conflicts []string
	for i, t := range c.transactions {
		switch {
		case !t.SchemaCompatible(schema):
			conflicts = append(conflicts, fmt.Sprintf("transaction %d (%s)", i+1, t.Name))
		case schema == iso20022.Pain00100203 && t.debtorAccount(c.account).BIC == "":
			conflicts = append(conflicts, fmt.Sprintf("transaction %d (%s): debtor account has no BIC", i+1, t.Name))
		}
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("%w %s: %s", ErrIncompatibleSchema, schema, strings.Join(conflicts, ", "))
	}
	return nil
}

// ToXML validates the message and renders it in schema. Every call mints a
// new message identifier. On failure nothing is returned but the error.
func (c *CreditTransfer) ToXML(schema iso20022.Schema) ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.SchemaCompatible(schema); err != nil {
		return nil, err
	}

	now := c.now()
	msgID := c.newID()
	groups := c.Groups()
	body := buildDocument(msgID, now, c.account, groups)

	out, err := iso20022.Marshal(schema, body)
	if err != nil {
		return nil, fmt.Errorf("render credit transfer %s: %w", msgID, err)
	}

	generated, err := event.NewDocumentGenerated(
		msgID,
		schema.String(),
		len(c.transactions),
		len(groups),
		body.GrpHdr.CtrlSum,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("record credit transfer %s: %w", msgID, err)
	}
	c.Record(generated)
	return out, nil
}
