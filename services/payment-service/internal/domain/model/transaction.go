package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/pkg/iso20022"
	"github.com/bibbank/bib/services/payment-service/internal/domain/validation"
)

// DateLayout is the ISO date format used for execution dates.
const DateLayout = "2006-01-02"

// Transaction defaults.
const (
	DefaultReference = "NOTPROVIDED"
	DefaultCurrency  = "EUR"

	LocalInstrumentKeyCode        = "Cd"
	LocalInstrumentKeyProprietary = "Prtry"
)

// DefaultRequestedDate is the sentinel meaning "execute as soon as possible".
// It is exempt from the not-in-the-past rule.
var DefaultRequestedDate = time.Date(1999, time.January, 1, 0, 0, 0, 0, time.UTC)

// Bool returns a pointer to v, for optional flags such as BatchBooking.
func Bool(v bool) *bool {
	return &v
}

// Transaction holds the fields every payment leg shares.
type Transaction struct {
	Name                     string          `validate:"required,max=70"`
	IBAN                     string          `validate:"required_without=AccountNumber,omitempty,iban"`
	BIC                      string          `validate:"omitempty,bic"`
	AccountNumber            string          `validate:"required_without=IBAN,max=35"`
	AccountNumberProprietary string          `validate:"max=35"`
	AccountNumberCode        string          `validate:"max=35"`
	ClearingCode             string          `validate:"max=5"`
	ClearingBankIdentifier   string          `validate:"max=35"`
	Amount                   decimal.Decimal `validate:"gt=0"`
	Currency                 string          `validate:"len=3"`
	Instruction              string          `validate:"max=35"`
	Reference                string          `validate:"min=1,max=35"`
	RemittanceInformation    string          `validate:"max=140"`
	RequestedDate            time.Time       `validate:"required"`
	BatchBooking             *bool
	LocalInstrument          string `validate:"max=35"`
	LocalInstrumentKey       string `validate:"oneof=Cd Prtry"`
}

func (t *Transaction) applyDefaults() {
	t.Amount = t.Amount.Round(2)
	if t.RequestedDate.IsZero() {
		t.RequestedDate = DefaultRequestedDate
	} else {
		t.RequestedDate = dateOf(t.RequestedDate)
	}
	if t.Reference == "" {
		t.Reference = DefaultReference
	}
	if t.BatchBooking == nil {
		t.BatchBooking = Bool(true)
	} else {
		t.BatchBooking = Bool(*t.BatchBooking)
	}
	if t.Currency == "" {
		t.Currency = DefaultCurrency
	}
	if t.LocalInstrumentKey == "" {
		t.LocalInstrumentKey = LocalInstrumentKeyProprietary
	}
}

// Batch reports the batch booking flag, true unless explicitly disabled.
func (t Transaction) Batch() bool {
	return t.BatchBooking == nil || *t.BatchBooking
}

// HasDefaultRequestedDate reports whether the sentinel date is in use.
func (t Transaction) HasDefaultRequestedDate() bool {
	return t.RequestedDate.Equal(DefaultRequestedDate)
}

// ExecutionDate renders the requested date as YYYY-MM-DD.
func (t Transaction) ExecutionDate() string {
	return t.RequestedDate.Format(DateLayout)
}

func (t Transaction) requestedDateViolations(today time.Time) validation.Violations {
	var vs validation.Violations
	if t.RequestedDate.IsZero() || t.HasDefaultRequestedDate() {
		return vs
	}
	floor := dateOf(today)
	if dateOf(t.RequestedDate).Before(floor) {
		vs.Add("RequestedDate", fmt.Sprintf("must be greater or equal to %s, or nil", floor.Format(DateLayout)))
	}
	return vs
}

// localInstrument renders the LclInstrm choice according to the key.
func (t Transaction) localInstrument() *iso20022.CodeOrProprietary {
	if t.LocalInstrument == "" {
		return nil
	}
	if t.LocalInstrumentKey == LocalInstrumentKeyCode {
		return iso20022.Code(t.LocalInstrument)
	}
	return iso20022.Proprietary(t.LocalInstrument)
}

// dateOf truncates t to its calendar date in UTC.
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
