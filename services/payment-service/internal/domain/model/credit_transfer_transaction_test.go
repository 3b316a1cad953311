package model_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/pkg/iso20022"
	"github.com/bibbank/bib/pkg/testutil"
	"github.com/bibbank/bib/services/payment-service/internal/domain/model"
	"github.com/bibbank/bib/services/payment-service/internal/domain/validation"
)

func TestNewCreditTransferTransaction_Defaults(t *testing.T) {
	tx := model.NewCreditTransferTransaction(creditorLeg("1"))

	assert.Equal(t, "NOTPROVIDED", tx.Reference)
	assert.Equal(t, "EUR", tx.Currency)
	assert.True(t, tx.Batch())
	require.NotNil(t, tx.BatchBooking)
	assert.True(t, *tx.BatchBooking)
	assert.Equal(t, "Prtry", tx.LocalInstrumentKey)
	assert.True(t, tx.HasDefaultRequestedDate())
	assert.Equal(t, "1999-01-01", tx.ExecutionDate())
	assert.Equal(t, "SEPA", tx.ServiceLevel)
	assert.Equal(t, "SLEV", tx.ChargeBearer)
}

func TestNewCreditTransferTransaction_KeepsExplicitValues(t *testing.T) {
	in := creditorLeg("1")
	in.Reference = "E2E-1"
	in.Currency = "CHF"
	in.BatchBooking = model.Bool(false)
	in.LocalInstrumentKey = "Cd"
	in.RequestedDate = time.Date(2025, 7, 1, 23, 59, 0, 0, time.UTC)

	tx := model.NewCreditTransferTransaction(in)

	assert.Equal(t, "E2E-1", tx.Reference)
	assert.Equal(t, "CHF", tx.Currency)
	assert.False(t, tx.Batch())
	assert.Equal(t, "Cd", tx.LocalInstrumentKey)
	assert.Equal(t, "2025-07-01", tx.ExecutionDate())
	assert.Empty(t, tx.ServiceLevel, "no SEPA default outside EUR")
	assert.Empty(t, tx.ChargeBearer, "no SLEV default without a service level")
}

func TestNewCreditTransferTransaction_ExplicitChargeBearerWins(t *testing.T) {
	in := creditorLeg("1")
	in.ChargeBearer = "DEBT"

	tx := model.NewCreditTransferTransaction(in)

	assert.Equal(t, "SEPA", tx.ServiceLevel)
	assert.Equal(t, "DEBT", tx.ChargeBearer)
}

func TestCreditTransferTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.CreditTransferTransaction)
		message string
	}{
		{"missing name", func(l *model.CreditTransferTransaction) { l.Name = "" }, "Name can't be blank"},
		{"long name", func(l *model.CreditTransferTransaction) { l.Name = strings.Repeat("a", 71) }, "Name is too long (maximum is 70 characters)"},
		{"bad iban", func(l *model.CreditTransferTransaction) { l.IBAN = "DE21500500009876543211" }, "IBAN is invalid"},
		{"no account", func(l *model.CreditTransferTransaction) { l.IBAN = "" }, "IBAN can't be blank"},
		{"bad bic", func(l *model.CreditTransferTransaction) { l.BIC = "PBNKDEFF37" }, "BIC is invalid"},
		{"zero amount", func(l *model.CreditTransferTransaction) { l.Amount = decimal.Zero }, "Amount must be greater than 0"},
		{"negative amount", func(l *model.CreditTransferTransaction) { l.Amount = decimal.NewFromInt(-3) }, "Amount must be greater than 0"},
		{"currency length", func(l *model.CreditTransferTransaction) { l.Currency = "EURO" }, "Currency is the wrong length (should be 3 characters)"},
		{"long instruction", func(l *model.CreditTransferTransaction) { l.Instruction = strings.Repeat("1", 36) }, "Instruction is too long"},
		{"long reference", func(l *model.CreditTransferTransaction) { l.Reference = strings.Repeat("1", 36) }, "Reference is too long"},
		{"long remittance", func(l *model.CreditTransferTransaction) { l.RemittanceInformation = strings.Repeat("r", 141) }, "RemittanceInformation is too long (maximum is 140 characters)"},
		{"service level", func(l *model.CreditTransferTransaction) { l.ServiceLevel = "XYZ" }, "ServiceLevel is not included in the list"},
		{"charge bearer", func(l *model.CreditTransferTransaction) { l.ChargeBearer = "ALL" }, "ChargeBearer is not included in the list"},
		{"category purpose", func(l *model.CreditTransferTransaction) { l.CategoryPurpose = "SALARY" }, "CategoryPurpose is too long (maximum is 4 characters)"},
		{"local instrument key", func(l *model.CreditTransferTransaction) { l.LocalInstrumentKey = "Code" }, "LocalInstrumentKey is not included in the list"},
		{"structured code", func(l *model.CreditTransferTransaction) { l.StructuredRemittanceInformationCode = "ABCD" }, "StructuredRemittanceInformationCode is not included in the list"},
		{"destination currency", func(l *model.CreditTransferTransaction) { l.DestinationCurrency = "EU" }, "DestinationCurrency is the wrong length (should be 3 characters)"},
		{"invalid debtor override", func(l *model.CreditTransferTransaction) {
			l.DebtorAccount = &model.Account{Name: "x", IBAN: "DE00"}
		}, "DebtorAccount is not correct; DebtorAccount.IBAN is invalid"},
		{"address country", func(l *model.CreditTransferTransaction) {
			l.CreditorAddress = &model.Address{CountryCode: "DEU"}
		}, "CreditorAddress.CountryCode is the wrong length (should be 2 characters)"},
		{"address town", func(l *model.CreditTransferTransaction) {
			l.CreditorAddress = &model.Address{TownName: strings.Repeat("t", 36)}
		}, "CreditorAddress.TownName is too long (maximum is 35 characters)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := model.NewCreditTransferTransaction(creditorLeg("1"))
			tt.mutate(&tx)

			err := tx.Validate(testutil.Today)

			testutil.RequireErrorIs(t, err, validation.ErrInvalid)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCreditTransferTransaction_ValidateAccepts(t *testing.T) {
	leg := creditorLeg("0.01")
	leg.Instruction = "INSTR-1"
	leg.Reference = "E2E-1"
	leg.RemittanceInformation = strings.Repeat("r", 140)
	leg.RequestedDate = testutil.Today.AddDate(0, 1, 0)
	leg.CreditorAddress = &model.Address{StreetName: "Hauptstraße", BuildingNumber: "1a", CountryCode: "DE"}
	leg.DebtorAccount = &model.Account{Name: "Zweitkonto", AccountNumber: "12345678", BankAccountType: "BBAN"}

	tx := model.NewCreditTransferTransaction(leg)

	assert.NoError(t, tx.Validate(testutil.Today))
}

func TestCreditTransferTransaction_UseEquivalentAmount(t *testing.T) {
	tests := []struct {
		currency    string
		destination string
		want        bool
	}{
		{"EUR", "", false},
		{"EUR", "EUR", false},
		{"EUR", "CHF", true},
		{"CHF", "EUR", true},
	}

	for _, tt := range tests {
		tx := creditorLeg("1")
		tx.Currency = tt.currency
		tx.DestinationCurrency = tt.destination
		assert.Equal(t, tt.want, tx.UseEquivalentAmount(), "%s -> %q", tt.currency, tt.destination)
	}
}

func TestCreditTransferTransaction_SchemaCompatible(t *testing.T) {
	sepa := model.NewCreditTransferTransaction(creditorLeg("1"))

	noBIC := creditorLeg("1")
	noBIC.BIC = ""
	noBIC = model.NewCreditTransferTransaction(noBIC)

	urgent := creditorLeg("1")
	urgent.ServiceLevel = "URGP"
	urgent = model.NewCreditTransferTransaction(urgent)

	chf := creditorLeg("1")
	chf.Currency = "CHF"
	chf.IBAN = testutil.SwissIBAN
	chf.BIC = testutil.SwissBIC
	chf = model.NewCreditTransferTransaction(chf)

	chfSEPA := creditorLeg("1")
	chfSEPA.Currency = "CHF"
	chfSEPA.ServiceLevel = "SEPA"
	chfSEPA = model.NewCreditTransferTransaction(chfSEPA)

	tests := []struct {
		name string
		leg  model.CreditTransferTransaction
		want map[iso20022.Schema]bool
	}{
		{"EUR SEPA with BIC", sepa, map[iso20022.Schema]bool{
			iso20022.Pain00100103: true, iso20022.Pain00100203: true, iso20022.Pain00100303: true, iso20022.Pain00100103CH02: false,
		}},
		{"EUR SEPA without BIC", noBIC, map[iso20022.Schema]bool{
			iso20022.Pain00100103: true, iso20022.Pain00100203: false, iso20022.Pain00100303: true, iso20022.Pain00100103CH02: false,
		}},
		{"EUR URGP", urgent, map[iso20022.Schema]bool{
			iso20022.Pain00100103: false, iso20022.Pain00100203: false, iso20022.Pain00100303: true, iso20022.Pain00100103CH02: false,
		}},
		{"CHF", chf, map[iso20022.Schema]bool{
			iso20022.Pain00100103: true, iso20022.Pain00100203: false, iso20022.Pain00100303: false, iso20022.Pain00100103CH02: true,
		}},
		{"CHF tagged SEPA", chfSEPA, map[iso20022.Schema]bool{
			iso20022.Pain00100103: false, iso20022.Pain00100203: false, iso20022.Pain00100303: false, iso20022.Pain00100103CH02: true,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for schema, want := range tt.want {
				assert.Equal(t, want, tt.leg.SchemaCompatible(schema), schema.String())
			}
			assert.False(t, tt.leg.SchemaCompatible("pain.001.001.09"))
		})
	}
}
