package model

import (
	"time"

	"github.com/bibbank/bib/pkg/iso20022"
	"github.com/bibbank/bib/pkg/money"
	"github.com/bibbank/bib/services/payment-service/internal/domain/validation"
)

// Service levels and charge bearers understood by the builder.
const (
	ServiceLevelSEPA = "SEPA"
	ServiceLevelURGP = "URGP"

	ChargeBearerSLEV = "SLEV"
)

// CreditTransferTransaction is a single payment leg.
type CreditTransferTransaction struct {
	Transaction

	ServiceLevel                        string `validate:"omitempty,oneof=SEPA URGP"`
	ChargeBearer                        string `validate:"omitempty,oneof=CRED DEBT SHAR SLEV"`
	CategoryPurpose                     string `validate:"max=4"`
	Purpose                             string `validate:"max=35"`
	StructuredRemittanceInformation     string `validate:"max=35"`
	StructuredRemittanceInformationCode string `validate:"omitempty,oneof=RADM RPIN FXDR DISP PUOR SCOR"`
	DestinationCurrency                 string `validate:"omitempty,len=3"`

	// DebtorAccount overrides the message account for this leg.
	DebtorAccount   *Account `validate:"-"`
	CreditorAddress *Address `validate:"-"`
}

// NewCreditTransferTransaction returns t with every default applied and its
// nested values copied.
func NewCreditTransferTransaction(t CreditTransferTransaction) CreditTransferTransaction {
	t.applyDefaults()
	if t.ServiceLevel == "" && money.EUR.Is(t.Currency) {
		t.ServiceLevel = ServiceLevelSEPA
	}
	if t.ServiceLevel != "" && t.ChargeBearer == "" {
		t.ChargeBearer = ChargeBearerSLEV
	}
	if t.DebtorAccount != nil {
		acc := *t.DebtorAccount
		t.DebtorAccount = &acc
	}
	if t.CreditorAddress != nil {
		addr := *t.CreditorAddress
		t.CreditorAddress = &addr
	}
	return t
}

// Validate checks every rule of the leg. Dates are compared against today.
func (t CreditTransferTransaction) Validate(today time.Time) error {
	vs := validation.Struct(t)
	vs = append(vs, t.requestedDateViolations(today)...)
	if t.DebtorAccount != nil {
		if avs := t.DebtorAccount.violations(); len(avs) > 0 {
			vs.Add("DebtorAccount", "is not correct")
			vs = append(vs, avs.Prefix("DebtorAccount")...)
		}
	}
	if t.CreditorAddress != nil {
		vs = append(vs, validation.Struct(*t.CreditorAddress).Prefix("CreditorAddress")...)
	}
	return vs.Err()
}

// UseEquivalentAmount reports whether the amount is instructed in another
// currency than the one transferred.
func (t CreditTransferTransaction) UseEquivalentAmount() bool {
	return t.DestinationCurrency != "" && t.DestinationCurrency != t.Currency
}

// SchemaCompatible reports whether the leg can be expressed in schema.
func (t CreditTransferTransaction) SchemaCompatible(schema iso20022.Schema) bool {
	switch schema {
	case iso20022.Pain00100103:
		return t.ServiceLevel == "" || (t.ServiceLevel == ServiceLevelSEPA && money.EUR.Is(t.Currency))
	case iso20022.Pain00100203:
		return t.BIC != "" && t.ServiceLevel == ServiceLevelSEPA && money.EUR.Is(t.Currency)
	case iso20022.Pain00100303:
		return money.EUR.Is(t.Currency)
	case iso20022.Pain00100103CH02:
		return money.CHF.Is(t.Currency)
	default:
		return false
	}
}

// debtorAccount returns the override account, or fallback.
func (t CreditTransferTransaction) debtorAccount(fallback Account) Account {
	if t.DebtorAccount != nil {
		return *t.DebtorAccount
	}
	return fallback
}
