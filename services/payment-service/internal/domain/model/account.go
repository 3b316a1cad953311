package model

import (
	"github.com/bibbank/bib/services/payment-service/internal/domain/validation"
)

// DefaultOrgIDSchemeCode is the scheme code rendered for a debtor identifier
// when none is configured.
const DefaultOrgIDSchemeCode = "CUST"

// Bank account types for debtor accounts identified by account number.
const (
	BankAccountTypeBBAN = "BBAN"
	BankAccountTypeBGNR = "BGNR"
)

// Account is the debtor side of a credit transfer. It is a value object:
// the message and every transaction keep their own copy.
type Account struct {
	Name             string `validate:"max=70"`
	IBAN             string `validate:"omitempty,iban"`
	BIC              string `validate:"omitempty,bic"`
	AccountNumber    string `validate:"max=35"`
	OrgIDSchemeCode  string `validate:"max=4"`
	DebtorIdentifier string `validate:"debtor_id"`
	UKSortCode       string `validate:"omitempty,uk_sort_code"`
	BankAccountType  string `validate:"omitempty,oneof=BBAN BGNR"`
}

// SchemeCode returns the configured org id scheme code or CUST.
func (a Account) SchemeCode() string {
	if a.OrgIDSchemeCode == "" {
		return DefaultOrgIDSchemeCode
	}
	return a.OrgIDSchemeCode
}

// HasAccount reports whether the account can be identified at all.
func (a Account) HasAccount() bool {
	return a.IBAN != "" || a.AccountNumber != ""
}

// Validate checks the field rules and that the account is identifiable.
func (a Account) Validate() error {
	return a.violations().Err()
}

func (a Account) violations() validation.Violations {
	vs := validation.Struct(a)
	if !a.HasAccount() {
		vs.Add("IBAN", "can't be blank")
	}
	return vs
}
