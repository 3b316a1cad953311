package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/services/payment-service/internal/domain/model"
)

var (
	// ErrUnknownField is returned when a request carries a key no field accepts.
	ErrUnknownField = errors.New("unknown field")
	// ErrMalformed is returned for bodies that are not valid request JSON.
	ErrMalformed = errors.New("malformed request")
)

// AccountRequest describes the debtor account of a message or a leg override.
type AccountRequest struct {
	Name             string `json:"name"`
	IBAN             string `json:"iban"`
	BIC              string `json:"bic"`
	AccountNumber    string `json:"account_number"`
	OrgIDSchemeCode  string `json:"org_id_scheme_code"`
	DebtorIdentifier string `json:"debtor_identifier"`
	UKSortCode       string `json:"uk_sort_code"`
	BankAccountType  string `json:"bank_account_type"`
}

// AddressRequest is the creditor postal address.
type AddressRequest struct {
	StreetName     string `json:"street_name"`
	BuildingNumber string `json:"building_number"`
	PostCode       string `json:"post_code"`
	TownName       string `json:"town_name"`
	CountryCode    string `json:"country_code"`
	AddressLine1   string `json:"address_line1"`
	AddressLine2   string `json:"address_line2"`
}

// TransactionRequest is one payment leg. RequestedDate is YYYY-MM-DD.
type TransactionRequest struct {
	Name                                string          `json:"name"`
	IBAN                                string          `json:"iban"`
	BIC                                 string          `json:"bic"`
	AccountNumber                       string          `json:"account_number"`
	AccountNumberProprietary            string          `json:"account_number_proprietary"`
	AccountNumberCode                   string          `json:"account_number_code"`
	ClearingCode                        string          `json:"clearing_code"`
	ClearingBankIdentifier              string          `json:"clearing_bank_identifier"`
	Amount                              decimal.Decimal `json:"amount"`
	Currency                            string          `json:"currency"`
	Instruction                         string          `json:"instruction"`
	Reference                           string          `json:"reference"`
	RemittanceInformation               string          `json:"remittance_information"`
	RequestedDate                       string          `json:"requested_date"`
	BatchBooking                        *bool           `json:"batch_booking"`
	LocalInstrument                     string          `json:"local_instrument"`
	LocalInstrumentKey                  string          `json:"local_instrument_key"`
	ServiceLevel                        string          `json:"service_level"`
	ChargeBearer                        string          `json:"charge_bearer"`
	CategoryPurpose                     string          `json:"category_purpose"`
	Purpose                             string          `json:"purpose"`
	StructuredRemittanceInformation     string          `json:"structured_remittance_information"`
	StructuredRemittanceInformationCode string          `json:"structured_remittance_information_code"`
	DestinationCurrency                 string          `json:"destination_currency"`
	DebtorAccount                       *AccountRequest `json:"debtor_account"`
	CreditorAddress                     *AddressRequest `json:"creditor_address"`
}

// GenerateCreditTransferRequest is the input DTO for rendering a pain.001 document.
// An empty Schema lets the service choose.
type GenerateCreditTransferRequest struct {
	Schema       string               `json:"schema"`
	Account      AccountRequest       `json:"account"`
	Transactions []TransactionRequest `json:"transactions"`
}

// GenerateCreditTransferResponse is the output DTO after a document was rendered.
type GenerateCreditTransferResponse struct {
	MessageID    string
	Schema       string
	Transactions int
	ControlSum   string
	Document     []byte
}

// DecodeGenerateCreditTransferRequest reads a JSON request, rejecting keys
// that no field accepts.
func DecodeGenerateCreditTransferRequest(r io.Reader) (GenerateCreditTransferRequest, error) {
	var req GenerateCreditTransferRequest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		if name, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			return GenerateCreditTransferRequest{}, fmt.Errorf("%w %s", ErrUnknownField, name)
		}
		return GenerateCreditTransferRequest{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if dec.More() {
		return GenerateCreditTransferRequest{}, fmt.Errorf("%w: trailing data after request object", ErrMalformed)
	}
	return req, nil
}

// ToModel converts the account request.
func (a AccountRequest) ToModel() model.Account {
	return model.Account{
		Name:             a.Name,
		IBAN:             a.IBAN,
		BIC:              a.BIC,
		AccountNumber:    a.AccountNumber,
		OrgIDSchemeCode:  a.OrgIDSchemeCode,
		DebtorIdentifier: a.DebtorIdentifier,
		UKSortCode:       a.UKSortCode,
		BankAccountType:  a.BankAccountType,
	}
}

// ToModel converts the address request.
func (a AddressRequest) ToModel() model.Address {
	return model.Address{
		StreetName:     a.StreetName,
		BuildingNumber: a.BuildingNumber,
		PostCode:       a.PostCode,
		TownName:       a.TownName,
		CountryCode:    a.CountryCode,
		AddressLine1:   a.AddressLine1,
		AddressLine2:   a.AddressLine2,
	}
}

// ToModel converts the leg request. Only the requested date can fail to convert.
func (t TransactionRequest) ToModel() (model.CreditTransferTransaction, error) {
	var requested time.Time
	if t.RequestedDate != "" {
		d, err := time.Parse(model.DateLayout, t.RequestedDate)
		if err != nil {
			return model.CreditTransferTransaction{}, fmt.Errorf("%w: requested_date %q is not a YYYY-MM-DD date", ErrMalformed, t.RequestedDate)
		}
		requested = d
	}

	tx := model.CreditTransferTransaction{
		Transaction: model.Transaction{
			Name:                     t.Name,
			IBAN:                     t.IBAN,
			BIC:                      t.BIC,
			AccountNumber:            t.AccountNumber,
			AccountNumberProprietary: t.AccountNumberProprietary,
			AccountNumberCode:        t.AccountNumberCode,
			ClearingCode:             t.ClearingCode,
			ClearingBankIdentifier:   t.ClearingBankIdentifier,
			Amount:                   t.Amount,
			Currency:                 t.Currency,
			Instruction:              t.Instruction,
			Reference:                t.Reference,
			RemittanceInformation:    t.RemittanceInformation,
			RequestedDate:            requested,
			BatchBooking:             t.BatchBooking,
			LocalInstrument:          t.LocalInstrument,
			LocalInstrumentKey:       t.LocalInstrumentKey,
		},
		ServiceLevel:                        t.ServiceLevel,
		ChargeBearer:                        t.ChargeBearer,
		CategoryPurpose:                     t.CategoryPurpose,
		Purpose:                             t.Purpose,
		StructuredRemittanceInformation:     t.StructuredRemittanceInformation,
		StructuredRemittanceInformationCode: t.StructuredRemittanceInformationCode,
		DestinationCurrency:                 t.DestinationCurrency,
	}
	if t.DebtorAccount != nil {
		acc := t.DebtorAccount.ToModel()
		tx.DebtorAccount = &acc
	}
	if t.CreditorAddress != nil {
		addr := t.CreditorAddress.ToModel()
		tx.CreditorAddress = &addr
	}
	return tx, nil
}
