package money

import (
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
)

var currencyCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Currency is an ISO 4217 currency code.
type Currency struct {
	code string
}

// NewCurrency creates a Currency after validating the code is exactly 3 uppercase letters.
func NewCurrency(code string) (Currency, error) {
	if !currencyCodeRe.MatchString(code) {
		return Currency{}, fmt.Errorf("invalid currency code %q: must be exactly 3 uppercase letters", code)
	}
	return Currency{code: code}, nil
}

// MustCurrency creates a Currency and panics on error. Intended for package-level variable
// initialization only.
func MustCurrency(code string) Currency {
	c, err := NewCurrency(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the ISO 4217 currency code.
func (c Currency) Code() string {
	return c.code
}

// String returns the currency code.
func (c Currency) String() string {
	return c.code
}

// Is reports whether code names this currency.
func (c Currency) Is(code string) bool {
	return c.code == code
}

// Settlement currencies referenced by the credit transfer schema variants.
var (
	EUR = MustCurrency("EUR")
	CHF = MustCurrency("CHF")
)

// Format renders an amount with exactly two fractional digits, the way
// pain.001 expects ActiveOrHistoricCurrencyAndAmount values.
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Sum adds all amounts. An empty list sums to zero.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
