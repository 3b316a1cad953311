package testutil

import "time"

// Checksum-valid identifiers shared by the credit transfer tests.
const (
	DebtorName = "Schuldner GmbH"
	DebtorIBAN = "DE87200500001234567890"
	DebtorBIC  = "BANKDEFFXXX"

	CreditorName  = "Telekomiker AG"
	CreditorIBAN  = "DE37112589611964645802"
	CreditorBIC   = "PBNKDEFF370"
	CreditorIBAN2 = "DE27793589132923472195"

	SwissIBAN = "CH5481230000001998736"
	SwissBIC  = "RAIFCH22"
	DutchIBAN = "NL08RABO0135742099"
	DutchBIC  = "RABONL2U"
)

// Today is the fixed calendar day the credit transfer tests run "on".
var Today = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)

// Clock returns Today; pass it wherever a func() time.Time clock is accepted.
func Clock() time.Time {
	return Today
}
