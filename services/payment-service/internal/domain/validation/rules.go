package validation

import (
	"regexp"
	"strings"
)

var (
	// IBAN2007Identifier from the pain.001 schemas.
	ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[a-zA-Z0-9]{1,30}$`)
	// AnyBICIdentifier from the pain.001 schemas.
	bicPattern = regexp.MustCompile(`^[A-Z]{6}[A-Z2-9][A-NP-Z0-9]([A-Z0-9]{3})?$`)
	// Country code, check digits, creditor business code, national identifier.
	creditorIDPattern = regexp.MustCompile(`^[a-zA-Z]{2}[0-9]{2}[A-Za-z0-9]{3}[A-Za-z0-9+?/:().,'-]{1,28}$`)
	mandateIDPattern  = regexp.MustCompile(`^[A-Za-z0-9 +?/:().,'-]{1,35}$`)
	ukSortCodePattern = regexp.MustCompile(`^[0-9]{6}$`)
)

// ValidIBAN reports whether iban is well formed and passes the ISO 7064
// mod 97-10 check.
func ValidIBAN(iban string) bool {
	if !ibanPattern.MatchString(iban) {
		return false
	}
	return ibanChecksum(iban) == 1
}

// ibanChecksum moves the first four characters to the end, maps letters to
// 10..35 and reduces the resulting number mod 97 digit by digit.
func ibanChecksum(iban string) int {
	rearranged := strings.ToUpper(iban[4:] + iban[:4])
	rem := 0
	for _, c := range rearranged {
		switch {
		case c >= '0' && c <= '9':
			rem = (rem*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			rem = (rem*100 + int(c-'A'+10)) % 97
		default:
			return -1
		}
	}
	return rem
}

// ValidBIC reports whether bic is an 8 or 11 character business identifier code.
func ValidBIC(bic string) bool {
	return bicPattern.MatchString(bic)
}

// ValidCreditorIdentifier reports whether id is a SEPA creditor identifier.
// German identifiers are always exactly 18 characters long.
func ValidCreditorIdentifier(id string) bool {
	if !creditorIDPattern.MatchString(id) {
		return false
	}
	if strings.EqualFold(id[:2], "DE") {
		return len(id) == 18
	}
	return true
}

// ValidDebtorIdentifier reports whether id fits a Max35Text.
func ValidDebtorIdentifier(id string) bool {
	return len([]rune(id)) <= 35
}

// ValidMandateIdentifier reports whether id is a usable SEPA mandate reference.
func ValidMandateIdentifier(id string) bool {
	return mandateIDPattern.MatchString(id)
}

// ValidUKSortCode reports whether code is a six digit UK sort code.
func ValidUKSortCode(code string) bool {
	return ukSortCodePattern.MatchString(code)
}
