package model

import "github.com/bibbank/bib/pkg/iso20022"

// Address is the optional postal address of a creditor.
type Address struct {
	StreetName     string `validate:"max=70"`
	BuildingNumber string `validate:"max=16"`
	PostCode       string `validate:"max=16"`
	TownName       string `validate:"max=35"`
	CountryCode    string `validate:"omitempty,len=2"`
	AddressLine1   string `validate:"max=70"`
	AddressLine2   string `validate:"max=70"`
}

// IsEmpty reports whether no address field is set.
func (a Address) IsEmpty() bool {
	return a == Address{}
}

// postal converts the address, keeping only the fields that were supplied.
func (a Address) postal() *iso20022.PostalAddress {
	if a.IsEmpty() {
		return nil
	}
	p := &iso20022.PostalAddress{
		StrtNm: a.StreetName,
		BldgNb: a.BuildingNumber,
		PstCd:  a.PostCode,
		TwnNm:  a.TownName,
		Ctry:   a.CountryCode,
	}
	for _, line := range []string{a.AddressLine1, a.AddressLine2} {
		if line != "" {
			p.AdrLine = append(p.AdrLine, line)
		}
	}
	return p
}
