package iso20022

import (
	"encoding/xml"
	"fmt"
)

// PaymentMethodTransfer is the only PmtMtd allowed for credit transfers.
const PaymentMethodTransfer = "TRF"

// Document is the pain.001 root element.
type Document struct {
	XMLName          xml.Name                         `xml:"Document"`
	Xmlns            string                           `xml:"xmlns,attr"`
	XmlnsXsi         string                           `xml:"xmlns:xsi,attr"`
	SchemaLocation   string                           `xml:"xsi:schemaLocation,attr"`
	CstmrCdtTrfInitn CustomerCreditTransferInitiation `xml:"CstmrCdtTrfInitn"`
}

// CustomerCreditTransferInitiation is the message body: one group header
// followed by one or more payment information blocks.
type CustomerCreditTransferInitiation struct {
	GrpHdr GroupHeader                     `xml:"GrpHdr"`
	PmtInf []PaymentInstructionInformation `xml:"PmtInf"`
}

// GroupHeader carries message-wide identification and totals.
type GroupHeader struct {
	MsgID    string              `xml:"MsgId"`
	CreDtTm  string              `xml:"CreDtTm"`
	NbOfTxs  string              `xml:"NbOfTxs"`
	CtrlSum  string              `xml:"CtrlSum"`
	InitgPty PartyIdentification `xml:"InitgPty"`
}

// PaymentInstructionInformation is a PmtInf block. All transactions inside
// share execution date, payment type, debtor and charge bearer.
type PaymentInstructionInformation struct {
	PmtInfID    string                                 `xml:"PmtInfId"`
	PmtMtd      string                                 `xml:"PmtMtd"`
	BtchBookg   bool                                   `xml:"BtchBookg"`
	NbOfTxs     string                                 `xml:"NbOfTxs"`
	CtrlSum     string                                 `xml:"CtrlSum"`
	PmtTpInf    *PaymentTypeInformation                `xml:"PmtTpInf,omitempty"`
	ReqdExctnDt string                                 `xml:"ReqdExctnDt"`
	Dbtr        PartyIdentification                    `xml:"Dbtr"`
	DbtrAcct    CashAccount                            `xml:"DbtrAcct"`
	DbtrAgt     FinancialInstitution                   `xml:"DbtrAgt"`
	ChrgBr      string                                 `xml:"ChrgBr,omitempty"`
	CdtTrfTxInf []CreditTransferTransactionInformation `xml:"CdtTrfTxInf"`
}

// PaymentTypeInformation groups the optional payment type descriptors.
type PaymentTypeInformation struct {
	SvcLvl    *CodeOrProprietary `xml:"SvcLvl,omitempty"`
	LclInstrm *CodeOrProprietary `xml:"LclInstrm,omitempty"`
	CtgyPurp  *CodeOrProprietary `xml:"CtgyPurp,omitempty"`
}

// IsEmpty reports whether no descriptor is set.
func (p PaymentTypeInformation) IsEmpty() bool {
	return p.SvcLvl == nil && p.LclInstrm == nil && p.CtgyPurp == nil
}

// CodeOrProprietary is the ubiquitous Cd/Prtry choice. Exactly one field is set.
type CodeOrProprietary struct {
	Cd    string `xml:"Cd,omitempty"`
	Prtry string `xml:"Prtry,omitempty"`
}

// Code builds a coded choice.
func Code(cd string) *CodeOrProprietary {
	return &CodeOrProprietary{Cd: cd}
}

// Proprietary builds a proprietary choice.
func Proprietary(prtry string) *CodeOrProprietary {
	return &CodeOrProprietary{Prtry: prtry}
}

// PartyIdentification names a party and optionally identifies it as an organisation.
type PartyIdentification struct {
	Nm      string         `xml:"Nm,omitempty"`
	PstlAdr *PostalAddress `xml:"PstlAdr,omitempty"`
	ID      *PartyChoice   `xml:"Id,omitempty"`
}

// PartyChoice holds the organisation identification branch.
type PartyChoice struct {
	OrgID OrganisationIdentification `xml:"OrgId"`
}

// OrganisationIdentification wraps a generic organisation identifier.
type OrganisationIdentification struct {
	Othr GenericIdentification `xml:"Othr"`
}

// GenericIdentification is an identifier with an optional scheme name.
type GenericIdentification struct {
	ID      string             `xml:"Id"`
	SchmeNm *CodeOrProprietary `xml:"SchmeNm,omitempty"`
}

// PostalAddress is rendered either structured, as free-form lines, or mixed.
type PostalAddress struct {
	StrtNm  string   `xml:"StrtNm,omitempty"`
	BldgNb  string   `xml:"BldgNb,omitempty"`
	PstCd   string   `xml:"PstCd,omitempty"`
	TwnNm   string   `xml:"TwnNm,omitempty"`
	Ctry    string   `xml:"Ctry,omitempty"`
	AdrLine []string `xml:"AdrLine,omitempty"`
}

// CashAccount identifies an account by IBAN or by a generic identifier.
type CashAccount struct {
	ID AccountIdentification `xml:"Id"`
}

// AccountIdentification is the IBAN/Othr choice.
type AccountIdentification struct {
	IBAN string                 `xml:"IBAN,omitempty"`
	Othr *GenericIdentification `xml:"Othr,omitempty"`
}

// FinancialInstitution is a BranchAndFinancialInstitutionIdentification.
type FinancialInstitution struct {
	FinInstnID FinancialInstitutionIdentification `xml:"FinInstnId"`
}

// FinancialInstitutionIdentification identifies an agent by BIC, clearing
// system membership or a generic identifier.
type FinancialInstitutionIdentification struct {
	BIC         string                 `xml:"BIC,omitempty"`
	ClrSysMmbID *ClearingSystemMember  `xml:"ClrSysMmbId,omitempty"`
	Othr        *GenericIdentification `xml:"Othr,omitempty"`
}

// ClearingSystemMember identifies a member of a national clearing system.
type ClearingSystemMember struct {
	ClrSysID *CodeOrProprietary `xml:"ClrSysId,omitempty"`
	MmbID    string             `xml:"MmbId"`
}

// CreditTransferTransactionInformation is one CdtTrfTxInf leg.
type CreditTransferTransactionInformation struct {
	PmtID    PaymentIdentification  `xml:"PmtId"`
	Amt      AmountChoice           `xml:"Amt"`
	CdtrAgt  *FinancialInstitution  `xml:"CdtrAgt,omitempty"`
	Cdtr     PartyIdentification    `xml:"Cdtr"`
	CdtrAcct CashAccount            `xml:"CdtrAcct"`
	Purp     *CodeOrProprietary     `xml:"Purp,omitempty"`
	RmtInf   *RemittanceInformation `xml:"RmtInf,omitempty"`
}

// PaymentIdentification carries the instruction and end-to-end references.
type PaymentIdentification struct {
	InstrID    string `xml:"InstrId,omitempty"`
	EndToEndID string `xml:"EndToEndId"`
}

// AmountChoice is either an instructed amount or an equivalent amount.
type AmountChoice struct {
	InstdAmt *CurrencyAndAmount `xml:"InstdAmt,omitempty"`
	EqvtAmt  *EquivalentAmount  `xml:"EqvtAmt,omitempty"`
}

// CurrencyAndAmount is a decimal amount with its currency attribute.
type CurrencyAndAmount struct {
	Ccy   string `xml:"Ccy,attr"`
	Value string `xml:",chardata"`
}

// EquivalentAmount instructs an amount in one currency to be transferred in another.
type EquivalentAmount struct {
	Amt      CurrencyAndAmount `xml:"Amt"`
	CcyOfTrf string            `xml:"CcyOfTrf"`
}

// RemittanceInformation is either unstructured text or a structured creditor reference.
type RemittanceInformation struct {
	Ustrd string                           `xml:"Ustrd,omitempty"`
	Strd  *StructuredRemittanceInformation `xml:"Strd,omitempty"`
}

// StructuredRemittanceInformation holds the creditor reference.
type StructuredRemittanceInformation struct {
	CdtrRefInf CreditorReferenceInformation `xml:"CdtrRefInf"`
}

// CreditorReferenceInformation types a creditor reference.
type CreditorReferenceInformation struct {
	Tp  CreditorReferenceType `xml:"Tp"`
	Ref string                `xml:"Ref,omitempty"`
}

// CreditorReferenceType wraps the Cd/Prtry choice of the reference type.
type CreditorReferenceType struct {
	CdOrPrtry CodeOrProprietary `xml:"CdOrPrtry"`
}

// Marshal renders body as a complete, indented pain.001 document for the
// given schema variant, including the XML declaration.
func Marshal(schema Schema, body CustomerCreditTransferInitiation) ([]byte, error) {
	if !schema.Known() {
		return nil, fmt.Errorf("schema %q is unknown", schema)
	}
	doc := Document{
		Xmlns:            schema.Namespace(),
		XmlnsXsi:         XMLSchemaInstance,
		SchemaLocation:   schema.SchemaLocation(),
		CstmrCdtTrfInitn: body,
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s document: %w", schema, err)
	}
	return append([]byte(xml.Header), out...), nil
}

// Unmarshal parses a pain.001 document produced by Marshal.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := xml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("unmarshal pain.001 document: %w", err)
	}
	return doc, nil
}
