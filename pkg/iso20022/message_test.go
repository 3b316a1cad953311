package iso20022

import (
	"strings"
	"testing"
)

func TestParseSchema(t *testing.T) {
	for _, s := range KnownSchemas() {
		got, err := ParseSchema(string(s))
		if err != nil {
			t.Fatalf("ParseSchema(%q) returned error: %v", s, err)
		}
		if got != s {
			t.Errorf("ParseSchema(%q) = %q", s, got)
		}
	}

	if _, err := ParseSchema("pain.008.001.02"); err == nil {
		t.Error("expected error for direct debit schema")
	}
	if _, err := ParseSchema(""); err == nil {
		t.Error("expected error for empty schema name")
	}
}

func TestSchemaNamespace(t *testing.T) {
	tests := []struct {
		schema   Schema
		ns       string
		location string
	}{
		{
			schema:   Pain00100103,
			ns:       "urn:iso:std:iso:20022:tech:xsd:pain.001.001.03",
			location: "urn:iso:std:iso:20022:tech:xsd:pain.001.001.03 pain.001.001.03.xsd",
		},
		{
			schema:   Pain00100203,
			ns:       "urn:iso:std:iso:20022:tech:xsd:pain.001.002.03",
			location: "urn:iso:std:iso:20022:tech:xsd:pain.001.002.03 pain.001.002.03.xsd",
		},
		{
			schema:   Pain00100303,
			ns:       "urn:iso:std:iso:20022:tech:xsd:pain.001.003.03",
			location: "urn:iso:std:iso:20022:tech:xsd:pain.001.003.03 pain.001.003.03.xsd",
		},
		{
			schema: Pain00100103CH02,
			ns:     "http://www.six-interbank-clearing.com/de/pain.001.001.03.ch.02.xsd",
			location: "http://www.six-interbank-clearing.com/de/pain.001.001.03.ch.02.xsd " +
				"http://www.six-interbank-clearing.com/de/pain.001.001.03.ch.02.xsd",
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.schema), func(t *testing.T) {
			if got := tt.schema.Namespace(); got != tt.ns {
				t.Errorf("Namespace() = %q, want %q", got, tt.ns)
			}
			if got := tt.schema.SchemaLocation(); got != tt.location {
				t.Errorf("SchemaLocation() = %q, want %q", got, tt.location)
			}
		})
	}
}

func TestMarshalHeader(t *testing.T) {
	data, err := Marshal(Pain00100103, CustomerCreditTransferInitiation{
		GrpHdr: GroupHeader{MsgID: "NS-TEST", NbOfTxs: "0", CtrlSum: "0.00"},
	})
	if err != nil {
		t.Fatalf("Marshal() returned error: %v", err)
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
		`<Document xmlns="urn:iso:std:iso:20022:tech:xsd:pain.001.001.03"` +
		` xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance"` +
		` xsi:schemaLocation="urn:iso:std:iso:20022:tech:xsd:pain.001.001.03 pain.001.001.03.xsd">` + "\n"
	if !strings.HasPrefix(string(data), want) {
		t.Errorf("unexpected document header:\n%s", data)
	}
}

func TestMarshalUnknownSchema(t *testing.T) {
	if _, err := Marshal(Schema("pain.001.001.09"), CustomerCreditTransferInitiation{}); err == nil {
		t.Error("expected error for unknown schema")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	body := CustomerCreditTransferInitiation{
		GrpHdr: GroupHeader{
			MsgID:    "MSG-001",
			CreDtTm:  "2025-01-15T10:30:00Z",
			NbOfTxs:  "1",
			CtrlSum:  "1000.00",
			InitgPty: PartyIdentification{Nm: "Acme Corp"},
		},
		PmtInf: []PaymentInstructionInformation{
			{
				PmtInfID:    "MSG-001/1",
				PmtMtd:      PaymentMethodTransfer,
				BtchBookg:   true,
				NbOfTxs:     "1",
				CtrlSum:     "1000.00",
				PmtTpInf:    &PaymentTypeInformation{SvcLvl: Code("SEPA")},
				ReqdExctnDt: "2025-01-16",
				Dbtr:        PartyIdentification{Nm: "Acme Corp"},
				DbtrAcct:    CashAccount{ID: AccountIdentification{IBAN: "DE89370400440532013000"}},
				DbtrAgt:     FinancialInstitution{FinInstnID: FinancialInstitutionIdentification{BIC: "COBADEFFXXX"}},
				ChrgBr:      "SLEV",
				CdtTrfTxInf: []CreditTransferTransactionInformation{
					{
						PmtID:    PaymentIdentification{EndToEndID: "E2E-001"},
						Amt:      AmountChoice{InstdAmt: &CurrencyAndAmount{Ccy: "EUR", Value: "1000.00"}},
						Cdtr:     PartyIdentification{Nm: "Widget Inc"},
						CdtrAcct: CashAccount{ID: AccountIdentification{IBAN: "GB29NWBK60161331926819"}},
						RmtInf:   &RemittanceInformation{Ustrd: "Invoice 12345"},
					},
				},
			},
		},
	}

	data, err := Marshal(Pain00100303, body)
	if err != nil {
		t.Fatalf("Marshal() returned error: %v", err)
	}

	doc, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("produced invalid XML: %v", err)
	}

	if doc.Xmlns != Pain00100303.Namespace() {
		t.Errorf("expected namespace %s, got %s", Pain00100303.Namespace(), doc.Xmlns)
	}
	if doc.CstmrCdtTrfInitn.GrpHdr.MsgID != "MSG-001" {
		t.Errorf("expected MsgId MSG-001, got %s", doc.CstmrCdtTrfInitn.GrpHdr.MsgID)
	}
	pmtInf := doc.CstmrCdtTrfInitn.PmtInf
	if len(pmtInf) != 1 || len(pmtInf[0].CdtTrfTxInf) != 1 {
		t.Fatalf("expected one PmtInf with one transaction, got %+v", pmtInf)
	}
	if got := pmtInf[0].CdtTrfTxInf[0].Amt.InstdAmt; got == nil || got.Ccy != "EUR" || got.Value != "1000.00" {
		t.Errorf("unexpected instructed amount %+v", got)
	}
	if !pmtInf[0].BtchBookg {
		t.Error("expected BtchBookg true")
	}
	if !strings.Contains(string(data), "<BtchBookg>true</BtchBookg>") {
		t.Error("BtchBookg not rendered as literal true")
	}
}

func TestPaymentTypeInformationIsEmpty(t *testing.T) {
	if !(PaymentTypeInformation{}).IsEmpty() {
		t.Error("zero PaymentTypeInformation should be empty")
	}
	if (PaymentTypeInformation{CtgyPurp: Code("SALA")}).IsEmpty() {
		t.Error("PaymentTypeInformation with category purpose should not be empty")
	}
}
