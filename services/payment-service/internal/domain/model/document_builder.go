package model

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/pkg/iso20022"
	"github.com/bibbank/bib/pkg/money"
)

// NotProvided fills mandatory identifiers the caller did not supply.
const NotProvided = "NOTPROVIDED"

// buildDocument renders the grouped legs as a CstmrCdtTrfInitn body.
func buildDocument(msgID string, createdAt time.Time, initiator Account, groups []Group) iso20022.CustomerCreditTransferInitiation {
	var (
		count int
		total = decimal.Zero
	)
	blocks := make([]iso20022.PaymentInstructionInformation, 0, len(groups))
	for i, g := range groups {
		blocks = append(blocks, buildPaymentInformation(fmt.Sprintf("%s/%d", msgID, i+1), g))
		count += len(g.Transactions)
		total = total.Add(g.AmountTotal())
	}

	return iso20022.CustomerCreditTransferInitiation{
		GrpHdr: iso20022.GroupHeader{
			MsgID:   msgID,
			CreDtTm: createdAt.Format(time.RFC3339),
			NbOfTxs: strconv.Itoa(count),
			CtrlSum: money.Format(total),
			InitgPty: iso20022.PartyIdentification{
				Nm: initiator.Name,
				ID: organisationID(initiator),
			},
		},
		PmtInf: blocks,
	}
}

func buildPaymentInformation(id string, g Group) iso20022.PaymentInstructionInformation {
	key := g.Key
	pmtInf := iso20022.PaymentInstructionInformation{
		PmtInfID:    id,
		PmtMtd:      iso20022.PaymentMethodTransfer,
		BtchBookg:   key.BatchBooking,
		NbOfTxs:     strconv.Itoa(len(g.Transactions)),
		CtrlSum:     money.Format(g.AmountTotal()),
		ReqdExctnDt: key.RequestedDate,
		Dbtr: iso20022.PartyIdentification{
			Nm: key.Account.Name,
			ID: organisationID(key.Account),
		},
		DbtrAcct: debtorCashAccount(key.Account),
		DbtrAgt:  debtorAgent(key.Account),
		ChrgBr:   key.ChargeBearer,
	}

	tp := iso20022.PaymentTypeInformation{}
	if key.ServiceLevel != "" {
		tp.SvcLvl = iso20022.Code(key.ServiceLevel)
	}
	if len(g.Transactions) > 0 {
		tp.LclInstrm = g.Transactions[0].localInstrument()
	}
	if key.CategoryPurpose != "" {
		tp.CtgyPurp = iso20022.Code(key.CategoryPurpose)
	}
	if !tp.IsEmpty() {
		pmtInf.PmtTpInf = &tp
	}

	pmtInf.CdtTrfTxInf = make([]iso20022.CreditTransferTransactionInformation, len(g.Transactions))
	for i, t := range g.Transactions {
		pmtInf.CdtTrfTxInf[i] = buildTransaction(t)
	}
	return pmtInf
}

func organisationID(a Account) *iso20022.PartyChoice {
	if a.DebtorIdentifier == "" {
		return nil
	}
	return &iso20022.PartyChoice{
		OrgID: iso20022.OrganisationIdentification{
			Othr: iso20022.GenericIdentification{
				ID:      a.DebtorIdentifier,
				SchmeNm: iso20022.Code(a.SchemeCode()),
			},
		},
	}
}

func debtorCashAccount(a Account) iso20022.CashAccount {
	if a.IBAN != "" {
		return iso20022.CashAccount{ID: iso20022.AccountIdentification{IBAN: a.IBAN}}
	}
	othr := &iso20022.GenericIdentification{ID: a.AccountNumber}
	switch a.BankAccountType {
	case BankAccountTypeBBAN:
		othr.SchmeNm = iso20022.Code(BankAccountTypeBBAN)
	case BankAccountTypeBGNR:
		othr.SchmeNm = iso20022.Proprietary(BankAccountTypeBGNR)
	}
	return iso20022.CashAccount{ID: iso20022.AccountIdentification{Othr: othr}}
}

func debtorAgent(a Account) iso20022.FinancialInstitution {
	var id iso20022.FinancialInstitutionIdentification
	switch {
	case a.BIC != "":
		id.BIC = a.BIC
	case a.UKSortCode != "":
		id.ClrSysMmbID = &iso20022.ClearingSystemMember{MmbID: a.UKSortCode}
	default:
		id.Othr = &iso20022.GenericIdentification{ID: NotProvided}
	}
	return iso20022.FinancialInstitution{FinInstnID: id}
}

func buildTransaction(t CreditTransferTransaction) iso20022.CreditTransferTransactionInformation {
	tx := iso20022.CreditTransferTransactionInformation{
		PmtID: iso20022.PaymentIdentification{
			InstrID:    t.Instruction,
			EndToEndID: t.Reference,
		},
		Amt:      amount(t),
		CdtrAgt:  creditorAgent(t),
		Cdtr:     iso20022.PartyIdentification{Nm: t.Name},
		CdtrAcct: creditorCashAccount(t),
	}
	if t.CreditorAddress != nil {
		tx.Cdtr.PstlAdr = t.CreditorAddress.postal()
	}

	switch {
	case t.RemittanceInformation != "":
		tx.RmtInf = &iso20022.RemittanceInformation{Ustrd: t.RemittanceInformation}
	case t.StructuredRemittanceInformation != "":
		var ref iso20022.CreditorReferenceInformation
		if t.StructuredRemittanceInformationCode != "" {
			ref.Tp.CdOrPrtry.Cd = t.StructuredRemittanceInformationCode
			ref.Ref = t.StructuredRemittanceInformation
		} else {
			ref.Tp.CdOrPrtry.Prtry = t.StructuredRemittanceInformation
		}
		tx.RmtInf = &iso20022.RemittanceInformation{
			Strd: &iso20022.StructuredRemittanceInformation{CdtrRefInf: ref},
		}
	case t.Purpose != "":
		tx.Purp = iso20022.Proprietary(t.Purpose)
	}
	return tx
}

func amount(t CreditTransferTransaction) iso20022.AmountChoice {
	value := money.Format(t.Amount)
	if t.UseEquivalentAmount() {
		return iso20022.AmountChoice{EqvtAmt: &iso20022.EquivalentAmount{
			Amt:      iso20022.CurrencyAndAmount{Ccy: t.Currency, Value: value},
			CcyOfTrf: t.DestinationCurrency,
		}}
	}
	return iso20022.AmountChoice{InstdAmt: &iso20022.CurrencyAndAmount{Ccy: t.Currency, Value: value}}
}

func creditorAgent(t CreditTransferTransaction) *iso20022.FinancialInstitution {
	switch {
	case t.BIC != "":
		return &iso20022.FinancialInstitution{FinInstnID: iso20022.FinancialInstitutionIdentification{BIC: t.BIC}}
	case t.ClearingBankIdentifier != "":
		member := &iso20022.ClearingSystemMember{MmbID: t.ClearingBankIdentifier}
		if t.ClearingCode != "" {
			member.ClrSysID = iso20022.Code(t.ClearingCode)
		}
		return &iso20022.FinancialInstitution{FinInstnID: iso20022.FinancialInstitutionIdentification{ClrSysMmbID: member}}
	default:
		return nil
	}
}

func creditorCashAccount(t CreditTransferTransaction) iso20022.CashAccount {
	if t.IBAN != "" {
		return iso20022.CashAccount{ID: iso20022.AccountIdentification{IBAN: t.IBAN}}
	}
	othr := &iso20022.GenericIdentification{ID: t.AccountNumber}
	switch {
	case t.AccountNumberProprietary != "":
		othr.SchmeNm = iso20022.Proprietary(t.AccountNumberProprietary)
	case t.AccountNumberCode != "":
		othr.SchmeNm = iso20022.Code(t.AccountNumberCode)
	}
	return iso20022.CashAccount{ID: iso20022.AccountIdentification{Othr: othr}}
}
