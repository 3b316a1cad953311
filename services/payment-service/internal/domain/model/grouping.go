package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/bib/pkg/money"
)

// GroupKey is the set of attributes that must be equal for two legs to share
// a payment information block.
type GroupKey struct {
	RequestedDate      string
	LocalInstrument    string
	LocalInstrumentKey string
	BatchBooking       bool
	ServiceLevel       string
	CategoryPurpose    string
	Account            Account
	ChargeBearer       string
}

// Group is one future PmtInf block.
type Group struct {
	Key          GroupKey
	Transactions []CreditTransferTransaction
}

// AmountTotal sums the amounts of the group's legs.
func (g Group) AmountTotal() decimal.Decimal {
	amounts := make([]decimal.Decimal, len(g.Transactions))
	for i, t := range g.Transactions {
		amounts[i] = t.Amount
	}
	return money.Sum(amounts...)
}

func (t CreditTransferTransaction) groupKey(account Account) GroupKey {
	return GroupKey{
		RequestedDate:      t.ExecutionDate(),
		LocalInstrument:    t.LocalInstrument,
		LocalInstrumentKey: t.LocalInstrumentKey,
		BatchBooking:       t.Batch(),
		ServiceLevel:       t.ServiceLevel,
		CategoryPurpose:    t.CategoryPurpose,
		Account:            t.debtorAccount(account),
		ChargeBearer:       t.ChargeBearer,
	}
}

// GroupTransactions partitions legs by GroupKey. Groups appear in the order
// their first leg was added and keep insertion order inside.
func GroupTransactions(account Account, txs []CreditTransferTransaction) []Group {
	index := make(map[GroupKey]int)
	var groups []Group
	for _, t := range txs {
		key := t.groupKey(account)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Transactions = append(groups[i].Transactions, t)
	}
	return groups
}
