package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/bib/pkg/testutil"
	"github.com/bibbank/bib/services/payment-service/internal/domain/model"
)

func TestGroupTransactions(t *testing.T) {
	june10 := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	other := model.Account{Name: "Zweitkonto", IBAN: testutil.DutchIBAN, BIC: testutil.DutchBIC}

	legs := map[string]func(*model.CreditTransferTransaction){
		"a": func(*model.CreditTransferTransaction) {},
		"b": func(l *model.CreditTransferTransaction) { l.RequestedDate = june10 },
		"c": func(*model.CreditTransferTransaction) {},
		"d": func(l *model.CreditTransferTransaction) { l.BatchBooking = model.Bool(false) },
		"e": func(l *model.CreditTransferTransaction) { l.DebtorAccount = &other },
		"f": func(l *model.CreditTransferTransaction) { l.RequestedDate = june10.Add(14 * time.Hour) },
		"g": func(l *model.CreditTransferTransaction) { l.CategoryPurpose = "SUPP" },
		"h": func(l *model.CreditTransferTransaction) { l.LocalInstrument = "INST" },
		"i": func(l *model.CreditTransferTransaction) {
			l.LocalInstrument = "INST"
			l.LocalInstrumentKey = model.LocalInstrumentKeyCode
		},
		"j": func(l *model.CreditTransferTransaction) { l.ChargeBearer = "SHAR" },
		"k": func(l *model.CreditTransferTransaction) {
			copyOfDebtor := debtorAccount()
			l.DebtorAccount = &copyOfDebtor
		},
	}

	var txs []model.CreditTransferTransaction
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		leg := creditorLeg("1")
		leg.Instruction = name
		legs[name](&leg)
		txs = append(txs, model.NewCreditTransferTransaction(leg))
	}

	groups := model.GroupTransactions(debtorAccount(), txs)

	var got [][]string
	for _, g := range groups {
		var names []string
		for _, tx := range g.Transactions {
			names = append(names, tx.Instruction)
		}
		got = append(got, names)
	}
	assert.Equal(t, [][]string{
		{"a", "c", "k"},
		{"b", "f"},
		{"d"},
		{"e"},
		{"g"},
		{"h"},
		{"i"},
		{"j"},
	}, got)

	require.Len(t, groups, 8)
	assert.Equal(t, "1999-01-01", groups[0].Key.RequestedDate)
	assert.Equal(t, "2025-06-10", groups[1].Key.RequestedDate)
	assert.False(t, groups[2].Key.BatchBooking)
	assert.Equal(t, other, groups[3].Key.Account)
	assert.Equal(t, "3.00", groups[0].AmountTotal().StringFixed(2))
}

func TestGroupTransactions_Empty(t *testing.T) {
	assert.Empty(t, model.GroupTransactions(debtorAccount(), nil))
}
