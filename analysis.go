package finance

import (
	"github.com/etnz/finance/date"
)

// Analysis holds the aggregate statistics of a list of transactions.
type Analysis struct {
	Count    int
	From, To date.Date // earliest and latest transaction dates

	counts  map[Type]int
	totals  map[Type]Amount      // sum of absolute amounts
	largest map[Type]Transaction // largest absolute amount
}

// Analyze computes totals per type and the net balance. It fails with
// [ErrEmpty] when txs is empty.
func Analyze(txs []Transaction) (*Analysis, error) {
	if len(txs) == 0 {
		return nil, ErrEmpty
	}
	a := &Analysis{
		Count:   len(txs),
		From:    txs[0].Date,
		To:      txs[0].Date,
		counts:  make(map[Type]int),
		totals:  make(map[Type]Amount),
		largest: make(map[Type]Transaction),
	}
	for _, tx := range txs {
		a.counts[tx.Type]++
		a.totals[tx.Type] = a.totals[tx.Type].Add(tx.Amount.Abs())
		if l, ok := a.largest[tx.Type]; !ok || tx.Amount.Abs().GreaterThan(l.Amount.Abs()) {
			a.largest[tx.Type] = tx
		}
		if tx.Date.Before(a.From) {
			a.From = tx.Date
		}
		if tx.Date.After(a.To) {
			a.To = tx.Date
		}
	}
	return a, nil
}

// Total returns the sum of absolute amounts for type t.
func (a *Analysis) Total(t Type) Amount { return a.totals[t] }

// Counts returns the number of transactions of type t.
func (a *Analysis) Counts(t Type) int { return a.counts[t] }

// Largest returns the transaction with the largest absolute amount of type t.
func (a *Analysis) Largest(t Type) (Transaction, bool) {
	tx, ok := a.largest[t]
	return tx, ok
}

// Average returns the mean absolute amount for type t, zero if there is none.
func (a *Analysis) Average(t Type) Amount {
	if a.counts[t] == 0 {
		return Amount{}
	}
	return a.totals[t].DivInt(a.counts[t]).round()
}

// NetBalance returns total credits plus signed total debits.
//
// Transfers are not part of the balance.
func (a *Analysis) NetBalance() Amount {
	return a.totals[Credit].Add(Debit.Signed(a.totals[Debit]))
}
