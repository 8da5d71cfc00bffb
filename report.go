package finance

import (
	"cmp"
	"slices"

	"github.com/etnz/finance/date"
)

// Report is the full picture of a ledger on a given day.
type Report struct {
	On           date.Date
	Currency     string
	Analysis     *Analysis
	Periods      []PeriodSummary   // one per year, chronological
	Customers    []CustomerSummary // by decreasing volume
	Transactions []Transaction
}

// PeriodSummary aggregates the transactions of a date range.
type PeriodSummary struct {
	Range    date.Range
	Count    int
	Credit   Amount
	Debit    Amount // absolute
	Transfer Amount
}

// Net returns credits minus debits over the period.
func (p PeriodSummary) Net() Amount { return p.Credit.Sub(p.Debit) }

// CustomerSummary aggregates the transactions of a customer.
type CustomerSummary struct {
	CustomerID int
	Count      int
	Volume     Amount // sum of absolute amounts
	Net        Amount // signed sum of credits and debits
}

// NewReport builds the report of txs, grouping by period and keeping the top
// customers by volume (all of them if top <= 0).
func NewReport(txs []Transaction, on date.Date, currency string, period date.Period, top int) (*Report, error) {
	a, err := Analyze(txs)
	if err != nil {
		return nil, err
	}
	r := &Report{
		On:           on,
		Currency:     currency,
		Analysis:     a,
		Transactions: slices.Clone(txs),
	}

	periods := make(map[date.Range]*PeriodSummary)
	customers := make(map[int]*CustomerSummary)
	for _, tx := range txs {
		rg := date.NewRange(tx.Date, period)
		p, ok := periods[rg]
		if !ok {
			p = &PeriodSummary{Range: rg}
			periods[rg] = p
		}
		p.Count++
		switch tx.Type {
		case Credit:
			p.Credit = p.Credit.Add(tx.Amount.Abs())
		case Debit:
			p.Debit = p.Debit.Add(tx.Amount.Abs())
		case Transfer:
			p.Transfer = p.Transfer.Add(tx.Amount.Abs())
		}

		c, ok := customers[tx.CustomerID]
		if !ok {
			c = &CustomerSummary{CustomerID: tx.CustomerID}
			customers[tx.CustomerID] = c
		}
		c.Count++
		c.Volume = c.Volume.Add(tx.Amount.Abs())
		if tx.Type != Transfer {
			c.Net = c.Net.Add(tx.Amount)
		}
	}

	for _, p := range periods {
		r.Periods = append(r.Periods, *p)
	}
	slices.SortFunc(r.Periods, func(a, b PeriodSummary) int { return a.Range.From.Compare(b.Range.From) })

	for _, c := range customers {
		r.Customers = append(r.Customers, *c)
	}
	slices.SortFunc(r.Customers, func(a, b CustomerSummary) int {
		if c := b.Volume.Cmp(a.Volume); c != 0 {
			return c
		}
		return cmp.Compare(a.CustomerID, b.CustomerID)
	})
	if top > 0 && len(r.Customers) > top {
		r.Customers = r.Customers[:top]
	}
	return r, nil
}
