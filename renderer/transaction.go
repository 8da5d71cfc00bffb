package renderer

import (
	"fmt"

	"github.com/etnz/finance"
	"github.com/etnz/finance/date"
)

// Transaction renders a transaction to a single line of text.
func Transaction(tx finance.Transaction, currency string) string {
	switch tx.Type {
	case finance.Credit:
		return fmt.Sprintf("#%d: Credit of %s from customer %d on %s: %s", tx.ID, tx.Amount.Abs().Format(currency), tx.CustomerID, tx.Date.Format(date.DisplayFormat), tx.Description)
	case finance.Debit:
		return fmt.Sprintf("#%d: Debit of %s by customer %d on %s: %s", tx.ID, tx.Amount.Abs().Format(currency), tx.CustomerID, tx.Date.Format(date.DisplayFormat), tx.Description)
	case finance.Transfer:
		return fmt.Sprintf("#%d: Transfer of %s for customer %d on %s: %s", tx.ID, tx.Amount.Abs().Format(currency), tx.CustomerID, tx.Date.Format(date.DisplayFormat), tx.Description)
	default:
		return tx.String()
	}
}
