package finance

import (
	"fmt"

	"github.com/etnz/finance/date"
)

// Transaction is a single financial record.
type Transaction struct {
	ID          int
	Date        date.Date
	CustomerID  int
	Amount      Amount // signed, see [Type.Signed]
	Type        Type
	Description string
}

// NewTransaction creates a transaction, the sign of amount is set from t.
func NewTransaction(id int, on date.Date, customerID int, amount Amount, t Type, description string) Transaction {
	return Transaction{
		ID:          id,
		Date:        on,
		CustomerID:  customerID,
		Amount:      t.Signed(amount),
		Type:        t,
		Description: description,
	}
}

func (tx Transaction) String() string {
	return fmt.Sprintf("{ID: %d, Date: %s, Customer: %d, Amount: %s, Type: %s, Description: %q}",
		tx.ID, tx.Date, tx.CustomerID, tx.Amount, tx.Type, tx.Description)
}
