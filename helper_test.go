package finance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/finance/date"
)

// sampleCSV is a small, valid ledger file.
const sampleCSV = `transaction_id,date,customer_id,amount,type,description
1,2020-10-26,926,6478.39,credit,Online purchase - Electronics
2,2020-10-27,466,100.50,debit,Grocery shopping
3,2021-03-15,123,2500.00,transfer,Savings account transfer
4,2021-06-20,926,89.99,debit,Streaming subscription
5,2022-01-10,789,4500.00,credit,Freelance payment
6,2022-01-11,789,200.00,debit,Utility bill
7,2022-09-05,466,1200.00,transfer,Investment account deposit
8,2023-02-14,123,75.25,debit,Restaurant dinner
9,2023-07-30,926,3000.00,credit,Salary deposit
10,2023-08-01,466,150.00,debit,Phone bill
11,2024-04-12,789,600.00,transfer,Charity donation
12,2024-05-20,123,45.00,debit,Coffee shop
13,2024-11-25,926,800.00,credit,Bonus payment
14,2025-01-15,466,500.00,transfer,Loan repayment
15,2025-02-10,789,299.99,debit,New headphones
`

// tx is a helper for test to create a transaction from constants, the amount sign is set from the type.
func tx(id int, on string, customer int, amount float64, t Type, description string) Transaction {
	return NewTransaction(id, date.MustParse(on), customer, A(amount), t, description)
}

// sample returns the transactions of sampleCSV.
func sample() []Transaction {
	return []Transaction{
		tx(1, "2020-10-26", 926, 6478.39, Credit, "Online purchase - Electronics"),
		tx(2, "2020-10-27", 466, 100.50, Debit, "Grocery shopping"),
		tx(3, "2021-03-15", 123, 2500.00, Transfer, "Savings account transfer"),
		tx(4, "2021-06-20", 926, 89.99, Debit, "Streaming subscription"),
		tx(5, "2022-01-10", 789, 4500.00, Credit, "Freelance payment"),
		tx(6, "2022-01-11", 789, 200.00, Debit, "Utility bill"),
		tx(7, "2022-09-05", 466, 1200.00, Transfer, "Investment account deposit"),
		tx(8, "2023-02-14", 123, 75.25, Debit, "Restaurant dinner"),
		tx(9, "2023-07-30", 926, 3000.00, Credit, "Salary deposit"),
		tx(10, "2023-08-01", 466, 150.00, Debit, "Phone bill"),
		tx(11, "2024-04-12", 789, 600.00, Transfer, "Charity donation"),
		tx(12, "2024-05-20", 123, 45.00, Debit, "Coffee shop"),
		tx(13, "2024-11-25", 926, 800.00, Credit, "Bonus payment"),
		tx(14, "2025-01-15", 466, 500.00, Transfer, "Loan repayment"),
		tx(15, "2025-02-10", 789, 299.99, Debit, "New headphones"),
	}
}

// writeTemp writes content into a new file named name in a temporary folder and returns its path.
func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

// sampleStore returns a store preloaded with the sample transactions.
func sampleStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(nil)
	if _, err := s.Load(t.Context(), NewFile(writeTemp(t, "transactions.csv", sampleCSV))); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}
