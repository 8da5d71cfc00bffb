package finance

import (
	"errors"
	"fmt"
	"strings"
)

// This file contains the code shared by every storage format.
//
// The overall strategy to decode transactions is as follow:
//   Each format reads its raw rows into a Record of untyped strings, keeping
//   track of the row number. Each Record is then handed to a Collector that
//   parses the fields, applies the sign convention and rejects duplicates.
//   Rejected rows are kept in the Batch with their reason, they never stop the
//   decoding.

// Columns lists the required columns, in file order.
var Columns = []string{"transaction_id", "date", "customer_id", "amount", "type", "description"}

// ErrNoValidRows is returned when a source contains no valid transaction at all.
var ErrNoValidRows = errors.New("no valid transactions")

// MissingColumnsError reports required columns absent from a source header.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
}

// missingColumns returns the required columns not present in header.
func missingColumns(header []string) error {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[strings.TrimSpace(h)] = true
	}
	var missing []string
	for _, c := range Columns {
		if !present[c] {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}
	return nil
}

// Record is a raw, unvalidated row.
type Record struct {
	ID          string
	Date        string
	CustomerID  string
	Amount      string
	Type        string
	Description string
}

// RecordOf returns the persisted form of a transaction: the amount is unsigned,
// its sign being carried by the type.
func RecordOf(tx Transaction) Record {
	return Record{
		ID:          fmt.Sprint(tx.ID),
		Date:        tx.Date.String(),
		CustomerID:  fmt.Sprint(tx.CustomerID),
		Amount:      tx.Amount.Unsigned(),
		Type:        tx.Type.String(),
		Description: tx.Description,
	}
}

// Values returns the record fields in [Columns] order.
func (r Record) Values() []string {
	return []string{r.ID, r.Date, r.CustomerID, r.Amount, r.Type, r.Description}
}

// Parse validates every field of the record and returns the transaction.
// Debit amounts are negated.
func (r Record) Parse() (Transaction, error) {
	id, err := ParseID(r.ID)
	if err != nil {
		return Transaction{}, err
	}
	on, err := ParseDate(r.Date)
	if err != nil {
		return Transaction{}, err
	}
	customer, err := ParseCustomerID(r.CustomerID)
	if err != nil {
		return Transaction{}, err
	}
	amount, err := ParseAmount(r.Amount)
	if err != nil {
		return Transaction{}, err
	}
	t, err := ParseType(r.Type)
	if err != nil {
		return Transaction{}, err
	}
	description, err := ParseDescription(r.Description)
	if err != nil {
		return Transaction{}, err
	}
	return NewTransaction(id, on, customer, amount, t, description), nil
}

// RowError is the reason a row was skipped.
type RowError struct {
	Row int // 1-based row (or line) number in the source
	Err error
}

func (e RowError) Error() string { return fmt.Sprintf("row %d: %v", e.Row, e.Err) }
func (e RowError) Unwrap() error { return e.Err }

// Batch is the result of decoding a source.
type Batch struct {
	Transactions []Transaction
	Skipped      []RowError
}

// Collector accumulates decoded records into a Batch.
type Collector struct {
	batch Batch
	seen  map[int]bool
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{seen: make(map[int]bool)}
}

// Collect parses r and appends it to the batch, or records why it was skipped.
// It reports whether the record was accepted.
func (c *Collector) Collect(row int, r Record) bool {
	tx, err := r.Parse()
	if err == nil && c.seen[tx.ID] {
		err = fmt.Errorf("%w: %d", ErrDuplicateID, tx.ID)
	}
	if err != nil {
		c.batch.Skipped = append(c.batch.Skipped, RowError{Row: row, Err: err})
		return false
	}
	c.seen[tx.ID] = true
	c.batch.Transactions = append(c.batch.Transactions, tx)
	return true
}

// Batch returns the collected batch.
func (c *Collector) Batch() *Batch { return &c.batch }
