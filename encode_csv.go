package finance

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const bom = "\ufeff"

// DecodeCSV decodes transactions from comma separated values with a header row.
//
// The header must contain every column in [Columns], in any order; extra
// columns are ignored. Invalid rows are skipped and reported in the batch.
// Malformed CSV fails the whole decoding.
func DecodeCSV(r io.Reader) (*Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // short rows are reported per row, not fatal.

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &MissingColumnsError{Columns: Columns}
	}
	if err != nil {
		return nil, fmt.Errorf("malformed csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}
	if err := missingColumns(header); err != nil {
		return nil, err
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	c := NewCollector()
	for {
		values, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed csv: %w", err)
		}
		row, _ := cr.FieldPos(0)
		field := func(name string) string {
			if i := index[name]; i < len(values) {
				return values[i]
			}
			return ""
		}
		c.Collect(row, Record{
			ID:          field("transaction_id"),
			Date:        field("date"),
			CustomerID:  field("customer_id"),
			Amount:      field("amount"),
			Type:        field("type"),
			Description: field("description"),
		})
	}
	return c.Batch(), nil
}

// EncodeCSV writes transactions as comma separated values, header first.
// Amounts are written unsigned, the type carries the sign.
func EncodeCSV(w io.Writer, txs []Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, tx := range txs {
		if err := cw.Write(RecordOf(tx).Values()); err != nil {
			return fmt.Errorf("failed to write transaction %d: %w", tx.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
