package finance

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecodeJSONL decodes transactions from a stream of JSONL data, one object per line.
//
// Keys are the [Columns]. The first object must contain all of them, lines
// have no length limit. Values
// may be JSON strings or numbers. An invalid object is skipped and reported
// in the batch, a line that is not JSON fails the whole decoding.
func DecodeJSONL(r io.Reader) (*Batch, error) {
	c := NewCollector()
	br := bufio.NewReader(r)
	line, first := 0, true
	for {
		lineBytes, readErr := br.ReadBytes('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, fmt.Errorf("error reading from input: %w", readErr)
		}
		line++
		lineBytes = bytes.TrimSpace(lineBytes)
		if len(lineBytes) > 0 {
			var obj map[string]json.RawMessage
			if err := json.Unmarshal(lineBytes, &obj); err != nil {
				return nil, fmt.Errorf("malformed json on line %d: %w", line, err)
			}
			if first {
				if err := missingColumns(slices.Collect(maps.Keys(obj))); err != nil {
					return nil, err
				}
				first = false
			}
			c.Collect(line, Record{
				ID:          rawText(obj["transaction_id"]),
				Date:        rawText(obj["date"]),
				CustomerID:  rawText(obj["customer_id"]),
				Amount:      rawText(obj["amount"]),
				Type:        rawText(obj["type"]),
				Description: rawText(obj["description"]),
			})
		}
		if readErr == io.EOF {
			break
		}
	}
	// A stream without objects is an empty batch, as a CSV file with only a header.
	return c.Batch(), nil
}

// rawText returns the text of a JSON scalar: strings are unquoted, other
// literals are kept verbatim, null and absent values are empty.
func rawText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}

// EncodeTransaction marshals a single transaction to JSON and writes it to the
// writer, followed by a newline, in JSONL format. Keys are written in [Columns] order.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	var o jsonObjectWriter
	o.Append("transaction_id", tx.ID).
		Append("date", tx.Date).
		Append("customer_id", tx.CustomerID).
		Append("amount", tx.Amount.Abs()).
		Append("type", tx.Type).
		Append("description", tx.Description)
	data, err := o.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %d: %w", tx.ID, err)
	}
	// Write the JSON data followed by a newline to create the JSONL format.
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeJSONL writes all transactions in JSONL format, in store order.
func EncodeJSONL(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
