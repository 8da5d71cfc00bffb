package finance

import (
	"fmt"
	"strings"
)

// Type is the kind of a transaction. It determines the sign of its amount.
type Type string

const (
	// Credit is money coming in, stored as a positive amount.
	Credit Type = "credit"
	// Debit is money going out, stored as a negative amount.
	Debit Type = "debit"
	// Transfer is money moved between accounts, stored as a positive amount.
	Transfer Type = "transfer"
)

// Types lists all valid transaction types in display order.
var Types = []Type{Credit, Debit, Transfer}

// ParseType parses a transaction type, case insensitive.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case Credit, Debit, Transfer:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
}

// Title returns the capitalized name of the type, e.g. "Credit".
func (t Type) Title() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

func (t Type) String() string { return string(t) }

// Signed returns the amount with the sign convention of t applied: debits are
// negative, credits and transfers are positive.
func (t Type) Signed(a Amount) Amount {
	if t == Debit {
		return a.Abs().Neg()
	}
	return a.Abs()
}
