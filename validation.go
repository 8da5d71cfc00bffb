package finance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/finance/date"
)

// Field errors. They are shared by file loading and interactive input, callers
// match them with errors.Is.
var (
	ErrInvalidID             = errors.New("transaction id must be an integer")
	ErrNonPositiveID         = errors.New("transaction id must be positive")
	ErrDuplicateID           = errors.New("duplicate transaction id")
	ErrInvalidDate           = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidCustomerID     = errors.New("customer id must be an integer")
	ErrNonPositiveCustomerID = errors.New("customer id must be positive")
	ErrInvalidAmount         = errors.New("amount must be a number")
	ErrNegativeAmount        = errors.New("amount must not be negative")
	ErrNonPositiveAmount     = errors.New("amount must be positive")
	ErrInvalidType           = errors.New("type must be one of credit, debit, transfer")
	ErrEmptyDescription      = errors.New("description cannot be empty")
	ErrInconsistentSign      = errors.New("amount sign does not match type")
)

// ParseID parses a transaction id.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrNonPositiveID, id)
	}
	return id, nil
}

// ParseDate parses a transaction date in YYYY-MM-DD format.
func ParseDate(s string) (date.Date, error) {
	d, err := date.Parse(strings.TrimSpace(s))
	if err != nil {
		return date.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// ParseCustomerID parses a strictly positive customer id.
func ParseCustomerID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCustomerID, s)
	}
	if id <= 0 {
		return 0, fmt.Errorf("%w: %d", ErrNonPositiveCustomerID, id)
	}
	return id, nil
}

// ParseDescription trims s and rejects it if nothing is left.
func ParseDescription(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyDescription
	}
	return s, nil
}

// Validate checks a transaction for correctness and returns all the validation failures.
func (tx Transaction) Validate() error {
	var errs []error
	if tx.ID <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrNonPositiveID, tx.ID))
	}
	if tx.Date.IsZero() {
		errs = append(errs, fmt.Errorf("%w: missing date", ErrInvalidDate))
	}
	if tx.CustomerID <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrNonPositiveCustomerID, tx.CustomerID))
	}
	switch tx.Type {
	case Credit, Transfer:
		if tx.Amount.IsNegative() {
			errs = append(errs, fmt.Errorf("%w: %s %s", ErrInconsistentSign, tx.Type, tx.Amount))
		}
	case Debit:
		if tx.Amount.IsPositive() {
			errs = append(errs, fmt.Errorf("%w: %s %s", ErrInconsistentSign, tx.Type, tx.Amount))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidType, tx.Type))
	}
	if strings.TrimSpace(tx.Description) == "" {
		errs = append(errs, ErrEmptyDescription)
	}
	return errors.Join(errs...)
}
