package finance

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/finance/date"
)

// MinYear is the earliest year accepted as a filter.
const MinYear = 1900

var (
	ErrInvalidFilterType = errors.New("filter type must be one of credit, debit, transfer or empty")
	ErrYearNotInteger    = errors.New("year must be an integer")
	ErrYearOutOfRange    = errors.New("year out of range")
)

// Filter selects transactions by type and year. Zero fields match everything.
type Filter struct {
	Type Type
	Year int
}

// ParseFilter validates a type and a year as typed by a user. Empty strings
// mean no filter. The year must be within [MinYear, today's year].
func ParseFilter(typ, year string, today date.Date) (Filter, error) {
	var f Filter
	if typ = strings.TrimSpace(typ); typ != "" {
		t, err := ParseType(typ)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %q", ErrInvalidFilterType, typ)
		}
		f.Type = t
	}
	if year = strings.TrimSpace(year); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %q", ErrYearNotInteger, year)
		}
		if y < MinYear || y > today.Year() {
			return Filter{}, fmt.Errorf("%w: year must be between %d and %d, got %d", ErrYearOutOfRange, MinYear, today.Year(), y)
		}
		f.Year = y
	}
	return f, nil
}

// Match reports whether tx passes both criteria.
func (f Filter) Match(tx Transaction) bool {
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if f.Year != 0 && !date.Year(f.Year).Contains(tx.Date) {
		return false
	}
	return true
}

// Title describes the selection, e.g. "Debit transactions in 2020".
func (f Filter) Title() string {
	switch {
	case f.Type != "" && f.Year != 0:
		return fmt.Sprintf("%s transactions in %d", f.Type.Title(), f.Year)
	case f.Type != "":
		return fmt.Sprintf("%s transactions", f.Type.Title())
	case f.Year != 0:
		return fmt.Sprintf("Transactions in %d", f.Year)
	default:
		return "All transactions"
	}
}

// NotFound is the message shown when nothing matches, e.g. "No Credit transactions in 2019 found.".
func (f Filter) NotFound() string {
	switch {
	case f.Type != "" && f.Year != 0:
		return fmt.Sprintf("No %s transactions in %d found.", f.Type.Title(), f.Year)
	case f.Type != "":
		return fmt.Sprintf("No %s transactions found.", f.Type.Title())
	case f.Year != 0:
		return fmt.Sprintf("No transactions in %d found.", f.Year)
	default:
		return "No transactions found."
	}
}
