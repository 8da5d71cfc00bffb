package finance

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount represents an exact, signed monetary value in major units.
//
// Amount carries no currency, the display currency is chosen when formatting.
type Amount struct {
	value decimal.Decimal
}

// A returns an Amount from a numeric value.
func A[T float64 | int | int64 | decimal.Decimal](value T) Amount {
	return Amount{value: newDecimal(value)}
}

func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case decimal.Decimal:
		return v
	default:
		panic(fmt.Sprintf("unsupported amount value %T", value))
	}
}

func (a Amount) Decimal() decimal.Decimal     { return a.value }
func (a Amount) Equal(b Amount) bool          { return a.value.Equal(b.value) }
func (a Amount) Cmp(b Amount) int             { return a.value.Cmp(b.value) }
func (a Amount) IsZero() bool                 { return a.value.IsZero() }
func (a Amount) IsPositive() bool             { return a.value.IsPositive() }
func (a Amount) IsNegative() bool             { return a.value.IsNegative() }
func (a Amount) Abs() Amount                  { return Amount{value: a.value.Abs()} }
func (a Amount) Neg() Amount                  { return Amount{value: a.value.Neg()} }
func (a Amount) Add(b Amount) Amount          { return Amount{value: a.value.Add(b.value)} }
func (a Amount) Sub(b Amount) Amount          { return Amount{value: a.value.Sub(b.value)} }
func (a Amount) LessThan(b Amount) bool       { return a.value.LessThan(b.value) }
func (a Amount) GreaterThan(b Amount) bool    { return a.value.GreaterThan(b.value) }
func (a Amount) InexactFloat64() float64      { return a.value.InexactFloat64() }
func (a Amount) DivInt(n int) Amount          { return Amount{value: a.value.Div(decimal.NewFromInt(int64(n)))} }
func (a Amount) MarshalJSON() ([]byte, error) { return a.value.MarshalJSON() }

// round rounds to cents.
func (a Amount) round() Amount { return Amount{value: a.value.Round(2)} }

// String returns the plain decimal representation, with at least two fractional digits.
func (a Amount) String() string {
	places := int32(2)
	if exp := -a.value.Exponent(); exp > places {
		places = exp
	}
	return a.value.StringFixed(places)
}

// Unsigned returns the representation of the absolute value, as persisted on disk.
func (a Amount) Unsigned() string { return a.Abs().String() }

// Format returns the amount formatted in the given currency, e.g. "$6,478.39"
// or "-$100.50" for USD.
func (a Amount) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	fraction := int32(cur.Fraction)
	minor := a.value.Round(fraction).Shift(fraction)
	if minor.Abs().LessThanOrEqual(maxMinor) {
		return cur.Formatter().Format(minor.IntPart())
	}
	return formatDigits(cur.Formatter(), minor)
}

// maxMinor is the largest amount in minor units go-money can format.
var maxMinor = decimal.NewFromInt(math.MaxInt64)

// formatDigits formats an integral amount in minor units the way f.Format
// does, without going through int64.
func formatDigits(f *money.Formatter, minor decimal.Decimal) string {
	sa := minor.Abs().StringFixed(0)
	if len(sa) <= f.Fraction {
		sa = strings.Repeat("0", f.Fraction-len(sa)+1) + sa
	}
	if f.Thousand != "" {
		for i := len(sa) - f.Fraction - 3; i > 0; i -= 3 {
			sa = sa[:i] + f.Thousand + sa[i:]
		}
	}
	if f.Fraction > 0 {
		sa = sa[:len(sa)-f.Fraction] + f.Decimal + sa[len(sa)-f.Fraction:]
	}
	sa = strings.Replace(f.Template, "1", sa, 1)
	sa = strings.Replace(sa, "$", f.Grapheme, 1)
	if minor.IsNegative() {
		sa = "-" + sa
	}
	return sa
}

// ParseAmount parses a non negative decimal amount as found in a data file.
func ParseAmount(s string) (Amount, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if v.IsNegative() {
		return Amount{}, fmt.Errorf("%w: %q", ErrNegativeAmount, s)
	}
	return Amount{value: v}, nil
}

// ParsePositiveAmount parses a strictly positive decimal amount as typed by a user.
func ParsePositiveAmount(s string) (Amount, error) {
	v, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Amount{}, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !v.IsPositive() {
		return Amount{}, fmt.Errorf("%w: %q", ErrNonPositiveAmount, s)
	}
	return Amount{value: v}, nil
}
