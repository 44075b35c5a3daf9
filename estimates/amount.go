package estimates

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyAmount   = errors.New("amount is empty")
	ErrInvalidAmount = errors.New("amount is not a number")
)

// ParseAmount parses a numeric form input. Surrounding whitespace is ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// AmountOrZero applies the zero policy: any input that fails to parse
// contributes nothing.
func AmountOrZero(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// nonNegativeOrZero is AmountOrZero for quantities and prices, where a
// negative value is treated the same as malformed input.
func nonNegativeOrZero(s string) decimal.Decimal {
	d := AmountOrZero(s)
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
