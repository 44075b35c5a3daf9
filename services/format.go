package services

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// IndianRupee switches FormatMoney to Indian digit grouping.
const IndianRupee = "₹"

// FormatMoney renders amount with two decimal places, thousands separators
// and the given currency symbol in front, e.g. "$1,125.00". With the rupee
// symbol the Indian numbering system is used (₹1,23,45,678.90).
func FormatMoney(amount decimal.Decimal, symbol string) string {
	negative := amount.IsNegative()
	raw := amount.Abs().StringFixed(2)

	// Split into integer and decimal parts.
	parts := strings.SplitN(raw, ".", 2)
	intPart := parts[0]
	decPart := parts[1]

	var formatted string
	if symbol == IndianRupee {
		formatted = applyIndianGrouping(intPart)
	} else {
		formatted = applyThousandsGrouping(intPart)
	}

	result := symbol + formatted + "." + decPart
	if negative && !amount.Round(2).IsZero() {
		result = "-" + result
	}
	return result
}

// applyIndianGrouping inserts commas into an integer string using the
// Indian numbering system: the rightmost 3 digits form the first group,
// then every 2 digits form subsequent groups.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	// The last 3 digits stay together.
	result := s[n-3:]
	remaining := s[:n-3]

	// Group remaining digits in pairs from the right.
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}

	return result
}

// applyThousandsGrouping inserts a comma every three digits from the right.
func applyThousandsGrouping(s string) string {
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatDate renders t the way list pages show dates ("04 Sep 2019"), or an
// em dash for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02 Jan 2006")
}

// FormatQuantity trims trailing zeros from a decimal quantity for display.
func FormatQuantity(q decimal.Decimal) string {
	if q.Equal(q.Truncate(0)) {
		return q.StringFixed(0)
	}
	return q.String()
}
