package services

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AmountInWords spells out amount rounded to whole units. Rupee amounts use
// lakh and crore grouping and end in "Rupees Only/-"; anything else uses
// thousand, million and billion and ends in "Only".
// Example: 913183 in ₹ -> "Nine Lakhs Thirteen Thousand One Hundred and Eighty Three Rupees Only/-"
func AmountInWords(amount decimal.Decimal, currency string) string {
	if amount.IsNegative() && !amount.Round(0).IsZero() {
		return "Negative " + AmountInWords(amount.Neg(), currency)
	}

	n := amount.Round(0).IntPart()
	if currency == IndianRupee {
		if n == 0 {
			return "Zero Rupees Only/-"
		}
		return indianWords(n) + " Rupees Only/-"
	}
	if n == 0 {
		return "Zero Only"
	}
	return internationalWords(n) + " Only"
}

type scale struct {
	size int64
	name string
}

var (
	indianScales        = []scale{{10000000, "Crores"}, {100000, "Lakhs"}, {1000, "Thousand"}}
	internationalScales = []scale{{1000000000, "Billion"}, {1000000, "Million"}, {1000, "Thousand"}}
)

func indianWords(n int64) string {
	return groupWords(n, indianScales)
}

func internationalWords(n int64) string {
	return groupWords(n, internationalScales)
}

// groupWords writes n largest scale first. A group larger than a scale can
// hold (e.g. 250 crores) is spelled out recursively.
func groupWords(n int64, scales []scale) string {
	var parts []string
	for _, s := range scales {
		if n >= s.size {
			parts = append(parts, groupWords(n/s.size, scales)+" "+s.name)
			n %= s.size
		}
	}
	if n >= 100 {
		parts = append(parts, ones[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "and "+under100(n))
		} else {
			parts = append(parts, under100(n))
		}
	}
	return strings.Join(parts, " ")
}

func under100(n int64) string {
	if n < 20 {
		return ones[n]
	}
	result := tens[n/10]
	if n%10 != 0 {
		result += " " + ones[n%10]
	}
	return result
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
