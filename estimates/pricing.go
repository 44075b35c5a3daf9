package estimates

import "github.com/shopspring/decimal"

// itemAmounts returns the base (qty x price) and margin contribution of one
// line. Division by 100 is a decimal shift so it never rounds.
func itemAmounts(quantity, price, margin string) (base, marginAmount decimal.Decimal) {
	q := nonNegativeOrZero(quantity)
	p := nonNegativeOrZero(price)
	m := AmountOrZero(margin)

	base = q.Mul(p)
	marginAmount = base.Mul(m).Shift(-2)
	return base, marginAmount
}

// ItemTotal computes quantity * price * (1 + margin/100). Unparseable inputs
// count as zero.
func ItemTotal(quantity, price, margin string) decimal.Decimal {
	base, marginAmount := itemAmounts(quantity, price, margin)
	return base.Add(marginAmount)
}

// SectionSubtotal sums the stored item totals of a section.
func SectionSubtotal(s Section) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range s.Items {
		sum = sum.Add(it.Total)
	}
	return sum
}

// Totals is the document-wide roll-up. Values are unrounded.
type Totals struct {
	SubTotal    decimal.Decimal
	TotalMargin decimal.Decimal
	TotalAmount decimal.Decimal
}

// DisplayTotals holds Totals rounded to two places for rendering.
type DisplayTotals struct {
	SubTotal    string
	TotalMargin string
	TotalAmount string
}

// Display rounds each total to two decimal places.
func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		SubTotal:    t.SubTotal.StringFixed(2),
		TotalMargin: t.TotalMargin.StringFixed(2),
		TotalAmount: t.TotalAmount.StringFixed(2),
	}
}

// DocumentTotals recomputes subtotal, margin and grand total from the raw
// item inputs of every section.
func DocumentTotals(d Document) Totals {
	sub := decimal.Zero
	margin := decimal.Zero
	for _, s := range d.Sections {
		for _, it := range s.Items {
			base, m := itemAmounts(it.Quantity, it.Price, it.Margin)
			sub = sub.Add(base)
			margin = margin.Add(m)
		}
	}
	return Totals{
		SubTotal:    sub,
		TotalMargin: margin,
		TotalAmount: sub.Add(margin),
	}
}
