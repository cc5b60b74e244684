// Package report renders pipeline results for people and for other tools.
package report

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultSymbol is the currency symbol used when none is configured.
const DefaultSymbol = "$"

// FormatMoney renders d rounded to cents with thousands separators:
// "$1,234.56", "-$12.00".
func FormatMoney(d decimal.Decimal, symbol string) string {
	r := d.Round(2)
	neg := r.IsNegative()
	fixed := r.Abs().StringFixed(2)

	whole, frac, _ := strings.Cut(fixed, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}
