package parse

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errEmptyAmount = errors.New("empty")

// minusReplacer maps look-alike minus signs from copy-pasted statements to ASCII.
var minusReplacer = strings.NewReplacer(
	"\u2212", "-", // minus sign
	"\u2013", "-", // en dash
	"\ufe63", "-", // small hyphen-minus
	"\uff0d", "-", // fullwidth hyphen-minus
)

var noiseReplacer = strings.NewReplacer(
	"A$", "",
	"AUD", "",
	"$", "",
	",", "",
	" ", "",
	"\u00a0", "",
)

// ParseAmount parses a currency amount such as "$1,234.56", "−$37.16",
// "(12.50)" or "80.00 DR" into an exact decimal.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(minusReplacer.Replace(raw))
	if s == "" {
		return decimal.Zero, &RowError{Kind: KindInvalidAmount, Value: raw, Err: errEmptyAmount}
	}

	var forceSign int
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		forceSign = -1
		s = s[1 : len(s)-1]
	}
	switch upper := strings.ToUpper(s); {
	case strings.HasSuffix(upper, "CR"):
		forceSign = 1
		s = s[:len(s)-2]
	case strings.HasSuffix(upper, "DR"):
		forceSign = -1
		s = s[:len(s)-2]
	}

	s = noiseReplacer.Replace(s)
	s = strings.TrimPrefix(s, "+")
	if s == "" {
		return decimal.Zero, &RowError{Kind: KindInvalidAmount, Value: raw, Err: errEmptyAmount}
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &RowError{Kind: KindInvalidAmount, Value: raw}
	}

	switch forceSign {
	case 1:
		d = d.Abs()
	case -1:
		d = d.Abs().Neg()
	}
	return d, nil
}

// IsAmount reports whether raw looks like a signed or currency-marked amount.
// Bare numbers are not amounts here; pasted statements always carry a sign or symbol.
func IsAmount(raw string) bool {
	s := strings.TrimSpace(minusReplacer.Replace(raw))
	if !strings.ContainsAny(s, "$+-()") {
		return false
	}
	_, err := ParseAmount(s)
	return err == nil
}
