package parse

import (
	"strings"
	"time"
)

// DateLayouts are tried in order; the first that parses wins.
var DateLayouts = []string{
	"2 Jan 06",
	"2 Jan 2006",
	"2/1/2006",
	"2006-01-02",
	"2-Jan-06",
	"2-Jan-2006",
	"2/1/06",
	"2 January 2006",
}

// ParseDate parses a statement date using DateLayouts.
func ParseDate(raw string) (time.Time, error) {
	return ParseDateWith(raw, DateLayouts)
}

// ParseDateWith parses raw using the given layouts in order.
// The result is midnight UTC.
func ParseDateWith(raw string, layouts []string) (time.Time, error) {
	s := strings.Join(strings.Fields(raw), " ")
	if s == "" {
		return time.Time{}, &RowError{Kind: KindInvalidDate, Value: raw}
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &RowError{Kind: KindInvalidDate, Value: raw}
}
