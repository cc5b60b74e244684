// Package bas computes Business Activity Statement figures from classified
// transactions: reporting periods, GST aggregation and expense breakdowns.
package bas

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cleared-dev/bastally/internal/model"
	"github.com/cleared-dev/bastally/internal/parse"
)

// InPeriod reports whether date lies within [start, end], compared by calendar day.
func InPeriod(date, start, end time.Time) bool {
	return model.Period{Start: start, End: end}.Contains(date)
}

// Quarter returns calendar quarter q (1-4) of year. 2025 Q3 is July to September 2025.
func Quarter(year, q int) (model.Period, error) {
	if q < 1 || q > 4 {
		return model.Period{}, fmt.Errorf("quarter must be 1-4, got %d", q)
	}
	start := time.Date(year, time.Month(3*(q-1)+1), 1, 0, 0, 0, 0, time.UTC)
	return model.Period{
		Name:  fmt.Sprintf("%d-Q%d", year, q),
		Start: start,
		End:   start.AddDate(0, 3, -1),
	}, nil
}

// FinancialYear returns the Australian financial year starting 1 July startYear.
func FinancialYear(startYear int) model.Period {
	return model.Period{
		Name:  fmt.Sprintf("FY%d-%02d", startYear, (startYear+1)%100),
		Start: time.Date(startYear, time.July, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(startYear+1, time.June, 30, 0, 0, 0, 0, time.UTC),
	}
}

// CustomPeriod returns the inclusive range from..to.
func CustomPeriod(from, to time.Time) (model.Period, error) {
	from, to = model.Day(from), model.Day(to)
	if to.Before(from) {
		return model.Period{}, fmt.Errorf("period end %s is before start %s",
			to.Format(time.DateOnly), from.Format(time.DateOnly))
	}
	return model.Period{Start: from, End: to}, nil
}

// ParseCustomPeriod parses the bounds of a custom range with the statement date layouts.
func ParseCustomPeriod(from, to string) (model.Period, error) {
	start, err := parse.ParseDate(from)
	if err != nil {
		return model.Period{}, fmt.Errorf("parsing --from: %w", err)
	}
	end, err := parse.ParseDate(to)
	if err != nil {
		return model.Period{}, fmt.Errorf("parsing --to: %w", err)
	}
	return CustomPeriod(start, end)
}

var quarterPattern = regexp.MustCompile(`^(\d{4})-?Q([1-4])$`)

// ParseQuarter parses "2025-Q3" or "2025Q3".
func ParseQuarter(s string) (model.Period, error) {
	m := quarterPattern.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(s)))
	if m == nil {
		return model.Period{}, fmt.Errorf("invalid quarter %q, want YYYY-Qn", s)
	}
	year, _ := strconv.Atoi(m[1])
	q, _ := strconv.Atoi(m[2])
	return Quarter(year, q)
}

var fyPattern = regexp.MustCompile(`^(?:FY)?(\d{4})(?:[-/](\d{2}|\d{4}))?$`)

// ParseFinancialYear parses "2024-25", "2024-2025" or "FY2024-25", all
// meaning 1 Jul 2024 to 30 Jun 2025. A lone year with the FY prefix names
// the year the financial year ends in, so "FY2025" is the same period.
func ParseFinancialYear(s string) (model.Period, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	m := fyPattern.FindStringSubmatch(raw)
	if m == nil {
		return model.Period{}, fmt.Errorf("invalid financial year %q, want YYYY-YY", s)
	}
	year, _ := strconv.Atoi(m[1])

	if m[2] == "" {
		if !strings.HasPrefix(raw, "FY") {
			return model.Period{}, fmt.Errorf("ambiguous financial year %q, want YYYY-YY or FYYYYY", s)
		}
		return FinancialYear(year - 1), nil
	}

	end, _ := strconv.Atoi(m[2])
	if len(m[2]) == 2 {
		end += year / 100 * 100
		if end <= year {
			end += 100
		}
	}
	if end != year+1 {
		return model.Period{}, fmt.Errorf("financial year %q must span consecutive years", s)
	}
	return FinancialYear(year), nil
}
