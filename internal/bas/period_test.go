package bas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInPeriod(t *testing.T) {
	start, end := date(2025, time.July, 1), date(2025, time.September, 30)

	assert.True(t, InPeriod(start, start, end))
	assert.True(t, InPeriod(end, start, end))
	assert.True(t, InPeriod(end.Add(23*time.Hour), start, end), "same calendar day as end")
	assert.False(t, InPeriod(date(2025, time.June, 30), start, end))
	assert.False(t, InPeriod(date(2025, time.October, 1), start, end))
}

func TestQuarter(t *testing.T) {
	tests := []struct {
		q          int
		start, end time.Time
	}{
		{1, date(2025, time.January, 1), date(2025, time.March, 31)},
		{2, date(2025, time.April, 1), date(2025, time.June, 30)},
		{3, date(2025, time.July, 1), date(2025, time.September, 30)},
		{4, date(2025, time.October, 1), date(2025, time.December, 31)},
	}
	for _, tt := range tests {
		p, err := Quarter(2025, tt.q)
		require.NoError(t, err)
		assert.Equal(t, tt.start, p.Start)
		assert.Equal(t, tt.end, p.End)
	}

	_, err := Quarter(2025, 5)
	assert.Error(t, err)
}

func TestParseQuarter(t *testing.T) {
	p, err := ParseQuarter("2025-Q3")
	require.NoError(t, err)
	assert.Equal(t, "2025-Q3", p.Name)
	assert.Equal(t, date(2025, time.July, 1), p.Start)
	assert.Equal(t, date(2025, time.September, 30), p.End)

	p, err = ParseQuarter("2024q1")
	require.NoError(t, err)
	assert.Equal(t, "2024-Q1", p.Name)

	for _, bad := range []string{"", "Q3", "2025-Q0", "2025-Q5", "25-Q1"} {
		_, err := ParseQuarter(bad)
		assert.Error(t, err, bad)
	}
}

func TestFinancialYear(t *testing.T) {
	p := FinancialYear(2024)
	assert.Equal(t, "FY2024-25", p.Name)
	assert.Equal(t, date(2024, time.July, 1), p.Start)
	assert.Equal(t, date(2025, time.June, 30), p.End)
	assert.Equal(t, 12, p.Months())
}

func TestParseFinancialYear(t *testing.T) {
	for _, in := range []string{"2024-25", "2024-2025", "FY2024-25", "fy2025", " 2024/25 "} {
		p, err := ParseFinancialYear(in)
		require.NoError(t, err, in)
		assert.Equal(t, FinancialYear(2024), p, in)
	}

	p, err := ParseFinancialYear("2099-00")
	require.NoError(t, err)
	assert.Equal(t, date(2100, time.June, 30), p.End)

	for _, bad := range []string{"2025", "2024-26", "2024-2026", "FY", "twenty"} {
		_, err := ParseFinancialYear(bad)
		assert.Error(t, err, bad)
	}
}

func TestCustomPeriod(t *testing.T) {
	p, err := CustomPeriod(date(2025, time.October, 1), date(2025, time.December, 31))
	require.NoError(t, err)
	assert.Empty(t, p.Name)
	assert.Equal(t, 3, p.Months())

	same, err := CustomPeriod(date(2025, time.October, 1), date(2025, time.October, 1))
	require.NoError(t, err)
	assert.True(t, same.Contains(date(2025, time.October, 1)))

	_, err = CustomPeriod(date(2025, time.October, 2), date(2025, time.October, 1))
	assert.Error(t, err)
}

func TestParseCustomPeriod(t *testing.T) {
	p, err := ParseCustomPeriod("2025-10-01", "31/12/2025")
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.October, 1), p.Start)
	assert.Equal(t, date(2025, time.December, 31), p.End)

	_, err = ParseCustomPeriod("soon", "2025-12-31")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--from")
}
