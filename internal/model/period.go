package model

import (
	"fmt"
	"time"
)

const periodDateFormat = "2 Jan 2006"

// Period is an inclusive reporting window measured in whole days.
type Period struct {
	Name  string
	Start time.Time
	End   time.Time
}

// Contains reports whether date falls on or between Start and End.
func (p Period) Contains(date time.Time) bool {
	d := Day(date)
	return !d.Before(Day(p.Start)) && !d.After(Day(p.End))
}

// Months returns the number of calendar months the period touches.
func (p Period) Months() int {
	start, end := Day(p.Start), Day(p.End)
	if end.Before(start) {
		return 0
	}
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}

func (p Period) String() string {
	span := fmt.Sprintf("%s - %s", p.Start.Format(periodDateFormat), p.End.Format(periodDateFormat))
	if p.Name == "" {
		return span
	}
	return fmt.Sprintf("%s (%s)", p.Name, span)
}

// Day truncates t to midnight UTC on the same calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
