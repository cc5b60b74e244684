package pipeline

import (
	"sort"
	"time"

	"github.com/cleared-dev/bastally/internal/model"
)

// FileCoverage is the span of transaction dates read from one statement file.
type FileCoverage struct {
	File  string
	First time.Time
	Last  time.Time
	Rows  int
}

// Span returns the coverage as an unnamed period.
func (c FileCoverage) Span() model.Period {
	return model.Period{Start: c.First, End: c.Last}
}

func coverageOf(file string, txns []model.Transaction) (FileCoverage, bool) {
	if len(txns) == 0 {
		return FileCoverage{}, false
	}
	c := FileCoverage{File: file, First: txns[0].Date, Last: txns[0].Date, Rows: len(txns)}
	for _, txn := range txns[1:] {
		if txn.Date.Before(c.First) {
			c.First = txn.Date
		}
		if txn.Date.After(c.Last) {
			c.Last = txn.Date
		}
	}
	c.First, c.Last = model.Day(c.First), model.Day(c.Last)
	return c, true
}

// Gaps returns the days of period that fall outside every file's span,
// merged into ranges in date order.
func Gaps(coverage []FileCoverage, period model.Period) []model.Period {
	spans := make([]FileCoverage, len(coverage))
	copy(spans, coverage)
	sort.Slice(spans, func(i, j int) bool { return spans[i].First.Before(spans[j].First) })

	end := model.Day(period.End)
	next := model.Day(period.Start) // first day not yet covered
	var gaps []model.Period
	for _, s := range spans {
		if next.After(end) {
			break
		}
		if s.Last.Before(next) {
			continue
		}
		if s.First.After(next) {
			gapEnd := s.First.AddDate(0, 0, -1)
			if gapEnd.After(end) {
				gapEnd = end
			}
			gaps = append(gaps, model.Period{Start: next, End: gapEnd})
		}
		next = s.Last.AddDate(0, 0, 1)
	}
	if !next.After(end) {
		gaps = append(gaps, model.Period{Start: next, End: end})
	}
	return gaps
}
