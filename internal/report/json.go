package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bastally/internal/model"
	"github.com/cleared-dev/bastally/internal/pipeline"
)

type jsonReport struct {
	RunID        string         `json:"run_id"`
	RulesVersion string         `json:"rules_version,omitempty"`
	Period       jsonPeriod     `json:"period"`
	G1           string         `json:"g1_total_sales"`
	A1           string         `json:"1a_gst_on_sales"`
	G11          string         `json:"g11_gst_expenses"`
	B1           string         `json:"1b_gst_on_expenses"`
	NetPayable   string         `json:"net_payable"`
	RefundDue    bool           `json:"refund_due"`
	NonGST       string         `json:"non_gst_expenses"`
	Counts       map[string]int `json:"counts"`
	Summary      jsonSummary    `json:"summary"`
}

type jsonPeriod struct {
	Name  string `json:"name,omitempty"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type jsonSummary struct {
	FilesRead     int            `json:"files_read"`
	FilesSkipped  []jsonSkipped  `json:"files_skipped"`
	Coverage      []jsonCoverage `json:"coverage"`
	Uncovered     []jsonPeriod   `json:"uncovered"`
	RowsParsed    int            `json:"rows_parsed"`
	RowsSkipped   map[string]int `json:"rows_skipped"`
	RowErrors     []jsonRowError `json:"row_errors"`
	Duplicates    int            `json:"duplicates_removed"`
	OutsidePeriod int            `json:"outside_period"`
	Classified    int            `json:"transactions_counted"`
}

type jsonCoverage struct {
	File  string `json:"file"`
	First string `json:"first"`
	Last  string `json:"last"`
	Rows  int    `json:"rows"`
}

type jsonRowError struct {
	File  string `json:"file"`
	Line  int    `json:"line"`
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

type jsonSkipped struct {
	File   string `json:"file"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

// WriteJSON writes the report as indented JSON. Amounts are strings rounded to cents.
func WriteJSON(w io.Writer, res *pipeline.Result) error {
	r := res.Report
	out := jsonReport{
		RunID:        res.RunID,
		RulesVersion: res.RulesVersion,
		Period: jsonPeriod{
			Name:  r.Period.Name,
			Start: r.Period.Start.Format(time.DateOnly),
			End:   r.Period.End.Format(time.DateOnly),
		},
		G1:         cents(r.TotalSales),
		A1:         cents(r.GSTOnSales),
		G11:        cents(r.TotalGSTExpenses),
		B1:         cents(r.GSTOnExpenses),
		NetPayable: cents(r.NetPayable),
		RefundDue:  r.RefundDue(),
		NonGST:     cents(r.TotalNonGSTExpenses),
		Counts:     make(map[string]int, len(model.Buckets)),
		Summary: jsonSummary{
			FilesRead:     res.Stats.FilesRead,
			FilesSkipped:  []jsonSkipped{},
			Coverage:      []jsonCoverage{},
			Uncovered:     []jsonPeriod{},
			RowsParsed:    res.Stats.RowsParsed,
			RowsSkipped:   make(map[string]int, len(res.Stats.SkippedRows)),
			RowErrors:     []jsonRowError{},
			Duplicates:    res.Stats.Duplicates,
			OutsidePeriod: res.Stats.OutsidePeriod,
			Classified:    res.Stats.Classified,
		},
	}
	for _, b := range model.Buckets {
		out.Counts[string(b)] = r.Counts[b]
	}
	for _, fe := range res.Stats.SkippedFiles {
		reason := fe.Kind.Label()
		if fe.Err != nil {
			reason = fe.Err.Error()
		}
		out.Summary.FilesSkipped = append(out.Summary.FilesSkipped, jsonSkipped{
			File:   fe.File,
			Kind:   string(fe.Kind),
			Reason: reason,
		})
	}
	for _, c := range res.Stats.Coverage {
		out.Summary.Coverage = append(out.Summary.Coverage, jsonCoverage{
			File:  c.File,
			First: c.First.Format(time.DateOnly),
			Last:  c.Last.Format(time.DateOnly),
			Rows:  c.Rows,
		})
	}
	for _, gap := range res.Stats.Uncovered {
		out.Summary.Uncovered = append(out.Summary.Uncovered, jsonPeriod{
			Start: gap.Start.Format(time.DateOnly),
			End:   gap.End.Format(time.DateOnly),
		})
	}
	for _, re := range res.Stats.RowErrors {
		out.Summary.RowErrors = append(out.Summary.RowErrors, jsonRowError{
			File:  re.File,
			Line:  re.Line,
			Kind:  string(re.Kind),
			Value: re.Value,
		})
	}
	for k, n := range res.Stats.SkippedRows {
		out.Summary.RowsSkipped[string(k)] = n
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

func cents(d decimal.Decimal) string {
	return d.StringFixed(2)
}
