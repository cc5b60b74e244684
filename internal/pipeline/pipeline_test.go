package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bastally/internal/bas"
	"github.com/cleared-dev/bastally/internal/dedup"
	"github.com/cleared-dev/bastally/internal/logging"
	"github.com/cleared-dev/bastally/internal/model"
	"github.com/cleared-dev/bastally/internal/parse"
	"github.com/cleared-dev/bastally/internal/rules"
)

const (
	julCSV = "../../testdata/statements/jul_2025.csv"
	augCSV = "../../testdata/statements/aug_2025.csv"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func q3Options(t *testing.T) Options {
	t.Helper()
	period, err := bas.ParseQuarter("2025-Q3")
	require.NoError(t, err)
	return Options{Period: period, Rules: rules.Default(), RunID: "test-run"}
}

func TestRun_OverlappingExports(t *testing.T) {
	res, err := Run(context.Background(), []Input{{Path: julCSV}, {Path: augCSV}}, q3Options(t))
	require.NoError(t, err)

	r := res.Report
	assert.Equal(t, "5500.00", r.TotalSales.StringFixed(2))
	assert.Equal(t, "500.00", r.GSTOnSales.StringFixed(2))
	assert.Equal(t, "1100.00", r.TotalGSTExpenses.StringFixed(2))
	assert.Equal(t, "100.00", r.GSTOnExpenses.StringFixed(2))
	assert.Equal(t, "400.00", r.NetPayable.StringFixed(2))
	assert.Equal(t, "585.30", r.TotalNonGSTExpenses.StringFixed(2))
	assert.Equal(t, 1, r.Counts[model.BucketExcluded])

	s := res.Stats
	assert.Equal(t, 2, s.FilesRead)
	assert.Empty(t, s.SkippedFiles)
	assert.Equal(t, 11, s.RowsParsed)
	assert.Equal(t, map[parse.Kind]int{parse.KindInvalidDate: 1, parse.KindInvalidAmount: 1}, s.SkippedRows)
	assert.Equal(t, 2, s.SkippedRowCount())
	assert.Equal(t, []parse.Kind{parse.KindInvalidAmount, parse.KindInvalidDate}, s.SortedKinds())
	assert.Equal(t, 1, s.Duplicates)
	assert.Equal(t, 1, s.OutsidePeriod)
	assert.Equal(t, 9, s.Classified)
	assert.Len(t, res.Transactions, 9)
	assert.Equal(t, "test-run", res.RunID)
	assert.Equal(t, rules.DefaultVersion, res.RulesVersion)

	require.Len(t, s.Coverage, 2)
	assert.Equal(t, FileCoverage{File: julCSV, First: day(2025, 7, 1), Last: day(2025, 7, 15), Rows: 5}, s.Coverage[0])
	assert.Equal(t, FileCoverage{File: augCSV, First: day(2025, 7, 15), Last: day(2025, 10, 1), Rows: 6}, s.Coverage[1])
	assert.Empty(t, s.Uncovered)
}

func TestRun_WarnsOnUncoveredDays(t *testing.T) {
	log := logging.NewMockLogger()
	opts := q3Options(t)
	opts.Logger = log

	res, err := Run(context.Background(), []Input{{Path: julCSV}}, opts)
	require.NoError(t, err)

	require.Len(t, res.Stats.Uncovered, 1)
	assert.Equal(t, day(2025, 7, 16), res.Stats.Uncovered[0].Start)
	assert.Equal(t, day(2025, 9, 30), res.Stats.Uncovered[0].End)

	require.True(t, log.HasEntry("WARN", "Statements do not cover part of the period"))
	for _, e := range log.EntriesByLevel("WARN") {
		if e.Message == "Statements do not cover part of the period" {
			gap, _ := e.FieldValue(logging.FieldGap)
			assert.Equal(t, "16 Jul 2025 - 30 Sep 2025", gap)
		}
	}
}

func TestRun_OrderIndependent(t *testing.T) {
	forward, err := Run(context.Background(), []Input{{Path: julCSV}, {Path: augCSV}}, q3Options(t))
	require.NoError(t, err)
	backward, err := Run(context.Background(), []Input{{Path: augCSV}, {Path: julCSV}}, q3Options(t))
	require.NoError(t, err)

	assert.Equal(t, forward.Report, backward.Report)
	require.Len(t, backward.Transactions, len(forward.Transactions))
	for i := range forward.Transactions {
		assert.Equal(t, dedup.Signature(forward.Transactions[i].Source), dedup.Signature(backward.Transactions[i].Source))
		assert.Equal(t, forward.Transactions[i].Bucket, backward.Transactions[i].Bucket)
	}
}

func TestRun_Idempotent(t *testing.T) {
	inputs := []Input{{Path: julCSV}, {Path: augCSV}}
	first, err := Run(context.Background(), inputs, q3Options(t))
	require.NoError(t, err)
	second, err := Run(context.Background(), inputs, q3Options(t))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRun_SkipsMissingAndBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.csv")
	require.NoError(t, os.WriteFile(broken, []byte("Date,Value\n2025-07-01,10\n"), 0o644))

	log := logging.NewMockLogger()
	opts := q3Options(t)
	opts.Logger = log

	inputs := []Input{{Path: filepath.Join(dir, "missing.csv")}, {Path: broken}, {Path: julCSV}}
	res, err := Run(context.Background(), inputs, opts)
	require.NoError(t, err)

	require.Len(t, res.Stats.SkippedFiles, 2)
	assert.Equal(t, parse.KindFileNotFound, res.Stats.SkippedFiles[0].Kind)
	assert.Equal(t, parse.KindMissingColumns, res.Stats.SkippedFiles[1].Kind)
	assert.Equal(t, broken, res.Stats.SkippedFiles[1].File)
	assert.Equal(t, 1, res.Stats.FilesRead)
	assert.Equal(t, "550.00", res.Report.TotalSales.StringFixed(2))

	var warns []logging.LogEntry
	for _, e := range log.EntriesByLevel("WARN") {
		if e.Message == "Skipping file" {
			warns = append(warns, e)
		}
	}
	require.Len(t, warns, 2)
	runID, ok := warns[0].FieldValue(logging.FieldRunID)
	require.True(t, ok)
	assert.Equal(t, "test-run", runID)
	assert.True(t, log.HasEntry("INFO", "Processing complete"))
}

func TestRun_AllFilesSkipped(t *testing.T) {
	res, err := Run(context.Background(), []Input{{Path: "does/not/exist.csv"}}, q3Options(t))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Zero(t, res.Stats.FilesRead)
	assert.True(t, res.Report.NetPayable.IsZero())
	assert.Empty(t, res.Transactions)
}

func TestRun_LogsSkippedRows(t *testing.T) {
	log := logging.NewMockLogger()
	opts := q3Options(t)
	opts.Logger = log

	_, err := Run(context.Background(), []Input{{Path: augCSV}}, opts)
	require.NoError(t, err)

	var rows []logging.LogEntry
	for _, e := range log.EntriesByLevel("WARN") {
		if e.Message == "Skipping row" {
			rows = append(rows, e)
		}
	}
	require.Len(t, rows, 2)
	kind, _ := rows[0].FieldValue(logging.FieldKind)
	assert.Equal(t, string(parse.KindInvalidDate), kind)
	line, _ := rows[0].FieldValue(logging.FieldLine)
	assert.Equal(t, 6, line)
}

func TestRun_BlocksFormat(t *testing.T) {
	period, err := bas.CustomPeriod(
		time.Date(2025, time.November, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.November, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	res, err := Run(context.Background(),
		[]Input{{Path: "../../testdata/blocks_nov.txt", Format: "blocks"}},
		Options{Period: period, Rules: rules.Default()})
	require.NoError(t, err)

	assert.Len(t, res.Transactions, 4)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, "400.00", res.Report.TotalSales.StringFixed(2))
	// FACEBK and ZAPIER earn credits; the international fee does not.
	assert.Equal(t, "67.15", res.Report.TotalGSTExpenses.StringFixed(2))
	assert.Equal(t, "0.90", res.Report.TotalNonGSTExpenses.StringFixed(2))
	assert.Equal(t, 1, res.Stats.SkippedRows[parse.KindInvalidAmount])
}

func TestRun_UnknownFormat(t *testing.T) {
	_, err := Run(context.Background(), []Input{{Path: julCSV, Format: "ofx"}}, q3Options(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown input format")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []Input{{Path: julCSV}}, q3Options(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RequiresRules(t *testing.T) {
	_, err := Run(context.Background(), nil, Options{})
	assert.Error(t, err)
}
