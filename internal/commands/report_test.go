package commands_test

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	julCSV = "../../testdata/statements/jul_2025.csv"
	augCSV = "../../testdata/statements/aug_2025.csv"
)

func TestReport_Quarter(t *testing.T) {
	out, _, err := runBastally(t, "report", "--quarter", "2025-Q3", julCSV, augCSV)
	require.NoError(t, err)

	assert.Contains(t, out, "BAS ESTIMATE (2025-Q3 (1 Jul 2025 - 30 Sep 2025))")
	assert.Contains(t, out, "G1 (Total Sales):           $5,500.00")
	assert.Contains(t, out, "1A (GST on Sales):          $500.00")
	assert.Contains(t, out, "G11 (Non-Capital Purch):    $1,100.00")
	assert.Contains(t, out, "1B (GST on Purchases):      $100.00")
	assert.Contains(t, out, "PAYABLE AMOUNT:             $400.00")
	assert.Regexp(t, `Duplicates removed:\s+1\n`, out)
	assert.Regexp(t, `Rows skipped:\s+2\n`, out)
	assert.Regexp(t, `Uncovered days:\s+none\n`, out)
	assert.Contains(t, out, `aug_2025.csv:6: invalid date "NOTADATE"`)
}

func TestReport_JSON(t *testing.T) {
	out, _, err := runBastally(t, "report", "--fy", "2025-26", "--format", "json", julCSV, augCSV)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	// FY2025-26 also takes in the October payout.
	assert.Equal(t, "6499.00", got["g1_total_sales"])
	assert.Equal(t, "1100.00", got["g11_gst_expenses"])
}

func TestReport_CustomRange(t *testing.T) {
	out, stderr, err := runBastally(t, "report", "--from", "2025-07-01", "--to", "2025-07-31", julCSV)
	require.NoError(t, err)
	assert.Contains(t, out, "G1 (Total Sales):           $550.00")
	assert.Contains(t, out, "BAS ESTIMATE (1 Jul 2025 - 31 Jul 2025)")
	// The July export stops on the 15th.
	assert.Regexp(t, `Uncovered ranges:\s+1\n\s+16 Jul 2025 - 31 Jul 2025\n`, out)
	assert.Contains(t, stderr, "Statements do not cover part of the period")
}

func TestReport_Export(t *testing.T) {
	export := filepath.Join(t.TempDir(), "classified.csv")
	_, _, err := runBastally(t, "report", "--quarter", "2025-Q3", "--export", export, julCSV, augCSV)
	require.NoError(t, err)

	f, err := os.Open(export)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 10, "header plus nine classified rows")
	assert.Equal(t, "date", records[0][0])
}

func TestReport_SkippedFileIsReported(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.csv")
	out, stderr, err := runBastally(t, "report", "--quarter", "2025-Q3", julCSV, missing)
	require.NoError(t, err)

	assert.Regexp(t, `Files skipped:\s+1\n`, out)
	assert.Contains(t, out, "missing.csv: file not found")
	assert.Contains(t, stderr, "Skipping file")
}

func TestReport_RequiresPeriod(t *testing.T) {
	_, _, err := runBastally(t, "report", julCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a period is required")
}

func TestReport_ConflictingPeriods(t *testing.T) {
	_, _, err := runBastally(t, "report", "--quarter", "2025-Q3", "--fy", "2024-25", julCSV)
	assert.Error(t, err)
}

func TestReport_FromWithoutTo(t *testing.T) {
	_, _, err := runBastally(t, "report", "--from", "2025-07-01", julCSV)
	assert.Error(t, err)
}

func TestReport_BadQuarter(t *testing.T) {
	_, _, err := runBastally(t, "report", "--quarter", "Q3", julCSV)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid quarter")
}

func TestReport_ScansConfiguredDir(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runBastally(t, "init", dir, "--name", "Scan Biz")
	require.NoError(t, err)

	for _, name := range []string{"jul_2025.csv", "aug_2025.csv"} {
		data, err := os.ReadFile(filepath.Join("../../testdata/statements", name))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "statements", name), data, 0o644))
	}

	out, _, err := runBastally(t, "--config", filepath.Join(dir, "bastally.yaml"), "report", "--quarter", "2025-Q3")
	require.NoError(t, err)
	assert.Contains(t, out, "Scan Biz")
	assert.Contains(t, out, "PAYABLE AMOUNT:             $400.00")
}

func TestReport_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runBastally(t, "init", dir, "--name", "Empty Biz")
	require.NoError(t, err)

	_, _, err = runBastally(t, "--config", filepath.Join(dir, "bastally.yaml"), "report", "--quarter", "2025-Q3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no statement files")
}

func TestReport_MissingConfigFlag(t *testing.T) {
	_, _, err := runBastally(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "report", "--quarter", "2025-Q3", julCSV)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReport_JSONLogs(t *testing.T) {
	_, stderr, err := runBastally(t, "--log-format", "json", "--log-level", "info", "report", "--quarter", "2025-Q3", augCSV)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"Processing complete"`)
	assert.Contains(t, stderr, `"run_id"`)
}
