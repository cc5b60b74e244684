package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	p := r.Get("csv")
	require.NotNil(t, p)
	assert.Equal(t, "csv", p.Format())
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := NewRegistry()
	r.Register(&TextParser{})
	assert.NotNil(t, r.Get("Text"))
	assert.NotNil(t, r.Get("TEXT"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register(&CSVParser{})
	assert.Panics(t, func() { r.Register(&CSVParser{}) })
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"blocks", "csv", "text"}, r.Formats())

	blocks, ok := r.Get("blocks").(*BlocksParser)
	require.True(t, ok)
	assert.Equal(t, DefaultLookAhead, blocks.LookAhead)
}

func TestDefaultRegistry_LookAhead(t *testing.T) {
	r := DefaultRegistry(WithLookAhead(7))
	assert.Equal(t, 7, r.Get("blocks").(*BlocksParser).LookAhead)

	r = DefaultRegistry(WithLookAhead(0))
	assert.Equal(t, DefaultLookAhead, r.Get("blocks").(*BlocksParser).LookAhead)
}

func TestDefaultRegistry_DateLayouts(t *testing.T) {
	us := []string{"01/02/2006"}
	r := DefaultRegistry(WithDateLayouts(us))
	assert.Equal(t, us, r.Get("csv").(*CSVParser).DateLayouts)
	assert.Equal(t, us, r.Get("text").(*TextParser).DateLayouts)
	assert.Equal(t, us, r.Get("blocks").(*BlocksParser).DateLayouts)

	batch, err := r.Get("csv").Parse(strings.NewReader("Date,Description,Amount\n07/01/2025,STRIPE,550.00\n"), "us.csv")
	require.NoError(t, err)
	require.Len(t, batch.Transactions, 1)
	assert.Equal(t, time.July, batch.Transactions[0].Date.Month())

	r = DefaultRegistry(WithDateLayouts(nil))
	assert.Nil(t, r.Get("csv").(*CSVParser).DateLayouts)
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, FormatCSV, FormatFor("statements/jul.csv"))
	assert.Equal(t, FormatCSV, FormatFor("JUL.CSV"))
	assert.Equal(t, FormatText, FormatFor("jul_sep_data.txt"))
	assert.Equal(t, FormatText, FormatFor("pasted"))
}

func TestScan_DefaultPatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("data"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.pdf"), []byte("data"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "old.csv"), 0o755))

	files, err := Scan(dir, nil)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.csv", files[0].Name)
	assert.Equal(t, "b.txt", files[1].Name)
	assert.Equal(t, int64(4), files[0].Size)
}

func TestScan_OverlappingPatterns(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.csv"), []byte("data"), 0o644))

	files, err := Scan(dir, []string{"*.csv", "a.*"})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestScan_MissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(t.TempDir(), "nope"), nil)
	require.NoError(t, err)
	assert.Nil(t, files)
}

func TestScan_BadPattern(t *testing.T) {
	_, err := Scan(t.TempDir(), []string{"[.csv"})
	assert.Error(t, err)
}
