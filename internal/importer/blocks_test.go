package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bastally/internal/parse"
)

func TestBlocksParser_Parse(t *testing.T) {
	batch := parseFixture(t, &BlocksParser{LookAhead: DefaultLookAhead}, "../../testdata/blocks_nov.txt")
	require.Len(t, batch.Transactions, 4)

	fb := batch.Transactions[0]
	assert.Equal(t, 17, fb.Date.Day())
	assert.Equal(t, "FACEBK *ADS 1234 Advertising", fb.Description)
	assert.Equal(t, "-37.16", fb.Amount.StringFixed(2))
	assert.Equal(t, "1204.88", fb.Balance.Decimal.StringFixed(2))
	assert.Equal(t, 3, fb.Line)

	zapier := batch.Transactions[1]
	assert.Equal(t, 17, zapier.Date.Day())
	assert.Equal(t, "ZAPIER.COM Software", zapier.Description)

	stripe := batch.Transactions[2]
	assert.Equal(t, 18, stripe.Date.Day())
	assert.Equal(t, "400.00", stripe.Amount.StringFixed(2))

	fee := batch.Transactions[3]
	assert.Equal(t, 19, fee.Date.Day())
	assert.Equal(t, "INTL TXN FEE", fee.Description)
	assert.Equal(t, "-0.90", fee.Amount.StringFixed(2))
	assert.False(t, fee.Balance.Valid)

	require.Len(t, batch.Skipped, 1)
	skipped := batch.Skipped[0]
	assert.Equal(t, parse.KindInvalidAmount, skipped.Kind)
	assert.Equal(t, "MYSTERY MERCHANT", skipped.Value)
	assert.Equal(t, 19, skipped.Line)
}

func TestBlocksParser_LongerLookAhead(t *testing.T) {
	batch := parseFixture(t, &BlocksParser{LookAhead: 5}, "../../testdata/blocks_nov.txt")
	require.Len(t, batch.Transactions, 5)
	assert.Empty(t, batch.Skipped)
	assert.Equal(t, "MYSTERY MERCHANT Shopping Extra line More text", batch.Transactions[3].Description)
	assert.Equal(t, "-12.00", batch.Transactions[3].Amount.StringFixed(2))
}

func TestBlocksParser_DescriptionWithoutAmount(t *testing.T) {
	data := "1 Dec 2025\nORPHAN LINE\n2 Dec 2025\nWIX.COM\n-$30.00\n"
	p := &BlocksParser{}
	batch, err := p.Parse(strings.NewReader(data), "orphan.txt")
	require.NoError(t, err)
	require.Len(t, batch.Transactions, 1)
	assert.Equal(t, 2, batch.Transactions[0].Date.Day())
	require.Len(t, batch.Skipped, 1)
	assert.Equal(t, "ORPHAN LINE", batch.Skipped[0].Value)
	assert.Equal(t, 2, batch.Skipped[0].Line)
}

func TestBlocksParser_IgnoresPreamble(t *testing.T) {
	data := "Account summary\n$5,000.00\n"
	p := &BlocksParser{}
	batch, err := p.Parse(strings.NewReader(data), "preamble.txt")
	require.NoError(t, err)
	assert.Empty(t, batch.Transactions)
	assert.Empty(t, batch.Skipped)
}
