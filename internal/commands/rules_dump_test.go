package commands

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/bastally/internal/rules"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestDumpRules(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, dumpRules(&buf, rules.Default()))

	var got rules.RuleSet
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, rules.DefaultVersion, got.Version)
}

func TestDumpRules_WriteError(t *testing.T) {
	err := dumpRules(failingWriter{}, rules.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
