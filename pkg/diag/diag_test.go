package diag

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorKeepsOrder(t *testing.T) {
	var c Collector
	require.NoError(t, c.Err())

	c.Report(Diagnostic{Line: 3, Code: CodeMalformedLine, Message: "unrecognized line", Text: "garbage"})
	c.Report(Diagnostic{Code: CodeVariantConflict, Message: "section host is named"})

	require.Equal(t, 2, c.Len())
	assert.Equal(t, []Code{CodeMalformedLine, CodeVariantConflict}, c.Codes())
	assert.Equal(t, "line 3: malformed-line: unrecognized line", c.All()[0].String())
	assert.Equal(t, "variant-conflict: section host is named", c.All()[1].String())

	err := c.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3: malformed-line")
	assert.Contains(t, err.Error(), "variant-conflict")
}

func TestTeeSkipsNilSinks(t *testing.T) {
	var a, b Collector
	sink := Tee(&a, nil, &b)
	sink.Report(Diagnostic{Code: CodeSortKey})

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}

func TestOrDiscard(t *testing.T) {
	assert.Equal(t, Discard, OrDiscard(nil))

	var c Collector
	assert.Same(t, &c, OrDiscard(&c))
}

func TestLogSinkWritesWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Prefix: "uciconfig"})
	NewLogSink(logger).Report(Diagnostic{Line: 7, Code: CodeEntryOutsideBlock, Message: "entry outside any block", Text: "\toption ip '1'"})

	out := buf.String()
	assert.Contains(t, out, "entry outside any block")
	assert.Contains(t, out, "entry-outside-block")
	assert.Contains(t, out, "line=7")
}
