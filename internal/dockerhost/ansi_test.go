package dockerhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitANSISpansPlainLine(t *testing.T) {
	spans := SplitANSISpans("hello world")
	require.Len(t, spans, 1)
	assert.Equal(t, "hello world", spans[0].Text)
	assert.Empty(t, spans[0].SGR)
}

func TestSplitANSISpansColoredWord(t *testing.T) {
	line := "before \x1b[31mred\x1b[0m after"
	spans := SplitANSISpans(line)
	require.Len(t, spans, 3)
	assert.Equal(t, "before ", spans[0].Text)
	assert.Empty(t, spans[0].SGR)
	assert.Equal(t, "red", spans[1].Text)
	assert.Equal(t, "31", spans[1].SGR)
	assert.Equal(t, " after", spans[2].Text)
	assert.Empty(t, spans[2].SGR)
}

func TestPlainTextStripsEscapes(t *testing.T) {
	assert.Equal(t, "red", PlainText("\x1b[31mred\x1b[0m"))
}
