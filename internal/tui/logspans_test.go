package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderLogLinePlainPassesThrough(t *testing.T) {
	assert.Equal(t, "hello", RenderLogLine("hello"))
}

func TestRenderLogLineUnknownSGRFallsBackToPlainText(t *testing.T) {
	out := RenderLogLine("\x1b[9mstruck\x1b[0m")
	assert.Contains(t, out, "struck")
}
