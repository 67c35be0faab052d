package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtop/dtop/internal/dockerhost"
)

// sgrColorMap covers the 8 standard foreground codes containerized apps
// most commonly emit (30-37) and their bold-prefixed "1;3x" forms; anything
// else renders in the default style rather than being dropped.
var sgrColorMap = map[string]string{
	"30": "0", "31": "1", "32": "2", "33": "3",
	"34": "4", "35": "5", "36": "6", "37": "7",
	"1;30": "8", "1;31": "9", "1;32": "10", "1;33": "11",
	"1;34": "12", "1;35": "13", "1;36": "14", "1;37": "15",
}

// RenderLogLine reproduces a container's own ANSI coloring for one log
// line using lipgloss styles instead of forwarding raw escape bytes,
// keeping cursor-movement or other non-SGR sequences out of the rendered
// frame entirely.
func RenderLogLine(line string) string {
	spans := dockerhost.SplitANSISpans(line)
	var b strings.Builder
	for _, span := range spans {
		if span.SGR == "" {
			b.WriteString(span.Text)
			continue
		}
		if code, ok := sgrColorMap[span.SGR]; ok {
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(code)).Render(span.Text))
			continue
		}
		b.WriteString(span.Text)
	}
	return b.String()
}
