package dockerhost

import "github.com/charmbracelet/x/ansi"

// StyledSpan is one run of log text sharing a single SGR style, extracted
// from a raw log line so the renderer can reproduce container-emitted
// colors (many apps color their own log output) without re-interpreting
// escape codes at draw time on every frame.
type StyledSpan struct {
	Text string
	SGR  string // raw "38;5;9"-style parameter string, empty for plain text
}

// PlainText strips every ANSI escape sequence from a log line, for search
// matching and for the no-color rendering path.
func PlainText(line string) string {
	return ansi.Strip(line)
}

// SplitANSISpans walks a log line's ANSI SGR escape sequences and returns
// the plain-text runs paired with the style code active when each run was
// emitted, stripping the escape bytes themselves out of the text.
func SplitANSISpans(line string) []StyledSpan {
	return parseSGRSpans(line)
}

// parseSGRSpans is a small state machine over CSI "m" (SGR) sequences: the
// only escape kind log lines realistically carry. Other CSI sequences
// (cursor movement and the like) are dropped; an ESC not followed by "["
// stays in the text as-is.
func parseSGRSpans(line string) []StyledSpan {
	var spans []StyledSpan
	var textBuf []byte
	currentSGR := ""

	flush := func() {
		if len(textBuf) > 0 {
			spans = append(spans, StyledSpan{Text: string(textBuf), SGR: currentSGR})
			textBuf = textBuf[:0]
		}
	}

	i := 0
	for i < len(line) {
		if line[i] == 0x1b && i+1 < len(line) && line[i+1] == '[' {
			end := i + 2
			for end < len(line) && !isSGRTerminator(line[end]) {
				end++
			}
			if end < len(line) && line[end] == 'm' {
				flush()
				params := line[i+2 : end]
				if params == "" || params == "0" {
					currentSGR = ""
				} else {
					currentSGR = params
				}
			}
			i = end + 1
			continue
		}
		textBuf = append(textBuf, line[i])
		i++
	}
	flush()
	return spans
}

func isSGRTerminator(b byte) bool {
	return b >= '@' && b <= '~'
}
