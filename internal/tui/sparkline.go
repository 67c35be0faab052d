package tui

// sparkBlocks are the eight sub-character heights used to render a history
// slice as a single line of block glyphs, low to high.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a bounded history of percentages (0-100, NaN treated
// as the previous bucket's height) as one line of block characters, one
// per sample, newest on the right.
func Sparkline(history []float64) string {
	out := make([]rune, len(history))
	last := rune(sparkBlocks[0])
	for i, v := range history {
		if v != v { // NaN
			out[i] = last
			continue
		}
		idx := int(v / 100.0 * float64(len(sparkBlocks)-1))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		out[i] = sparkBlocks[idx]
		last = out[i]
	}
	return string(out)
}
