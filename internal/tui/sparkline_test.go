package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparklineEmpty(t *testing.T) {
	assert.Equal(t, "", Sparkline(nil))
}

func TestSparklineFullScale(t *testing.T) {
	s := Sparkline([]float64{0, 50, 100})
	assert.Equal(t, 3, len([]rune(s)))
	runes := []rune(s)
	assert.Equal(t, '▁', runes[0])
	assert.Equal(t, '█', runes[2])
}

func TestSparklineNaNRepeatsPreviousHeight(t *testing.T) {
	nan := func() float64 { var z float64; return z / z }()
	s := []rune(Sparkline([]float64{100, nan}))
	assert.Equal(t, s[0], s[1])
}
