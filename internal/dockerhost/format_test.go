package dockerhost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytesNoDecimals(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1 K", FormatBytes(1024))
	assert.Equal(t, "1 M", FormatBytes(1024*1024))
	assert.Equal(t, "1 G", FormatBytes(1024*1024*1024))
}

func TestFormatBytesPerSecPrecisionTiers(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytesPerSec(512))
	assert.Equal(t, "1.0 KB", FormatBytesPerSec(1024))
	assert.Equal(t, "1.00 MB", FormatBytesPerSec(1024*1024))
	assert.Equal(t, "1.00 GB", FormatBytesPerSec(1024*1024*1024))
}
