package dockerhost

import (
	"fmt"
	"time"

	"github.com/docker/go-units"
)

// FormatBytes renders a byte count with no decimal places and a bare unit
// letter ("512 B", "1 K", "1 M", "1 G"), matching the compact column width
// the container list needs for a memory-usage figure.
func FormatBytes(n uint64) string {
	return units.CustomSize("%.0f %s", float64(n), 1024.0, []string{"B", "K", "M", "G", "T", "P"})
}

// FormatBytesPerSec renders a byte rate with precision that grows coarser
// as the magnitude grows: 2 decimals for GB/MB, 1 for KB, none for bytes
// ("1.00 MB", "1.0 KB", "512 B").
func FormatBytesPerSec(bytesPerSec float64) string {
	const (
		kb = 1024.0
		mb = kb * 1024.0
		gb = mb * 1024.0
	)
	switch {
	case bytesPerSec >= gb:
		return fmt.Sprintf("%.2f GB", bytesPerSec/gb)
	case bytesPerSec >= mb:
		return fmt.Sprintf("%.2f MB", bytesPerSec/mb)
	case bytesPerSec >= kb:
		return fmt.Sprintf("%.1f KB", bytesPerSec/kb)
	default:
		return fmt.Sprintf("%.0f B", bytesPerSec)
	}
}

// FormatUptime renders a duration the way `docker ps` does, via the
// teacher's already-adopted go-units helper.
func FormatUptime(seconds int64) string {
	return units.HumanDuration(time.Duration(seconds) * time.Second)
}
