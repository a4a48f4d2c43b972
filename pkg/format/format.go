// Package format renders byte sizes and elapsed times for display.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// Bytes formats n with two decimals in the largest unit that keeps it below
// 1024, stopping at TB.
func Bytes(n uint64) string {
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(byteUnits)-1 {
		size /= 1024
		unit++
	}
	return fmt.Sprintf("%.2f %s", size, byteUnits[unit])
}

// Millis reports ms as its single largest nonzero unit: "2d", "5h", "3m" or "42s".
func Millis(ms uint64) string {
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd", days)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm", minutes)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// Duration is Millis for a time.Duration. Negative durations render as "0s".
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return Millis(uint64(d.Milliseconds()))
}

// WithCommas formats an integer with comma separators.
func WithCommas(n int) string {
	digits := strconv.Itoa(n)
	sign := ""
	if n < 0 {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, char := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(char)
	}
	return b.String()
}
