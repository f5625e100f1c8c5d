// Package display holds formatting helpers for operator-facing output.
package display

import (
	"fmt"
	"math"
	"time"
)

// FormatElapsed returns a run clock as "MM:SS.ss" (e.g. "02:05.40").
// Minutes keep growing past 59 rather than rolling into hours.
func FormatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := d.Seconds()
	minutes := math.Floor(total / 60)
	seconds := total - minutes*60
	return fmt.Sprintf("%02d:%05.2f", int(minutes), seconds)
}

// FormatSeconds returns d in seconds with two decimals (e.g. "12.34").
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2f", d.Seconds())
}

// FormatScale renders a percent scale as the fraction written into the
// export config (74 -> "0.74", 100 -> "1.00").
func FormatScale(pct int) string {
	return fmt.Sprintf("%.2f", float64(pct)/100)
}

// FormatDimensions returns "WxH", or "?x?" when either side is unknown.
func FormatDimensions(width, height int) string {
	if width <= 0 || height <= 0 {
		return "?x?"
	}
	return fmt.Sprintf("%dx%d", width, height)
}
