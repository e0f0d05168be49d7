package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// formatCount renders a counter with thousands separators.
func formatCount(n int64) string {
	return humanize.Comma(n)
}

// formatViews renders a view count compactly (1.2M, 34k).
func formatViews(n int64) string {
	switch {
	case n >= 1_000_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000_000)) + "M"
	case n >= 1_000:
		return trimZero(fmt.Sprintf("%.1f", float64(n)/1_000)) + "k"
	default:
		return fmt.Sprintf("%d", n)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}

// formatRate renders the virality rate as a percentage.
func formatRate(rate float64) string {
	return humanize.FtoaWithDigits(rate, 1) + "%"
}

// formatAge renders how long ago t was, or "never" for the zero time.
func formatAge(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}

// formatHours renders hours since upload the way the trend cards do.
func formatHours(h float64) string {
	switch {
	case h <= 0:
		return "just now"
	case h < 1:
		return fmt.Sprintf("%dm ago", int(h*60))
	case h < 48:
		return fmt.Sprintf("%.0fh ago", h)
	default:
		return fmt.Sprintf("%.0fd ago", h/24)
	}
}

// fitHeight pads or clips body to exactly height lines.
func fitHeight(body string, height int) string {
	lines := strings.Split(body, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
