package clicker

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

var amountSuffixes = []string{"", "K", "M", "B", "T", "Qa", "Qi"}

// formatAmount compacts large amounts: 999, 1.5K, 12.25M.
func formatAmount(v float64) string {
	if v < 1000 {
		if v == math.Trunc(v) {
			return humanize.Comma(int64(v))
		}
		return humanize.FtoaWithDigits(v, 1)
	}
	i := 0
	for v >= 1000 && i < len(amountSuffixes)-1 {
		v /= 1000
		i++
	}
	return humanize.FtoaWithDigits(v, 2) + amountSuffixes[i]
}

// formatPlayed renders seconds played as a duration.
func formatPlayed(seconds int64) string {
	return (time.Duration(seconds) * time.Second).String()
}

// formatLastSave renders a unix millisecond timestamp relative to now.
func formatLastSave(ms int64) string {
	if ms == 0 {
		return "never"
	}
	return humanize.Time(time.UnixMilli(ms))
}

// fit truncates s to at most w runes.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}
