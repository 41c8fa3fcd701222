// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KasraF/SnipPyLogTool/internal/model"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatInt is FormatNumber for int.
func FormatInt(n int) string {
	return FormatNumber(int64(n))
}

// FormatStat renders a statistic with prec decimals, "n/a" when undefined.
func FormatStat(s model.Stat, prec int) string {
	return s.Format(prec)
}

// FormatSeconds renders a duration statistic in seconds, e.g. "1.500s".
func FormatSeconds(s model.Stat, prec int) string {
	if !s.Valid() {
		return s.Format(prec)
	}
	return s.Format(prec) + "s"
}

// FormatPercent renders a 0-1 statistic as a percentage, e.g. "66.7%".
func FormatPercent(s model.Stat) string {
	v, ok := s.Value()
	if !ok {
		return s.Format(1)
	}
	return fmt.Sprintf("%.1f%%", v*100)
}

// FormatDuration formats a duration for call tables.
// e.g., 1500ms -> "1.50s", 125s -> "2m 5s", 3725s -> "1h 2m"
func FormatDuration(d time.Duration) string {
	neg := d < 0
	if neg {
		d = -d
	}

	var s string
	switch {
	case d < time.Minute:
		s = fmt.Sprintf("%.2fs", d.Seconds())
	case d < time.Hour:
		s = fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		s = fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}

	if neg {
		return "-" + s
	}
	return s
}

// FormatClock renders a wall-clock time as "15:04:05.000".
func FormatClock(t time.Time) string {
	return t.Format("15:04:05.000")
}

// Truncate shortens s to at most n runes, marking the cut with "…".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
