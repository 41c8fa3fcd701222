package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/KasraF/SnipPyLogTool/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as block glyphs scaled to the largest value.
// Negative values draw as the lowest block.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}

	peak := 0.0
	for _, v := range values {
		peak = max(peak, v)
	}
	if peak == 0 {
		peak = 1
	}

	var buf strings.Builder
	buf.Grow(len(values) * 3)
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		buf.WriteRune(sparkBlocks[idx])
	}
	return lipgloss.NewStyle().Foreground(color).Render(buf.String())
}

// Bar is one labeled value in a HorizontalBars chart.
type Bar struct {
	Label string
	Value float64
	Color lipgloss.Color // empty means the theme accent
}

// HorizontalBars renders one bar per line. Bars are scaled so the largest
// value fills whatever width is left after the label and value columns.
func HorizontalBars(bars []Bar, width int) string {
	if len(bars) == 0 {
		return ""
	}
	t := theme.Active

	labelW, valueW := 0, 0
	peak := 0.0
	values := make([]string, len(bars))
	for i, b := range bars {
		labelW = max(labelW, lipgloss.Width(b.Label))
		values[i] = formatBarValue(b.Value)
		valueW = max(valueW, len(values[i]))
		peak = max(peak, b.Value)
	}
	if peak == 0 {
		peak = 1
	}
	barW := max(width-labelW-valueW-2, 4)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	trackStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	lines := make([]string, len(bars))
	for i, b := range bars {
		color := b.Color
		if color == "" {
			color = t.Accent
		}
		n := int(math.Round(max(b.Value, 0) / peak * float64(barW)))
		n = min(n, barW)
		lines[i] = labelStyle.Render(fmt.Sprintf("%-*s", labelW, b.Label)) + " " +
			lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", n)) +
			trackStyle.Render(strings.Repeat("·", barW-n)) + " " +
			valueStyle.Render(fmt.Sprintf("%*s", valueW, values[i]))
	}
	return strings.Join(lines, "\n")
}

func formatBarValue(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}
