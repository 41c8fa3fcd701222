package components

import (
	"fmt"
	"strings"

	"github.com/KasraF/SnipPyLogTool/internal/model"
	"github.com/KasraF/SnipPyLogTool/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ProgressBar renders a block bar of width cells followed by the percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	filled := int(pct * float64(width))
	filled = max(0, min(filled, width))

	var barColor lipgloss.Color
	switch {
	case pct >= 0.8:
		barColor = t.AccentBright
	case pct >= 0.5:
		barColor = t.Accent
	default:
		barColor = t.Cyan
	}

	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))
	b.WriteString(emptyStyle.Render(" "))
	b.WriteString(pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100)))
	return b.String()
}

// ColorForRate maps a success rate to a color, green being best.
func ColorForRate(rate float64) lipgloss.Color {
	t := theme.Active
	switch {
	case rate >= 0.8:
		return t.Green
	case rate >= 0.5:
		return t.Yellow
	case rate >= 0.25:
		return t.Orange
	default:
		return t.Red
	}
}

// RateBar renders a labeled success-rate bar. An undefined rate draws an
// empty bar marked "n/a".
func RateBar(label string, rate model.Stat, labelW, barWidth int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	out := labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) + " "

	v, ok := rate.Value()
	if !ok {
		dim := lipgloss.NewStyle().Foreground(t.TextDim)
		return out + dim.Render(strings.Repeat("░", barWidth)+"  n/a")
	}
	v = max(0, min(v, 1))

	color := ColorForRate(v)
	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(color).Bold(true)
	return out + bar.ViewAs(v) + " " + pctStyle.Render(fmt.Sprintf("%3.0f%%", v*100))
}
