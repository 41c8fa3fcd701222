package tui

import (
	"fmt"
	"strings"

	"github.com/KasraF/SnipPyLogTool/internal/cli"
	"github.com/KasraF/SnipPyLogTool/internal/model"
	"github.com/KasraF/SnipPyLogTool/internal/tui/components"
	"github.com/KasraF/SnipPyLogTool/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCompareTab(cw int) string {
	t := theme.Active
	fr := a.currentFile()
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	if !a.compare {
		return components.ContentCard("Examples per call",
			muted.Render("Comparison is turned off. Press S to enable it."), cw)
	}
	cmp := fr.Comparison
	if cmp.Empty() {
		return components.ContentCard("Examples per call",
			muted.Render("No fault-free task in this file to compare."), cw)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	indexStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	absentStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	tbl := cli.ComparisonTable(cmp)
	colW := 6
	for _, h := range tbl.Headers[1:] {
		colW = max(colW, lipgloss.Width(h))
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-6s", tbl.Headers[0])))
	for _, h := range tbl.Headers[1:] {
		body.WriteString(headerStyle.Render(fmt.Sprintf("  %*s", colW, h)))
	}
	body.WriteString("\n")
	body.WriteString(absentStyle.Render(strings.Repeat("─", 6+(colW+2)*(len(tbl.Headers)-1))))
	for _, row := range tbl.Rows {
		body.WriteString("\n")
		body.WriteString(indexStyle.Render(fmt.Sprintf("%-6s", row[0])))
		for _, cell := range row[1:] {
			if cell == "" {
				body.WriteString(absentStyle.Render(fmt.Sprintf("  %*s", colW, "·")))
				continue
			}
			body.WriteString(valueStyle.Render(fmt.Sprintf("  %*s", colW, cell)))
		}
	}

	halves := components.LayoutRow(cw, 2)
	left := components.ContentCard("Examples per call", body.String(), halves[0])
	right := components.ContentCard("Example count trend", a.renderExampleTrends(cmp.Tasks, halves[1]), halves[1])
	return components.CardRow([]string{left, right})
}

// renderExampleTrends draws one sparkline of example counts per compared task.
func (a App) renderExampleTrends(tasks []model.Task, outerW int) string {
	t := theme.Active
	fr := a.currentFile()
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	colors := []lipgloss.Color{t.Blue, t.Magenta}

	labelW := 0
	for _, task := range tasks {
		labelW = max(labelW, lipgloss.Width(task.String()))
	}
	room := max(components.CardInnerWidth(outerW)-labelW-1, 1)

	var lines []string
	for i, task := range tasks {
		var counts []uint32
		for _, r := range fr.Reports {
			if r.Task == task {
				counts = r.Summary.ExampleCounts
			}
		}
		vals := make([]float64, len(counts))
		for j, n := range counts {
			vals[j] = float64(n)
		}
		if len(vals) > room {
			vals = vals[:room]
		}
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-*s ", labelW, task.String()))+
			components.Sparkline(vals, colors[i%len(colors)]))
	}
	return strings.Join(lines, "\n")
}
