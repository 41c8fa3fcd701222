package tui

import (
	"fmt"
	"strings"

	"github.com/KasraF/SnipPyLogTool/internal/cli"
	"github.com/KasraF/SnipPyLogTool/internal/tui/components"
	"github.com/KasraF/SnipPyLogTool/internal/tui/theme"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// Lines the calls tab spends outside the table: selector, card borders,
// title and the detail pane.
const callsChrome = 14

// callHeaders must stay in step with cli.CallsTable.
var callHeaders = []string{"#", "Index", "Line", "Examples", "Started", "Duration", "Outcome", "Result"}

func newCallsTable() table.Model {
	cols := make([]table.Column, len(callHeaders))
	for i, h := range callHeaders {
		cols[i] = table.Column{Title: h, Width: len(h)}
	}
	tbl := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	tbl.SetStyles(callsTableStyles())
	return tbl
}

func callsTableStyles() table.Styles {
	t := theme.Active
	s := table.DefaultStyles()
	s.Header = s.Header.
		Foreground(t.Accent).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		BorderBottom(true)
	s.Cell = s.Cell.Foreground(t.TextPrimary)
	s.Selected = s.Selected.
		Foreground(t.AccentBright).
		Background(t.SurfaceHover).
		Bold(true)
	return s
}

// refreshCalls loads the selected task's calls into the table.
func (a *App) refreshCalls() {
	var rows []table.Row
	if r := a.currentReport(); r != nil && r.OK() {
		for _, rec := range cli.CallsTable(r.Summary, a.prec).Rows {
			rows = append(rows, table.Row(rec))
		}
	}
	a.calls.SetRows(rows)
	a.calls.SetCursor(0)
	a.resizeCalls()
}

// resizeCalls fits the columns to their content, giving the Result column
// whatever width is left.
func (a *App) resizeCalls() {
	a.calls.SetStyles(callsTableStyles())
	if a.width == 0 {
		return
	}

	widths := make([]int, len(callHeaders))
	for i, h := range callHeaders {
		widths[i] = len(h)
	}
	for _, row := range a.calls.Rows() {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	inner := components.CardInnerWidth(a.contentWidth())
	used := 0
	for _, w := range widths[:len(widths)-1] {
		used += w + 2 // cell padding
	}
	widths[len(widths)-1] = max(inner-used-2, 10)

	cols := make([]table.Column, len(callHeaders))
	for i, h := range callHeaders {
		cols[i] = table.Column{Title: h, Width: widths[i]}
	}
	a.calls.SetColumns(cols)
	a.calls.SetHeight(max(a.height-callsChrome, 3))
}

func (a App) renderCallsTab(cw int) string {
	t := theme.Active
	r := a.currentReport()
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	if r == nil {
		return components.ContentCard("Calls", muted.Render("No task selected."), cw)
	}
	title := fmt.Sprintf("%s · %d calls  (t/T to switch task)", r.Task, len(r.Summary.Calls))
	if !r.OK() {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		return components.AlertCard(r.Task.String()+" · fault", errStyle.Render(r.Err.Error()), cw)
	}
	if len(r.Summary.Calls) == 0 {
		return components.ContentCard(title, muted.Render("No completed synthesis calls."), cw)
	}

	var b strings.Builder
	b.WriteString(components.ContentCard(title, a.calls.View(), cw))
	b.WriteString("\n")
	b.WriteString(a.renderCallDetail(cw))
	return b.String()
}

func (a App) renderCallDetail(cw int) string {
	t := theme.Active
	r := a.currentReport()
	idx := a.calls.Cursor()
	if idx < 0 || idx >= len(r.Summary.Calls) {
		return ""
	}
	c := r.Summary.Calls[idx]

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	outcomeStyle := lipgloss.NewStyle().Foreground(t.Green).Bold(true)
	if !c.Succeeded() {
		outcomeStyle = outcomeStyle.Foreground(t.Red)
	}

	innerW := components.CardInnerWidth(cw)
	result := c.Result
	if result == "" {
		result = "(empty)"
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Started  "))
	b.WriteString(valueStyle.Render(c.Started.Format("2006-01-02 15:04:05.000")))
	b.WriteString(labelStyle.Render("   Took "))
	b.WriteString(valueStyle.Render(cli.FormatDuration(c.Duration)))
	b.WriteString(labelStyle.Render("   Outcome "))
	b.WriteString(outcomeStyle.Render(c.Outcome()))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Result   "))
	b.WriteString(valueStyle.Render(cli.Truncate(strings.ReplaceAll(result, "\n", "⏎"), max(innerW-9, 10))))

	return components.ContentCard(fmt.Sprintf("Call %d (index %d, line %d)", idx+1, c.Index, c.LineNumber), b.String(), cw)
}
