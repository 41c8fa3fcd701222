package tui

import (
	"fmt"
	"strings"

	"github.com/KasraF/SnipPyLogTool/internal/cli"
	"github.com/KasraF/SnipPyLogTool/internal/model"
	"github.com/KasraF/SnipPyLogTool/internal/pipeline"
	"github.com/KasraF/SnipPyLogTool/internal/tui/components"
	"github.com/KasraF/SnipPyLogTool/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	fr := a.currentFile()
	var b strings.Builder

	// Row 1: file-level figures
	calls, successes, faults := 0, 0, 0
	for _, r := range fr.Reports {
		if !r.OK() {
			faults++
			continue
		}
		calls += r.Summary.SynthCalls
		successes += r.Summary.Successes
	}
	rate := model.Ratio(float64(successes), float64(calls))

	faultColor := t.Green
	if faults > 0 {
		faultColor = t.Red
	}
	b.WriteString(components.MetricCardRow([]components.Metric{
		{Label: "Lines", Value: cli.FormatInt(fr.Lines), Note: fmt.Sprintf("%d skip, %d drop", len(fr.Skipped), fr.File.Dropped)},
		{Label: "Tasks", Value: cli.FormatInt(len(fr.Reports)), Note: fmt.Sprintf("%d entries", fr.File.EntryCount())},
		{Label: "Synth Calls", Value: cli.FormatInt(calls), Note: fmt.Sprintf("%d succeeded", successes)},
		{Label: "Success Rate", Value: cli.FormatPercent(rate), Color: rateColor(rate)},
		{Label: "Faults", Value: cli.FormatInt(faults), Color: faultColor, Note: fmt.Sprintf("%d unrecognized", fr.Unrecognized)},
	}, cw))
	b.WriteString("\n")

	if len(fr.Reports) == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted)
		b.WriteString(components.ContentCard("Tasks", muted.Render("No entries matched a known task."), cw))
		return b.String()
	}

	// Row 2+: one card per task, two per row
	for i := 0; i < len(fr.Reports); i += 2 {
		widths := components.LayoutRow(cw, min(2, len(fr.Reports)-i))
		row := []string{a.renderTaskCard(fr.Reports[i], widths[0])}
		if i+1 < len(fr.Reports) {
			row = append(row, a.renderTaskCard(fr.Reports[i+1], widths[1]))
		}
		b.WriteString(components.CardRow(row))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) renderTaskCard(r pipeline.TaskReport, outerW int) string {
	t := theme.Active
	title := r.Task.String()
	if !r.OK() {
		errStyle := lipgloss.NewStyle().Foreground(t.Red)
		return components.AlertCard(title+" · fault", errStyle.Render(r.Err.Error()), outerW)
	}

	s := r.Summary
	innerW := components.CardInnerWidth(outerW)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	rows := [][2]string{
		{"Calls", fmt.Sprintf("%d (%d ok, %d failed, %d open)", s.SynthCalls, s.Successes, s.Failures, s.Outstanding)},
		{"Time min/avg/max", fmt.Sprintf("%s / %s / %s",
			cli.FormatSeconds(s.MinDuration, a.prec),
			cli.FormatSeconds(s.AvgDuration, a.prec),
			cli.FormatSeconds(s.MaxDuration, a.prec))},
		{"Avg examples", cli.FormatStat(s.AvgExamples, a.prec)},
		{"Focus def/custom", fmt.Sprintf("%d / %d (ratio %s)", s.DefaultFocus, s.CustomFocus, cli.FormatStat(s.FocusRatio, a.prec))},
		{"Example edits", fmt.Sprintf("%d (%d resets)", s.ExampleEdits, s.ExampleResets)},
	}

	var body strings.Builder
	for _, kv := range rows {
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-17s", kv[0])))
		body.WriteString(valueStyle.Render(cli.Truncate(kv[1], max(innerW-17, 10))))
		body.WriteString("\n")
	}
	body.WriteString(components.RateBar("Success", s.SuccessRate, 16, max(innerW-22, 8)))

	if len(s.Calls) > 0 {
		vals := make([]float64, len(s.Calls))
		for i, c := range s.Calls {
			vals[i] = c.Seconds()
		}
		if limit := max(innerW-17, 1); len(vals) > limit {
			vals = vals[len(vals)-limit:] // most recent calls
		}
		body.WriteString("\n")
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-17s", "Durations")))
		body.WriteString(components.Sparkline(vals, t.Blue))
	}

	return components.ContentCard(title, body.String(), outerW)
}

func rateColor(rate model.Stat) lipgloss.Color {
	v, ok := rate.Value()
	if !ok {
		return theme.Active.TextDim
	}
	return components.ColorForRate(v)
}
