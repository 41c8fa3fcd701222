package tui

import (
	"fmt"
	"strings"

	"github.com/KasraF/SnipPyLogTool/internal/cli"
	"github.com/KasraF/SnipPyLogTool/internal/event"
	"github.com/KasraF/SnipPyLogTool/internal/pipeline"
	"github.com/KasraF/SnipPyLogTool/internal/tui/components"
	"github.com/KasraF/SnipPyLogTool/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const maxUnrecognizedShown = 10

func (a App) renderEventsTab(cw int) string {
	t := theme.Active
	fr := a.currentFile()
	r := a.currentReport()
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)

	if r == nil {
		return components.ContentCard("Events", muted.Render("No task selected."), cw)
	}
	log := fr.File.Logs[r.Task]
	counts := pipeline.KindCounts(log)

	var bars []components.Bar
	for _, k := range event.Kinds {
		n, ok := counts[k]
		if !ok {
			continue
		}
		bars = append(bars, components.Bar{Label: string(k), Value: float64(n), Color: kindColor(k)})
	}

	halves := components.LayoutRow(cw, 2)
	title := fmt.Sprintf("%s · %s entries by kind", r.Task, cli.FormatInt(len(log.Entries)))
	left := components.ContentCard(title,
		components.HorizontalBars(bars, components.CardInnerWidth(halves[0])), halves[0])

	unknown := pipeline.UnrecognizedIdentifiers(log)
	var body strings.Builder
	if len(unknown) == 0 {
		body.WriteString(muted.Render("Every identifier was recognized."))
	}
	idW := components.CardInnerWidth(halves[1]) - 8
	for i, u := range unknown {
		if i == maxUnrecognizedShown {
			body.WriteString(muted.Render(fmt.Sprintf("… and %d more", len(unknown)-i)))
			break
		}
		fmt.Fprintf(&body, "%6s  %s\n", cli.FormatInt(u.Count), cli.Truncate(u.Identifier, max(idW, 10)))
	}
	right := components.ContentCard("Unrecognized identifiers", strings.TrimRight(body.String(), "\n"), halves[1])

	return components.CardRow([]string{left, right})
}

func kindColor(k event.Kind) lipgloss.Color {
	t := theme.Active
	switch {
	case k == event.KindUnrecognized:
		return t.Red
	case strings.HasPrefix(string(k), "synth_"):
		return t.Blue
	case strings.HasPrefix(string(k), "focus_"):
		return t.Magenta
	default:
		return t.Yellow
	}
}
