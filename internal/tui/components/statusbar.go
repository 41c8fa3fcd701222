package components

import (
	"strings"

	"github.com/KasraF/SnipPyLogTool/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left, then
// position (e.g. "file 2/5"), and info right-aligned.
func RenderStatusBar(width int, position, info string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	left := " [?]help  [q]uit"
	if position != "" {
		left += "  │ " + position
	}
	right := ""
	if info != "" {
		right = info + " "
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return style.Render(left + strings.Repeat(" ", gap) + right)
}
