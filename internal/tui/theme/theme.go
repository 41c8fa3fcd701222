// Package theme holds the color palettes of the snippylog dashboard.
package theme

import (
	"github.com/KasraF/SnipPyLogTool/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Theme assigns a color to each role the dashboard draws with.
type Theme struct {
	Name string

	Background   lipgloss.Color
	Surface      lipgloss.Color // cards and bars
	SurfaceHover lipgloss.Color // active tab, selected call row
	Border       lipgloss.Color
	BorderAccent lipgloss.Color // focused card, tab underline

	TextDim     lipgloss.Color // hints, undefined stats
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	// Outcome and chart colors.
	Green   lipgloss.Color
	Orange  lipgloss.Color
	Red     lipgloss.Color
	Blue    lipgloss.Color
	Yellow  lipgloss.Color
	Magenta lipgloss.Color
	Cyan    lipgloss.Color
}

// Default is the theme used when the configured name is unknown.
const Default = "flexoki-dark"

// palettes is keyed by the names config.Themes accepts.
var palettes = map[string]Theme{
	"flexoki-dark": {
		Background: "#100F0F", Surface: "#1C1B1A", SurfaceHover: "#282726",
		Border: "#403E3C", BorderAccent: "#3AA99F",
		TextDim: "#575653", TextMuted: "#878580", TextPrimary: "#FFFCF0",
		Accent: "#3AA99F", AccentBright: "#5BC8BE",
		Green: "#879A39", Orange: "#DA702C", Red: "#D14D41", Blue: "#4385BE",
		Yellow: "#D0A215", Magenta: "#CE5D97", Cyan: "#24837B",
	},
	"catppuccin-mocha": {
		Background: "#1E1E2E", Surface: "#313244", SurfaceHover: "#45475A",
		Border: "#585B70", BorderAccent: "#89B4FA",
		TextDim: "#6C7086", TextMuted: "#A6ADC8", TextPrimary: "#CDD6F4",
		Accent: "#89B4FA", AccentBright: "#B4D0FB",
		Green: "#A6E3A1", Orange: "#FAB387", Red: "#F38BA8", Blue: "#89B4FA",
		Yellow: "#F9E2AF", Magenta: "#F5C2E7", Cyan: "#94E2D5",
	},
	"tokyo-night": {
		Background: "#1A1B26", Surface: "#24283B", SurfaceHover: "#343A52",
		Border: "#565F89", BorderAccent: "#7AA2F7",
		TextDim: "#565F89", TextMuted: "#A9B1D6", TextPrimary: "#C0CAF5",
		Accent: "#7AA2F7", AccentBright: "#A9C1FF",
		Green: "#9ECE6A", Orange: "#FF9E64", Red: "#F7768E", Blue: "#7AA2F7",
		Yellow: "#E0AF68", Magenta: "#BB9AF7", Cyan: "#7DCFFF",
	},
	// ANSI indexes, so the terminal's own scheme applies.
	"terminal": {
		Background: "0", Surface: "0", SurfaceHover: "8",
		Border: "8", BorderAccent: "6",
		TextDim: "8", TextMuted: "7", TextPrimary: "15",
		Accent: "6", AccentBright: "14",
		Green: "2", Orange: "3", Red: "1", Blue: "4",
		Yellow: "3", Magenta: "5", Cyan: "6",
	},
}

// Active is the theme every component renders with.
var Active = mustLookup(Default)

// Lookup finds a theme by name.
func Lookup(name string) (Theme, bool) {
	t, ok := palettes[name]
	if !ok {
		return Theme{}, false
	}
	t.Name = name
	return t, true
}

// All returns the built-in themes in the order config.Themes lists them.
func All() []Theme {
	out := make([]Theme, 0, len(config.Themes))
	for _, name := range config.Themes {
		if t, ok := Lookup(name); ok {
			out = append(out, t)
		}
	}
	return out
}

// SetActive switches the active theme. Unknown names select Default and
// report false.
func SetActive(name string) bool {
	t, ok := Lookup(name)
	if !ok {
		Active = mustLookup(Default)
		return false
	}
	Active = t
	return true
}

func mustLookup(name string) Theme {
	t, ok := Lookup(name)
	if !ok {
		panic("theme: missing palette " + name)
	}
	return t
}
