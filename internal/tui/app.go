// Package tui provides the interactive Bubble Tea dashboard for snippylog.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/KasraF/SnipPyLogTool/internal/cli"
	"github.com/KasraF/SnipPyLogTool/internal/config"
	"github.com/KasraF/SnipPyLogTool/internal/pipeline"
	"github.com/KasraF/SnipPyLogTool/internal/tui/components"
	"github.com/KasraF/SnipPyLogTool/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the loader finishes.
type DataLoadedMsg struct {
	Result   *pipeline.LoadResult
	Err      error
	LoadTime time.Duration
}

// ProgressMsg reports file parsing progress.
type ProgressMsg struct {
	Current int
	Total   int
}

const (
	tabOverview = iota
	tabCalls
	tabCompare
	tabEvents
)

// App is the root Bubble Tea model.
type App struct {
	// Data
	result   *pipeline.LoadResult
	files    []pipeline.FileResult // successfully parsed files only
	loaded   bool
	loadErr  error
	loadTime time.Duration

	// Selection
	fileIdx int
	taskIdx int
	calls   table.Model

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool
	statusMsg string

	prec    int
	compare bool

	// Setup form (first run, or reopened with S)
	setupForm *huh.Form
	setupVals *SetupValues // shared by App copies while the form edits it
	needSetup bool

	// Loading
	spinner     spinner.Model
	progress    int
	progressMax int
	loadSub     chan tea.Msg

	root string
	opts pipeline.LoadOptions
}

const (
	minTerminalWidth = 80
	maxContentWidth  = 180
	minContentHeight = 5
)

// loadConfigOrDefault loads config, falling back to defaults so the
// dashboard can start with a broken config file.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates the dashboard for the logs under root. needSetup opens the
// setup form once the first load completes.
func NewApp(root string, cfg config.Config, needSetup bool) App {
	theme.SetActive(cfg.Appearance.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		root: root,
		opts: pipeline.LoadOptions{
			LogName: cfg.General.LogName,
			Workers: cfg.General.Workers,
		},
		prec:      cfg.Report.Precision,
		compare:   cfg.Report.Compare,
		needSetup: needSetup,
		spinner:   sp,
		calls:     newCallsTable(),
		loadSub:   make(chan tea.Msg, 1),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.root, a.opts, a.loadSub),
		a.spinner.Tick,
	)
}

// reload restarts the loader with the current options.
func (a App) reload() (App, tea.Cmd) {
	a.loaded = false
	a.progress = 0
	a.progressMax = 0
	a.loadSub = make(chan tea.Msg, 1)
	return a, tea.Batch(loadDataCmd(a.root, a.opts, a.loadSub), a.spinner.Tick)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		a.resizeCalls()
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == tabCalls {
				a.calls.MoveUp(1)
			}
		case tea.MouseButtonWheelDown:
			if a.activeTab == tabCalls {
				a.calls.MoveDown(1)
			}
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		switch key {
		case "q":
			return a, tea.Quit
		case "r":
			return a.reload()
		case "S":
			return a.openSetupForm()
		case "]", "n":
			a.selectFile(a.fileIdx + 1)
			return a, nil
		case "[", "N":
			a.selectFile(a.fileIdx - 1)
			return a, nil
		case "t":
			a.selectTask(a.taskIdx + 1)
			return a, nil
		case "T":
			a.selectTask(a.taskIdx - 1)
			return a, nil
		case "left", "shift+tab":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
			return a, nil
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			return a, nil
		}

		if len(msg.Runes) == 1 {
			if idx := components.TabIdxByKey(msg.Runes[0]); idx >= 0 {
				a.activeTab = idx
				return a, nil
			}
		}

		// Remaining keys (j/k, arrows, g/G, paging) scroll the calls table.
		if a.activeTab == tabCalls {
			var cmd tea.Cmd
			a.calls, cmd = a.calls.Update(msg)
			return a, cmd
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.loadErr = msg.Err
		a.setResult(msg.Result)

		if a.needSetup {
			return a.openSetupForm()
		}
		return a, nil

	case ProgressMsg:
		a.progress = msg.Current
		a.progressMax = msg.Total
		return a, waitForLoadMsg(a.loadSub)

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward cursor blinks and other internal messages to the form.
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	return a, nil
}

func (a App) openSetupForm() (App, tea.Cmd) {
	a.needSetup = false
	vals := SetupValuesFrom(loadConfigOrDefault())
	a.setupVals = &vals
	a.setupForm = NewSetupForm(SetupIntro(a.fileCount(), a.root), a.setupVals)
	if a.width > 0 {
		a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
	}
	return a, a.setupForm.Init()
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupForm = nil
		if err := a.saveSetupConfig(); err != nil {
			a.statusMsg = err.Error()
			return a, nil
		}
		a.statusMsg = "config saved to " + config.Path()
		a.resizeCalls()
		if name := strings.TrimSpace(a.setupVals.LogName); name != a.opts.LogName {
			a.opts.LogName = name
			return a.reload()
		}
		return a, nil
	case huh.StateAborted:
		a.setupForm = nil
		return a, nil
	}
	return a, cmd
}

func (a *App) setResult(res *pipeline.LoadResult) {
	a.result = res
	a.files = nil
	if res != nil {
		for _, fr := range res.Files {
			if fr.Err == nil {
				a.files = append(a.files, fr)
			}
		}
	}
	a.selectFile(a.fileIdx)
}

func (a *App) selectFile(idx int) {
	if len(a.files) == 0 {
		a.fileIdx = 0
	} else {
		a.fileIdx = (idx%len(a.files) + len(a.files)) % len(a.files)
	}
	a.selectTask(a.taskIdx)
}

func (a *App) selectTask(idx int) {
	fr := a.currentFile()
	if fr == nil || len(fr.Reports) == 0 {
		a.taskIdx = 0
	} else {
		n := len(fr.Reports)
		a.taskIdx = (idx%n + n) % n
	}
	a.refreshCalls()
}

func (a App) fileCount() int {
	if a.result == nil {
		return 0
	}
	return a.result.TotalFiles
}

func (a App) currentFile() *pipeline.FileResult {
	if a.fileIdx < 0 || a.fileIdx >= len(a.files) {
		return nil
	}
	return &a.files[a.fileIdx]
}

func (a App) currentReport() *pipeline.TaskReport {
	fr := a.currentFile()
	if fr == nil || a.taskIdx >= len(fr.Reports) {
		return nil
	}
	return &fr.Reports[a.taskIdx]
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  snippylog needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ snippylog"))
	b.WriteString(subtitleStyle.Render(" · SnipPy log analysis"))
	b.WriteString("\n\n")

	if a.progressMax > 0 {
		barW := max(min(40, a.width-30), 20)
		pct := float64(a.progress) / float64(a.progressMax)
		b.WriteString(a.spinner.View())
		b.WriteString(subtitleStyle.Render(" Parsing log files\n\n"))
		b.WriteString(components.ProgressBar(pct, barW))
		b.WriteString("\n")
		b.WriteString(countStyle.Render(cli.FormatInt(a.progress)))
		b.WriteString(subtitleStyle.Render(" / "))
		b.WriteString(countStyle.Render(cli.FormatInt(a.progressMax)))
	} else {
		b.WriteString(a.spinner.View())
		b.WriteString(subtitleStyle.Render(" Scanning " + a.root + "..."))
	}

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings [][2]string
	}{
		{"Navigation", [][2]string{
			{"o c p e", "Jump to tab"},
			{"← → tab", "Previous / next tab"},
			{"] [  n N", "Next / previous log file"},
			{"t T", "Next / previous task"},
			{"j k g G", "Move through calls"},
		}},
		{"Actions", [][2]string{
			{"r", "Reload logs"},
			{"S", "Edit settings"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, kv := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", kv[0])), descStyle.Render(kv[1]))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center,
		cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()

	header := components.RenderTabBar(a.activeTab, w) + "\n" + a.renderSelector(w)
	statusBar := components.RenderStatusBar(w, a.statusPosition(), a.statusInfo())

	contentH := max(a.height-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch {
	case a.loadErr != nil:
		content = components.AlertCard("Load failed", a.loadErr.Error(), cw)
	case len(a.files) == 0:
		content = a.renderEmpty(cw)
	default:
		switch a.activeTab {
		case tabOverview:
			content = a.renderOverviewTab(cw)
		case tabCalls:
			content = a.renderCallsTab(cw)
		case tabCompare:
			content = a.renderCompareTab(cw)
		case tabEvents:
			content = a.renderEventsTab(cw)
		}
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, a.height, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// renderSelector shows the selected file and task under the tab bar.
func (a App) renderSelector(w int) string {
	t := theme.Active
	dim := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	row := lipgloss.NewStyle().Background(t.Surface).Width(w)

	fr := a.currentFile()
	if fr == nil {
		return row.Render(dim.Render(" " + a.root))
	}
	s := dim.Render(" ") + accent.Render(fr.Session) + dim.Render(" │ "+cli.Truncate(fr.Path, max(w/2, 20)))
	if r := a.currentReport(); r != nil {
		s += dim.Render(" │ ") + accent.Render(r.Task.String())
	}
	return row.Render(s)
}

func (a App) statusPosition() string {
	if len(a.files) == 0 {
		return ""
	}
	pos := fmt.Sprintf("file %d/%d", a.fileIdx+1, len(a.files))
	if fr := a.currentFile(); fr != nil && len(fr.Reports) > 0 {
		pos += fmt.Sprintf("  task %d/%d", a.taskIdx+1, len(fr.Reports))
	}
	return pos
}

func (a App) statusInfo() string {
	if a.statusMsg != "" {
		return a.statusMsg
	}
	info := fmt.Sprintf("Loaded in %.1fs", a.loadTime.Seconds())
	if a.result != nil && a.result.FileErrors > 0 {
		info = fmt.Sprintf("%d unreadable · %s", a.result.FileErrors, info)
	}
	return info
}

func (a App) renderEmpty(cw int) string {
	t := theme.Active
	muted := lipgloss.NewStyle().Foreground(t.TextMuted)
	body := muted.Render(fmt.Sprintf("No readable %s files under %s.", a.opts.LogName, a.root))
	if a.result != nil && a.result.FileErrors > 0 {
		body += "\n" + muted.Render(fmt.Sprintf("%d file(s) could not be read.", a.result.FileErrors))
	}
	body += "\n\n" + muted.Render("Press S to change the log file name, r to rescan.")
	return components.ContentCard("Nothing to show", body, cw)
}

// loadDataCmd runs the pipeline in a background goroutine, streaming
// ProgressMsg updates and a final DataLoadedMsg through sub.
func loadDataCmd(root string, opts pipeline.LoadOptions, sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			start := time.Now()

			// Non-blocking so workers never stall on a slow UI.
			progressFn := func(current, total int) {
				select {
				case sub <- ProgressMsg{Current: current, Total: total}:
				default:
				}
			}

			result, err := pipeline.Load(root, opts, progressFn)
			sub <- DataLoadedMsg{Result: result, Err: err, LoadTime: time.Since(start)}
		}()

		return <-sub
	}
}

// waitForLoadMsg blocks until the next message from the loader goroutine.
func waitForLoadMsg(sub chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-sub
	}
}

// tabAtX returns the tab under column x of the tab bar, or -1.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1
	}
	return -1
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w so gaps between cards
// take the background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = lipgloss.PlaceHorizontal(w, lipgloss.Left, line, lipgloss.WithWhitespaceBackground(bg))
	}
	return strings.Join(lines, "\n")
}
