package ui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/trendintel/internal/controller"
	"github.com/five82/trendintel/internal/logtail"
	"github.com/five82/trendintel/internal/prefs"
	"github.com/five82/trendintel/internal/trendapi"
)

// View represents the current active view.
type View int

const (
	ViewDashboard View = iota
	ViewTrends
	ViewAnalyzer
	ViewReports
	ViewLogs
)

var viewOrder = []View{ViewDashboard, ViewTrends, ViewAnalyzer, ViewReports, ViewLogs}

// Title returns the tab label of the view.
func (v View) Title() string {
	switch v {
	case ViewTrends:
		return "Live Trends"
	case ViewAnalyzer:
		return "Analyzer"
	case ViewReports:
		return "Reports"
	case ViewLogs:
		return "Logs"
	default:
		return "Dashboard"
	}
}

const (
	cycleStartedNotice = "Cycle started! Check your email in ~30 seconds."
	noticeTTL          = 6 * time.Second
	logTailLines       = 400
)

// Options configures the UI. Controllers left nil disable their views' data.
type Options struct {
	Context  context.Context
	Stats    *controller.Stats
	TopTrend *controller.Feed
	Feed     *controller.Feed
	Toggle   *controller.Toggle
	Cycle    *controller.Trigger
	Analyzer *controller.Analyzer
	Reports  *controller.Reports

	// Changes delivers a value whenever any controller state changes.
	Changes <-chan struct{}

	APIURL    string
	LogPath   string
	RefreshUI time.Duration
	ThemeName string
	PrefsPath string
}

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

type notice struct {
	text  string
	level noticeLevel
	at    time.Time
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	src       sources
	changes   <-chan struct{}
	apiURL    string
	logPath   string
	prefsPath string
	refreshUI time.Duration

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	theme    Theme
	view     View
	width    int
	height   int
	ready    bool
	showHelp bool

	snap        snapshotMsg
	lastUpdated time.Time
	notice      notice

	// Trends state
	selected  int
	searching bool
	search    textinput.Model

	// Analyzer state
	urlInput   textinput.Model
	editingURL bool

	// Reports state
	reportsSelected int

	// Logs state
	logViewport viewport.Model
	logEntries  []logtail.Entry
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	refresh := opts.RefreshUI
	if refresh <= 0 {
		refresh = time.Second
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	search := textinput.New()
	search.Prompt = "/"
	search.Placeholder = "search title or channel"
	search.CharLimit = 80

	urlInput := textinput.New()
	urlInput.Prompt = "URL: "
	urlInput.Placeholder = "https://www.youtube.com/watch?v=..."
	urlInput.CharLimit = 200

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx: ctx,
		src: sources{
			stats:    opts.Stats,
			topTrend: opts.TopTrend,
			feed:     opts.Feed,
			toggle:   opts.Toggle,
			cycle:    opts.Cycle,
			analyzer: opts.Analyzer,
			reports:  opts.Reports,
		},
		changes:   opts.Changes,
		apiURL:    opts.APIURL,
		logPath:   opts.LogPath,
		prefsPath: prefsPath,
		refreshUI: refresh,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		theme:     GetTheme(themeName),
		view:      ViewDashboard,
		search:    search,
		urlInput:  urlInput,
	}
	m.snap = m.src.read()
	m.applyTheme()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.src.activate(m.view)
	return tea.Batch(
		tickCmd(m.refreshUI),
		snapshotCmd(m.src),
		waitForChangeCmd(m.changes),
		m.spinner.Tick,
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.logViewport = viewport.New(msg.Width, m.contentHeight())
		}
		m.ready = true
		m.help.Width = msg.Width
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick()

	case changedMsg:
		return m, tea.Batch(snapshotCmd(m.src), waitForChangeCmd(m.changes))

	case snapshotMsg:
		m.applySnapshot(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionMsg:
		m.handleAction(msg)
		return m, snapshotCmd(m.src)

	case logsMsg:
		m.handleLogs(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}
	if m.editingURL {
		return m.handleURLKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.src.activate(-1)
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.applyTheme()
		m.savePrefs()
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		return m, m.switchView(m.offsetView(1))
	case key.Matches(msg, m.keys.ShiftTab):
		return m, m.switchView(m.offsetView(-1))
	case key.Matches(msg, m.keys.Escape):
		return m, m.switchView(ViewDashboard)
	case key.Matches(msg, m.keys.ViewDashboard):
		return m, m.switchView(ViewDashboard)
	case key.Matches(msg, m.keys.ViewTrends):
		return m, m.switchView(ViewTrends)
	case key.Matches(msg, m.keys.ViewAnalyzer):
		return m, m.switchView(ViewAnalyzer)
	case key.Matches(msg, m.keys.ViewReports):
		return m, m.switchView(ViewReports)
	case key.Matches(msg, m.keys.ViewLogs):
		return m, m.switchView(ViewLogs)
	case key.Matches(msg, m.keys.RunCycle):
		return m, runCycleCmd(m.ctx, m.src.cycle)
	case key.Matches(msg, m.keys.ToggleBot):
		return m, toggleBotCmd(m.ctx, m.src.toggle)
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshView()
	}

	switch m.view {
	case ViewTrends:
		return m.handleTrendsKey(msg)
	case ViewAnalyzer:
		return m.handleAnalyzerKey(msg)
	case ViewReports:
		return m.handleReportsKey(msg)
	case ViewLogs:
		var cmd tea.Cmd
		m.logViewport, cmd = m.logViewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) offsetView(delta int) View {
	idx := 0
	for i, v := range viewOrder {
		if v == m.view {
			idx = i
			break
		}
	}
	n := len(viewOrder)
	return viewOrder[((idx+delta)%n+n)%n]
}

// switchView changes the active view, starting the pollers it needs and
// stopping the others.
func (m *Model) switchView(v View) tea.Cmd {
	if v == m.view {
		return nil
	}
	if m.view == ViewReports && m.src.reports != nil {
		m.src.reports.Discard()
	}
	m.view = v
	m.searching = false
	m.editingURL = false
	m.search.Blur()
	m.urlInput.Blur()
	m.src.activate(v)

	cmds := []tea.Cmd{snapshotCmd(m.src)}
	switch v {
	case ViewReports:
		cmds = append(cmds, loadReportsCmd(m.ctx, m.src.reports))
	case ViewLogs:
		cmds = append(cmds, readLogsCmd(m.logPath))
	}
	return tea.Batch(cmds...)
}

func (m *Model) refreshView() tea.Cmd {
	if m.src.stats != nil {
		m.src.stats.Refresh()
	}
	switch m.view {
	case ViewDashboard:
		if m.src.topTrend != nil {
			m.src.topTrend.Refresh()
		}
	case ViewTrends:
		if m.src.feed != nil {
			m.src.feed.Refresh()
		}
	case ViewReports:
		return loadReportsCmd(m.ctx, m.src.reports)
	case ViewLogs:
		return readLogsCmd(m.logPath)
	}
	return nil
}

// handleTick processes the UI refresh tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{snapshotCmd(m.src), tickCmd(m.refreshUI)}
	if m.view == ViewLogs {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) applySnapshot(snap snapshotMsg) {
	m.snap = snap
	m.lastUpdated = time.Now()
	m.clampSelection()
}

func (m *Model) handleAction(msg actionMsg) {
	switch {
	case msg.err == nil:
		if msg.text != "" {
			m.setNotice(msg.text, noticeSuccess)
		}
	case errors.Is(msg.err, controller.ErrBusy):
		m.setNotice(msg.action+" already in progress", noticeInfo)
	case errors.Is(msg.err, controller.ErrTogglePending):
		// The first toggle is still in flight; nothing to report.
	case errors.Is(msg.err, controller.ErrInvalidURL):
		m.setNotice("Invalid YouTube URL", noticeError)
	case errors.Is(msg.err, context.Canceled):
	default:
		m.setNotice(msg.action+" failed: "+trendapi.Describe(msg.err), noticeError)
	}
}

func (m *Model) setNotice(text string, level noticeLevel) {
	m.notice = notice{text: text, level: level, at: time.Now()}
}

func (m Model) activeNotice() (notice, bool) {
	if m.notice.text == "" || time.Since(m.notice.at) > noticeTTL {
		return notice{}, false
	}
	return m.notice, true
}

func (m *Model) applyTheme() {
	styles := m.theme.Styles()
	m.spinner.Style = styles.AccentText
	m.help.Styles.ShortKey = styles.WarningText
	m.help.Styles.ShortDesc = styles.MutedText
	m.help.Styles.ShortSeparator = styles.FaintText
	m.help.Styles.FullKey = styles.WarningText
	m.help.Styles.FullDesc = styles.Text
	m.help.Styles.FullSeparator = styles.FaintText
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, Category: trendapi.CategoryAll}
	if m.src.feed != nil {
		p.Category = m.src.feed.Filter()
	}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		slog.Warn("save prefs failed", "error", err)
	}
}

func (m Model) contentHeight() int {
	// header + command bar + footer
	h := m.height - 3
	if h < 1 {
		return 1
	}
	return h
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderContent renders the main content area based on current view.
func (m Model) renderContent() string {
	var body string
	switch m.view {
	case ViewTrends:
		body = m.renderTrends()
	case ViewAnalyzer:
		body = m.renderAnalyzer()
	case ViewReports:
		body = m.renderReports()
	case ViewLogs:
		body = m.renderLogs()
	default:
		body = m.renderDashboard()
	}
	return fitHeight(body, m.contentHeight())
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	m.src.activate(-1)
	if errors.Is(err, tea.ErrProgramKilled) && m.ctx.Err() != nil {
		return nil
	}
	return err
}
