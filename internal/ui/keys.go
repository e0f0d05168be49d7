package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding
	ShiftTab   key.Binding
	Escape     key.Binding
	Refresh    key.Binding

	// View switching
	ViewDashboard key.Binding
	ViewTrends    key.Binding
	ViewAnalyzer  key.Binding
	ViewReports   key.Binding
	ViewLogs      key.Binding

	// Remote actions
	RunCycle  key.Binding
	ToggleBot key.Binding

	// Trends
	NextCategory key.Binding
	PrevCategory key.Binding
	Search       key.Binding
	ClearSearch  key.Binding

	// Analyzer
	EditURL     key.Binding
	ResetResult key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next view"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "Previous view"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to dashboard"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh view"),
		),

		ViewDashboard: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "Dashboard"),
		),
		ViewTrends: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Live trends"),
		),
		ViewAnalyzer: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Analyzer"),
		),
		ViewReports: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "Reports"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("5", "l"),
			key.WithHelp("5/l", "Client logs"),
		),

		RunCycle: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "Run analysis cycle"),
		),
		ToggleBot: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "Start/stop automation"),
		),

		NextCategory: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "Next category"),
		),
		PrevCategory: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "Previous category"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search trends"),
		),
		ClearSearch: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear search"),
		),

		EditURL: key.NewBinding(
			key.WithKeys("i", "enter"),
			key.WithHelp("i/enter", "Enter video URL"),
		),
		ResetResult: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear analysis"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.RunCycle, k.ToggleBot, k.Refresh, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one column per group.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewDashboard, k.ViewTrends, k.ViewAnalyzer, k.ViewReports, k.ViewLogs, k.Tab, k.Escape},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.NextCategory, k.PrevCategory, k.Search, k.ClearSearch},
		{k.EditURL, k.ResetResult},
		{k.RunCycle, k.ToggleBot, k.Refresh, k.CycleTheme, k.Help, k.Quit},
	}
}
