package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trendintel/internal/logtail"
)

// handleLogs stores freshly read log entries and re-renders the viewport.
// The viewport stays pinned to the newest line unless the user scrolled up.
func (m *Model) handleLogs(msg logsMsg) {
	m.logErr = msg.err
	if msg.err != nil {
		return
	}
	follow := m.logViewport.AtBottom() || len(m.logEntries) == 0
	m.logEntries = msg.entries
	m.logViewport.SetContent(m.formatLogEntries())
	if follow {
		m.logViewport.GotoBottom()
	}
}

func (m *Model) resizeLogViewport() {
	m.logViewport.Width = m.width
	m.logViewport.Height = maxInt(m.contentHeight()-1, 1)
	if len(m.logEntries) > 0 {
		m.logViewport.SetContent(m.formatLogEntries())
	}
}

func (m Model) formatLogEntries() string {
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.logEntries))
	for _, e := range m.logEntries {
		if !e.Parsed {
			lines = append(lines, styles.FaintText.Render(e.Raw))
			continue
		}
		lines = append(lines, formatLogEntry(styles, e))
	}
	return strings.Join(lines, "\n")
}

func formatLogEntry(styles Styles, e logtail.Entry) string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(styles.FaintText.Render(e.Time.Local().Format("15:04:05")))
		b.WriteString(" ")
	}
	b.WriteString(levelStyle(styles, e.Level).Render(padRight(e.Level.String(), 5)))
	b.WriteString(" ")
	b.WriteString(styles.Text.Render(e.Message))
	for _, a := range e.Attrs {
		b.WriteString(" ")
		b.WriteString(styles.MutedText.Render(a.Key + "="))
		b.WriteString(styles.AccentText.Render(a.Value))
	}
	return b.String()
}

func levelStyle(styles Styles, level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return styles.DangerText
	case level >= slog.LevelWarn:
		return styles.WarningText
	case level >= slog.LevelInfo:
		return styles.InfoText
	default:
		return styles.FaintText
	}
}

// renderLogs renders the client log viewport.
func (m Model) renderLogs() string {
	styles := m.theme.Styles()
	title := styles.AccentText.Bold(true).Render(" Client Log")
	if m.logPath != "" {
		title += styles.FaintText.Render("  " + truncateMiddle(m.logPath, 60))
	}

	switch {
	case m.logPath == "":
		return title + "\n" + styles.MutedText.Render(" Logging is disabled (log_file is empty).")
	case m.logErr != nil:
		return title + "\n" + styles.DangerText.Render(" Failed to read log: "+m.logErr.Error())
	case len(m.logEntries) == 0:
		return title + "\n" + styles.MutedText.Render(" No log entries yet.")
	}
	return title + "\n" + m.logViewport.View()
}
