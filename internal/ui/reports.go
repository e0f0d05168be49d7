package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/trendintel/internal/trendapi"
)

const emptyReportsMessage = "No reports sent yet."

func (m Model) handleReportsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := len(m.snap.reports.Data)
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.reportsSelected < n-1 {
			m.reportsSelected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.reportsSelected > 0 {
			m.reportsSelected--
		}
	case key.Matches(msg, m.keys.Top):
		m.reportsSelected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.reportsSelected = maxInt(n-1, 0)
	}
	return m, nil
}

// renderReports renders sent reports as a table.
func (m Model) renderReports() string {
	styles := m.theme.Styles()
	r := m.snap.reports

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(" Sent Reports"))
	if !r.FetchedAt.IsZero() {
		b.WriteString(styles.FaintText.Render("  fetched " + formatAge(r.FetchedAt)))
	}
	b.WriteString("\n")

	switch {
	case r.Loading && !r.HasData:
		b.WriteString(" " + m.spinner.View() + styles.MutedText.Render(" Loading reports..."))
		return b.String()
	case !r.HasData && r.Err != nil:
		b.WriteString(styles.DangerText.Render(" Failed to load reports: " + trendapi.Describe(r.Err)))
		return b.String()
	case !r.HasData:
		return b.String()
	case len(r.Data) == 0:
		b.WriteString(styles.MutedText.Render(" " + emptyReportsMessage))
		return b.String()
	}
	if r.Err != nil {
		b.WriteString(styles.WarningText.Render(" Showing last known reports: " + trendapi.Describe(r.Err)))
		b.WriteString("\n")
	}

	titleWidth := maxInt(m.width-48, 20)
	header := fmt.Sprintf(" %-17s %-*s %6s  %s", "Sent", titleWidth, "Title", "Score", "Type")
	b.WriteString(styles.MutedText.Bold(true).Render(header))
	b.WriteString("\n")

	visible := maxInt(m.contentHeight()-3, 1)
	start := 0
	if m.reportsSelected >= visible {
		start = m.reportsSelected - visible + 1
	}
	end := start + visible
	if end > len(r.Data) {
		end = len(r.Data)
	}
	for i := start; i < end; i++ {
		item := r.Data[i]
		sent := "-"
		if ts := item.ParsedTimestamp(); !ts.IsZero() {
			sent = ts.Local().Format("Jan 02 15:04")
		}
		line := fmt.Sprintf(" %-17s %-*s %6d  ", sent, titleWidth, truncate(item.Title, titleWidth), item.Score())
		if i == m.reportsSelected {
			b.WriteString(styles.Selected.Render(line + item.TrendLabel()))
		} else {
			b.WriteString(styles.Text.Render(line) + styles.BadgeStyle(item.TrendLabel()).Render(item.TrendLabel()))
		}
		b.WriteString("\n")
	}
	return b.String()
}
