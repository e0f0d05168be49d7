package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/trendintel/internal/trendapi"
)

// handleAnalyzerKey handles keys specific to the analyzer view.
func (m Model) handleAnalyzerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.EditURL):
		m.editingURL = true
		return m, m.urlInput.Focus()
	case key.Matches(msg, m.keys.ResetResult):
		if m.src.analyzer != nil {
			m.src.analyzer.Reset()
		}
		m.urlInput.SetValue("")
		return m, snapshotCmd(m.src)
	}
	return m, nil
}

// handleURLKey routes input to the URL box while it has focus.
func (m Model) handleURLKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editingURL = false
		m.urlInput.Blur()
		return m, nil
	case "enter":
		m.editingURL = false
		m.urlInput.Blur()
		return m, analyzeCmd(m.ctx, m.src.analyzer, m.urlInput.Value())
	}
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

// renderAnalyzer renders the URL input and the latest analysis.
func (m Model) renderAnalyzer() string {
	styles := m.theme.Styles()
	a := m.snap.analysis

	var b strings.Builder
	b.WriteString(styles.AccentText.Bold(true).Render(" Analyze a video"))
	b.WriteString("\n ")
	b.WriteString(m.urlInput.View())
	b.WriteString("\n")
	if !m.editingURL {
		b.WriteString(styles.FaintText.Render(" i to enter a URL, x to clear"))
	}
	b.WriteString("\n\n")

	switch {
	case a.Running:
		b.WriteString(" " + m.spinner.View() + styles.WarningText.Render(" Analyzing "+truncateMiddle(a.URL, 60)))
	case a.Err != nil:
		b.WriteString(styles.DangerText.Render(" Analysis failed: " + trendapi.Describe(a.Err)))
	case a.Result != nil:
		b.WriteString(m.renderInsights(styles, a.Result))
	default:
		b.WriteString(styles.MutedText.Render(" Paste a YouTube link to get a viral score and AI insights."))
	}
	return b.String()
}

func (m Model) renderInsights(styles Styles, r *trendapi.AnalysisResult) string {
	scoreStyle := styles.SuccessText
	switch {
	case r.ViralScore < 40:
		scoreStyle = styles.DangerText
	case r.ViralScore < 70:
		scoreStyle = styles.WarningText
	}

	width := maxInt(m.width-6, 30)
	rows := []struct{ label, value string }{
		{"Why trending", r.Insights.WhyTrending},
		{"Emotional trigger", r.Insights.EmotionalTrigger},
		{"Audience", r.Insights.Audience},
		{"Sentiment", titleCase(r.Insights.Sentiment)},
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(truncate(r.Title, width)))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("Viral score "))
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%d/100", r.ViralScore)))
	if r.VideoID != "" {
		b.WriteString(styles.FaintText.Render("  https://youtu.be/" + r.VideoID))
	}
	b.WriteString("\n\n")
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		b.WriteString(styles.AccentText.Render(row.label))
		b.WriteString("\n")
		b.WriteString(styles.Text.Width(width).Render(row.value))
		b.WriteString("\n")
	}
	return styles.Card.Width(width + 2).Render(strings.TrimRight(b.String(), "\n"))
}
