package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trendintel/internal/trendapi"
)

const noAnalysisHint = "No analysis data yet. Press R to run analysis now."

// renderDashboard renders the stat cards and the most recent top trend.
func (m Model) renderDashboard() string {
	styles := m.theme.Styles()
	s := m.snap.stats

	var b strings.Builder
	b.WriteString(m.renderStatCards(styles))
	b.WriteString("\n")

	if s.HasData && s.Data != nil && s.Data.TotalAnalyzed == 0 {
		b.WriteString(styles.WarningText.Render("  " + noAnalysisHint))
		b.WriteString("\n\n")
	}

	b.WriteString(styles.AccentText.Bold(true).Render("  Recent Top Trend"))
	b.WriteString("\n")
	b.WriteString(m.renderTopTrend(styles))
	return b.String()
}

func (m Model) renderStatCards(styles Styles) string {
	s := m.snap.stats
	values := [3]string{"-", "-", "-"}
	if s.HasData && s.Data != nil {
		values[0] = formatCount(s.Data.TotalAnalyzed)
		values[1] = formatCount(s.Data.EmailsSent)
		values[2] = formatRate(s.Data.ViralityRate)
	}
	labels := [3]string{"Videos Analyzed", "Emails Sent", "Avg Viral Score"}

	cardWidth := (m.width - 6) / 3
	if cardWidth < 18 {
		cardWidth = 18
	}
	card := styles.Card.Width(cardWidth - 2)

	cards := make([]string, 0, len(labels))
	for i, label := range labels {
		body := styles.MutedText.Render(label) + "\n" + styles.Text.Bold(true).Render(values[i])
		cards = append(cards, card.Render(body))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, cards...)

	if s.Err != nil && s.HasData {
		row += "\n" + styles.FaintText.Render("  showing last known values: "+trendapi.Describe(s.Err))
	}
	return row
}

func (m Model) renderTopTrend(styles Styles) string {
	top := m.snap.top
	switch {
	case top.HasData && len(top.Data) > 0:
		return m.renderTrendCard(styles, top.Data[0], false)
	case top.HasData:
		return styles.MutedText.Render("  No trends yet.")
	case top.Err != nil:
		return styles.DangerText.Render("  " + trendapi.Describe(top.Err))
	default:
		return "  " + m.spinner.View() + styles.MutedText.Render(" Loading...")
	}
}

// renderTrendCard renders one trend item as a bordered card.
func (m Model) renderTrendCard(styles Styles, item trendapi.TrendItem, selected bool) string {
	width := m.width - 4
	if width < 30 {
		width = 30
	}
	card := styles.Card.Width(width)
	if selected {
		card = card.BorderForeground(lipgloss.Color(m.theme.BorderFocus))
	}

	title := styles.Text.Bold(true).Render(truncate(item.Title, width-4))
	meta := []string{
		styles.BadgeStyle(item.TrendLabel()).Render(item.TrendLabel()),
		styles.MutedText.Render(truncate(item.ChannelTitle, 30)),
		styles.FaintText.Render(formatHours(item.HoursSinceUpload)),
		styles.Text.Render(formatViews(item.ViewCount) + " views"),
		styles.AccentText.Render(fmt.Sprintf("score %d", item.Score())),
	}
	if item.ViralProbability > 0 {
		meta = append(meta, styles.WarningText.Render(fmt.Sprintf("%d%% viral", item.ViralProbability)))
	}
	link := styles.InfoText.Render(item.URL())

	return card.Render(title + "\n" + strings.Join(meta, "  ") + "\n" + link)
}
