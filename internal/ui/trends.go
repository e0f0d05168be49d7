package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/five82/trendintel/internal/trendapi"
)

const (
	emptyTrendsMessage = "No trending videos found for this category."
	trendCardHeight    = 5
)

// trendSource adapts trend items to fuzzy.Source.
type trendSource []trendapi.TrendItem

func (s trendSource) String(i int) string {
	return s[i].Title + " " + s[i].ChannelTitle
}

func (s trendSource) Len() int { return len(s) }

// filteredTrends returns the feed items matching the search query, best
// match first. An empty query keeps the service order.
func (m Model) filteredTrends() []trendapi.TrendItem {
	items := m.snap.feed.Data
	query := strings.TrimSpace(m.search.Value())
	if query == "" || len(items) == 0 {
		return items
	}
	matches := fuzzy.FindFrom(query, trendSource(items))
	out := make([]trendapi.TrendItem, 0, len(matches))
	for _, match := range matches {
		out = append(out, items[match.Index])
	}
	return out
}

func (m *Model) clampSelection() {
	if n := len(m.filteredTrends()); m.selected >= n {
		m.selected = maxInt(n-1, 0)
	}
	if n := len(m.snap.reports.Data); m.reportsSelected >= n {
		m.reportsSelected = maxInt(n-1, 0)
	}
}

// handleTrendsKey handles keys specific to the trends view.
func (m Model) handleTrendsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.filteredTrends()
	switch {
	case key.Matches(msg, m.keys.NextCategory):
		return m, m.cycleCategory(1)
	case key.Matches(msg, m.keys.PrevCategory):
		return m, m.cycleCategory(-1)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.ClearSearch):
		m.search.SetValue("")
		m.selected = 0
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(items)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
	case key.Matches(msg, m.keys.Bottom):
		m.selected = maxInt(len(items)-1, 0)
	case key.Matches(msg, m.keys.Confirm):
		if m.selected < len(items) {
			url := items[m.selected].URL()
			m.urlInput.SetValue(url)
			cmd := m.switchView(ViewAnalyzer)
			return m, tea.Batch(cmd, analyzeCmd(m.ctx, m.src.analyzer, url))
		}
	}
	return m, nil
}

// handleSearchKey routes input to the search box while it has focus.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		fallthrough
	case "enter":
		m.searching = false
		m.search.Blur()
		m.selected = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.selected = 0
	return m, cmd
}

// cycleCategory moves the feed filter and persists the choice.
func (m *Model) cycleCategory(delta int) tea.Cmd {
	if m.src.feed == nil {
		return nil
	}
	current := m.src.feed.Filter()
	idx := 0
	for i, c := range trendapi.Categories {
		if c == current {
			idx = i
			break
		}
	}
	n := len(trendapi.Categories)
	next := trendapi.Categories[((idx+delta)%n+n)%n]
	if err := m.src.feed.SetFilter(next); err != nil {
		slog.Warn("set category failed", "category", next, "error", err)
		return nil
	}
	m.selected = 0
	m.savePrefs()
	return snapshotCmd(m.src)
}

// renderTrends renders the category bar, search box and trend cards.
func (m Model) renderTrends() string {
	styles := m.theme.Styles()
	var b strings.Builder

	b.WriteString(m.renderCategoryBar(styles))
	b.WriteString("\n")
	if m.searching || m.search.Value() != "" {
		b.WriteString(" " + m.search.View())
	} else {
		b.WriteString(styles.FaintText.Render(" / to search"))
	}
	b.WriteString("\n")

	feed := m.snap.feed
	items := m.filteredTrends()
	switch {
	case !feed.HasData && feed.Err != nil:
		b.WriteString(styles.DangerText.Render(" Failed to load trends: " + trendapi.Describe(feed.Err)))
		return b.String()
	case !feed.HasData:
		b.WriteString(" " + m.spinner.View() + styles.MutedText.Render(" Loading trends..."))
		return b.String()
	case len(feed.Data) == 0:
		b.WriteString(styles.MutedText.Render(" " + emptyTrendsMessage))
		return b.String()
	case len(items) == 0:
		b.WriteString(styles.MutedText.Render(" No trends match \"" + m.search.Value() + "\"."))
		return b.String()
	}

	if feed.Err != nil {
		b.WriteString(styles.WarningText.Render(" Showing last known trends: " + trendapi.Describe(feed.Err)))
		b.WriteString("\n")
	}

	visible := maxInt((m.contentHeight()-3)/trendCardHeight, 1)
	start := 0
	if m.selected >= visible {
		start = m.selected - visible + 1
	}
	end := start + visible
	if end > len(items) {
		end = len(items)
	}
	for i := start; i < end; i++ {
		b.WriteString(m.renderTrendCard(styles, items[i], i == m.selected))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCategoryBar(styles Styles) string {
	parts := make([]string, 0, len(trendapi.Categories))
	for _, c := range trendapi.Categories {
		if c == m.snap.category {
			parts = append(parts, styles.Selected.Bold(true).Render(" "+c+" "))
			continue
		}
		parts = append(parts, styles.MutedText.Render(" "+c+" "))
	}
	count := ""
	if m.snap.feed.HasData {
		count = styles.FaintText.Render("  " + formatCount(int64(len(m.snap.feed.Data))) + " videos")
	}
	return " " + strings.Join(parts, " ") + count
}
