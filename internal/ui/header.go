package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/trendintel/internal/trendapi"
)

const logoText = "trendintel"

// renderHeader renders the status bar: connectivity, automation state and the
// run lock.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	sep := bg.Spaces(2)

	parts := []string{bg.Render(logoText, styles.Logo)}
	parts = append(parts, m.connectionBadge(styles, bg))
	if bot := m.botBadge(styles, bg); bot != "" {
		parts = append(parts, bot)
	}
	if m.snap.lock.Locked {
		parts = append(parts, bg.Render(m.spinner.View()+" Analyzing...", styles.WarningText.Bold(true)))
	}
	if m.width >= 100 && m.apiURL != "" {
		parts = append(parts, bg.Render(truncateMiddle(m.apiURL, 40), styles.FaintText))
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(bg.Join(parts, sep))
}

// connectionBadge summarizes reachability from the stats poller, which runs
// for the whole session.
func (m Model) connectionBadge(styles Styles, bg BgStyle) string {
	s := m.snap.stats
	switch {
	case s.Err != nil && !s.HasData:
		return bg.Render("● OFFLINE", styles.DangerText) + bg.Space() +
			bg.Render(trendapi.Describe(s.Err), styles.MutedText)
	case s.IsOffline():
		return bg.Render("● OFFLINE", styles.DangerText) + bg.Space() +
			bg.Render("last ok "+formatAge(s.FetchedAt), styles.MutedText)
	case s.Err != nil:
		return bg.Render("● DEGRADED", styles.WarningText)
	case !s.HasData:
		return bg.Render("Connecting...", styles.WarningText.Bold(true))
	case s.Stale:
		return bg.Render("● CACHED", styles.InfoText)
	default:
		return bg.Render("● ONLINE", styles.SuccessText)
	}
}

// botBadge shows the optimistic automation state.
func (m Model) botBadge(styles Styles, bg BgStyle) string {
	t := m.snap.toggle
	if !t.Known && !t.Pending() {
		return ""
	}
	running := t.Display()
	label := ternary(running, "Bot RUNNING", "Bot STOPPED")
	style := styles.DangerText
	if running {
		style = styles.SuccessText
	}
	action := ternary(running, "[b] STOP", "[b] START")
	if t.Pending() {
		action = "..."
	}
	return bg.Render(label, style) + bg.Space() + bg.Render(action, styles.MutedText)
}

// renderCommandBar renders the view tabs.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)

	tabs := make([]string, 0, len(viewOrder))
	for i, v := range viewOrder {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if v == m.view {
			tabs = append(tabs, styles.Selected.Bold(true).Render(" "+label+" "))
			continue
		}
		tabs = append(tabs, bg.Render(" "+label+" ", styles.MutedText))
	}
	return bg.FillLine(bg.Join(tabs, " "), m.width)
}

// renderFooter renders the key hints or the current notice.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if n, ok := m.activeNotice(); ok {
		style := styles.InfoText
		switch n.level {
		case noticeSuccess:
			style = styles.SuccessText
		case noticeError:
			style = styles.DangerText
		}
		return bg.FillLine(bg.Space()+bg.Render(n.text, style), m.width)
	}

	hints := m.help.ShortHelpView(m.keys.ShortHelp())
	updated := ""
	if !m.snap.stats.LastUpdated.IsZero() {
		updated = bg.Render("updated "+m.snap.stats.LastUpdated.Format("15:04:05"), styles.FaintText)
	}
	gap := m.width - lipgloss.Width(hints) - lipgloss.Width(updated) - 2
	if gap < 1 {
		return bg.FillLine(bg.Space()+hints, m.width)
	}
	return bg.FillLine(bg.Space()+hints+bg.Spaces(gap)+updated, m.width)
}
