package ui

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/trendintel/internal/controller"
	"github.com/five82/trendintel/internal/prefs"
	"github.com/five82/trendintel/internal/trendapi"
)

func newSizedModel(t *testing.T) Model {
	t.Helper()
	m := New(Options{PrefsPath: filepath.Join(t.TempDir(), "prefs.toml")})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return updated.(Model)
}

func press(t *testing.T, m Model, keys string) Model {
	t.Helper()
	var msg tea.KeyMsg
	switch keys {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func TestView_LoadingBeforeSize(t *testing.T) {
	m := New(Options{})
	if got := m.View(); got != "Loading..." {
		t.Fatalf("View() = %q, want Loading...", got)
	}
}

func TestViewSwitching(t *testing.T) {
	m := newSizedModel(t)
	if m.view != ViewDashboard {
		t.Fatalf("initial view = %v, want dashboard", m.view)
	}

	m = press(t, m, "tab")
	if m.view != ViewTrends {
		t.Fatalf("after tab view = %v, want trends", m.view)
	}
	m = press(t, m, "4")
	if m.view != ViewReports {
		t.Fatalf("after 4 view = %v, want reports", m.view)
	}
	m = press(t, m, "esc")
	if m.view != ViewDashboard {
		t.Fatalf("after esc view = %v, want dashboard", m.view)
	}
	if got := m.offsetView(-1); got != ViewLogs {
		t.Fatalf("offsetView(-1) = %v, want logs", got)
	}
}

func TestHelpToggle(t *testing.T) {
	m := newSizedModel(t)
	m = press(t, m, "?")
	if !m.showHelp {
		t.Fatalf("expected help to be shown")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help view missing title")
	}
	m = press(t, m, "x")
	if m.showHelp {
		t.Fatalf("expected any key to close help")
	}
}

func TestThemeCyclePersistsPrefs(t *testing.T) {
	m := newSizedModel(t)
	m = press(t, m, "T")
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}

	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" || p.Category != trendapi.CategoryAll {
		t.Fatalf("prefs = %+v", p)
	}
}

func TestHandleAction_Notices(t *testing.T) {
	cases := []struct {
		name  string
		msg   actionMsg
		want  string
		level noticeLevel
	}{
		{
			name:  "success",
			msg:   actionMsg{action: "Analysis cycle", text: cycleStartedNotice},
			want:  cycleStartedNotice,
			level: noticeSuccess,
		},
		{
			name:  "busy",
			msg:   actionMsg{action: "Analysis cycle", err: controller.ErrBusy},
			want:  "Analysis cycle already in progress",
			level: noticeInfo,
		},
		{
			name:  "remote detail",
			msg:   actionMsg{action: "Automation update", err: &trendapi.RemoteError{Op: "settings", StatusCode: 500, Detail: "db locked"}},
			want:  "Automation update failed: db locked",
			level: noticeError,
		},
		{
			name:  "invalid url",
			msg:   actionMsg{action: "Analysis", err: controller.ErrInvalidURL},
			want:  "Invalid YouTube URL",
			level: noticeError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newSizedModel(t)
			updated, _ := m.Update(tc.msg)
			m = updated.(Model)
			n, ok := m.activeNotice()
			if !ok {
				t.Fatalf("expected an active notice")
			}
			if n.text != tc.want || n.level != tc.level {
				t.Fatalf("notice = %+v, want %q level %d", n, tc.want, tc.level)
			}
		})
	}
}

func TestHandleAction_PendingToggleIsSilent(t *testing.T) {
	m := newSizedModel(t)
	updated, _ := m.Update(actionMsg{action: "Automation update", err: controller.ErrTogglePending})
	m = updated.(Model)
	if _, ok := m.activeNotice(); ok {
		t.Fatalf("expected no notice for a pending toggle")
	}
}

func TestNoticeExpires(t *testing.T) {
	m := newSizedModel(t)
	m.notice = notice{text: "old", at: time.Now().Add(-noticeTTL - time.Second)}
	if _, ok := m.activeNotice(); ok {
		t.Fatalf("expected notice to expire")
	}
}

func TestRenderDashboard_NoAnalysisHint(t *testing.T) {
	m := newSizedModel(t)
	m.applySnapshot(snapshotMsg{
		stats: controller.StatsSnapshot{HasData: true, Data: &trendapi.Stats{TotalAnalyzed: 0}},
	})
	if !strings.Contains(m.renderDashboard(), noAnalysisHint) {
		t.Fatalf("dashboard missing empty-data hint")
	}

	m.applySnapshot(snapshotMsg{
		stats: controller.StatsSnapshot{HasData: true, Data: &trendapi.Stats{TotalAnalyzed: 1200, EmailsSent: 3, ViralityRate: 12.5}},
		top: controller.FeedSnapshot{HasData: true, Data: []trendapi.TrendItem{
			{VideoID: "dQw4w9WgXcQ", Title: "Top video", TrendType: "Exploding", EngagementScore: 88.6},
		}},
	})
	out := m.renderDashboard()
	if strings.Contains(out, noAnalysisHint) {
		t.Fatalf("hint shown with data present")
	}
	for _, want := range []string{"1,200", "12.5%", "Top video", "score 89", "https://youtu.be/dQw4w9WgXcQ"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dashboard missing %q", want)
		}
	}
}

func TestRenderTrends_EmptyIsNotError(t *testing.T) {
	m := newSizedModel(t)
	m.applySnapshot(snapshotMsg{
		feed:     controller.FeedSnapshot{HasData: true, Data: []trendapi.TrendItem{}},
		category: trendapi.CategoryGaming,
	})
	out := m.renderTrends()
	if !strings.Contains(out, emptyTrendsMessage) {
		t.Fatalf("trends view missing empty message:\n%s", out)
	}
	if strings.Contains(out, "Failed") {
		t.Fatalf("empty result rendered as failure")
	}
}

func TestRenderTrends_ErrorWithoutData(t *testing.T) {
	m := newSizedModel(t)
	m.applySnapshot(snapshotMsg{
		feed: controller.FeedSnapshot{Err: &trendapi.NetworkError{Op: "trends", Err: errors.New("connection refused")}},
	})
	if out := m.renderTrends(); !strings.Contains(out, "Service not running") {
		t.Fatalf("trends view missing error:\n%s", out)
	}
}

func TestFilteredTrends_FuzzySearch(t *testing.T) {
	m := newSizedModel(t)
	m.applySnapshot(snapshotMsg{feed: controller.FeedSnapshot{HasData: true, Data: []trendapi.TrendItem{
		{Title: "Cooking pasta", ChannelTitle: "Kitchen"},
		{Title: "Minecraft speedrun", ChannelTitle: "Blocks"},
	}}})

	if got := m.filteredTrends(); len(got) != 2 {
		t.Fatalf("unfiltered len = %d, want 2", len(got))
	}

	m.search.SetValue("minec")
	got := m.filteredTrends()
	if len(got) != 1 || got[0].Title != "Minecraft speedrun" {
		t.Fatalf("filtered = %+v", got)
	}
}

func TestSelectionClampsAfterShrink(t *testing.T) {
	m := newSizedModel(t)
	m.applySnapshot(snapshotMsg{feed: controller.FeedSnapshot{HasData: true, Data: make([]trendapi.TrendItem, 5)}})
	m.selected = 4
	m.applySnapshot(snapshotMsg{feed: controller.FeedSnapshot{HasData: true, Data: make([]trendapi.TrendItem, 2)}})
	if m.selected != 1 {
		t.Fatalf("selected = %d, want 1", m.selected)
	}
}

func TestRenderReports_Empty(t *testing.T) {
	m := newSizedModel(t)
	m.applySnapshot(snapshotMsg{reports: controller.FeedSnapshot{HasData: true, Data: []trendapi.TrendItem{}}})
	if out := m.renderReports(); !strings.Contains(out, emptyReportsMessage) {
		t.Fatalf("reports view missing empty message:\n%s", out)
	}
}

func TestRenderHeader_BotPending(t *testing.T) {
	m := newSizedModel(t)
	m.applySnapshot(snapshotMsg{
		stats:  controller.StatsSnapshot{HasData: true, Data: &trendapi.Stats{BotActive: true}},
		toggle: controller.ToggleState{Phase: controller.TogglePending, Confirmed: true, Optimistic: false, Known: true},
		lock:   controller.ActionLock{Locked: true},
	})
	out := m.renderHeader()
	for _, want := range []string{"ONLINE", "Bot STOPPED", "...", "Analyzing..."} {
		if !strings.Contains(out, want) {
			t.Fatalf("header missing %q:\n%s", want, out)
		}
	}
}
