package ui

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/trendintel/internal/controller"
	"github.com/five82/trendintel/internal/logtail"
)

// sources groups the controllers the UI reads from. Any of them may be nil.
type sources struct {
	stats    *controller.Stats
	topTrend *controller.Feed
	feed     *controller.Feed
	toggle   *controller.Toggle
	cycle    *controller.Trigger
	analyzer *controller.Analyzer
	reports  *controller.Reports
}

// activate starts the feed pollers the view needs and stops the rest. The
// stats poller is owned by the caller and runs for the whole session. A
// negative view stops everything.
func (s sources) activate(v View) {
	if s.topTrend != nil {
		if v == ViewDashboard {
			s.topTrend.Start()
		} else {
			s.topTrend.Stop()
		}
	}
	if s.feed != nil {
		if v == ViewTrends {
			s.feed.Start()
		} else {
			s.feed.Stop()
		}
	}
	if v < 0 && s.reports != nil {
		s.reports.Discard()
	}
}

// read collects a consistent-enough view of every controller. Each value is
// read under its owner's lock; cross-controller skew is harmless because the
// next change notification triggers another read.
func (s sources) read() snapshotMsg {
	var snap snapshotMsg
	if s.stats != nil {
		snap.stats = s.stats.Snapshot()
	}
	if s.topTrend != nil {
		snap.top = s.topTrend.Snapshot()
	}
	if s.feed != nil {
		snap.feed = s.feed.Snapshot()
		snap.category = s.feed.Filter()
	}
	if s.toggle != nil {
		snap.toggle = s.toggle.State()
	}
	if s.cycle != nil {
		snap.lock = s.cycle.Lock()
	}
	if s.analyzer != nil {
		snap.analysis = s.analyzer.State()
	}
	if s.reports != nil {
		snap.reports = s.reports.Snapshot()
	}
	return snap
}

// Message types

type tickMsg time.Time

type changedMsg struct{}

type snapshotMsg struct {
	stats    controller.StatsSnapshot
	top      controller.FeedSnapshot
	feed     controller.FeedSnapshot
	category string
	toggle   controller.ToggleState
	lock     controller.ActionLock
	analysis controller.AnalysisState
	reports  controller.FeedSnapshot
}

// actionMsg reports the outcome of a user-initiated remote action.
type actionMsg struct {
	action string
	text   string
	err    error
}

type logsMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func snapshotCmd(src sources) tea.Cmd {
	return func() tea.Msg {
		return src.read()
	}
}

// waitForChangeCmd blocks until a controller reports a change. A closed or
// nil channel ends the loop; the tick still refreshes the screen.
func waitForChangeCmd(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return changedMsg{}
	}
}

func runCycleCmd(ctx context.Context, t *controller.Trigger) tea.Cmd {
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		_, err := t.Trigger(ctx)
		if err != nil {
			return actionMsg{action: "Analysis cycle", err: err}
		}
		return actionMsg{action: "Analysis cycle", text: cycleStartedNotice}
	}
}

func toggleBotCmd(ctx context.Context, t *controller.Toggle) tea.Cmd {
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		err := t.Toggle(ctx)
		if err != nil {
			return actionMsg{action: "Automation update", err: err}
		}
		text := "Automation stopped"
		if t.State().Confirmed {
			text = "Automation started"
		}
		return actionMsg{action: "Automation update", text: text}
	}
}

func analyzeCmd(ctx context.Context, a *controller.Analyzer, url string) tea.Cmd {
	if a == nil {
		return nil
	}
	return func() tea.Msg {
		res, err := a.Analyze(ctx, url)
		if err != nil || res == nil {
			return actionMsg{action: "Analysis", err: err}
		}
		return actionMsg{action: "Analysis", text: "Analysis complete"}
	}
}

func loadReportsCmd(ctx context.Context, r *controller.Reports) tea.Cmd {
	if r == nil {
		return nil
	}
	return func() tea.Msg {
		// Failures are kept in the reports snapshot and shown by the view.
		if err := r.Load(ctx); err != nil {
			slog.Debug("reports load failed", "error", err)
		}
		return nil
	}
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		if path == "" {
			return logsMsg{}
		}
		lines, err := logtail.Read(path, logTailLines)
		if err != nil {
			return logsMsg{err: err}
		}
		return logsMsg{entries: logtail.Parse(lines, slog.LevelDebug)}
	}
}
