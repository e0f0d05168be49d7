package controller

import (
	"sync"
	"time"

	"github.com/five82/trendintel/internal/poller"
	"github.com/five82/trendintel/internal/state"
	"github.com/five82/trendintel/internal/trendapi"
)

// StatsKey is the resource key of the stats snapshot.
const StatsKey = "stats"

// StatsSnapshot is the exposed state of the stats resource.
type StatsSnapshot = state.Snapshot[*trendapi.Stats]

// StatsConfig configures a Stats controller.
type StatsConfig struct {
	Poller   *poller.Poller
	API      trendapi.Service
	Interval time.Duration
	// Toggle, when set, is reconciled with bot_active on every successful poll.
	Toggle    *Toggle
	OnApplied func(*trendapi.Stats)
}

// Stats polls the aggregate counters. Each applied result also reconciles the
// automation toggle.
type Stats struct {
	cfg   StatsConfig
	store *state.Store[*trendapi.Stats]

	mu  sync.Mutex
	sub *poller.Subscription[*trendapi.Stats]
}

// NewStats creates an inactive Stats controller.
func NewStats(cfg StatsConfig) *Stats {
	return &Stats{
		cfg:   cfg,
		store: state.NewStore[*trendapi.Stats](StatsKey, state.ClonePtr[trendapi.Stats]),
	}
}

// Start begins polling. It is a no-op when already running.
func (s *Stats) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		return
	}
	s.sub = poller.Start(s.cfg.Poller, s.store, poller.Config[*trendapi.Stats]{
		Key:      StatsKey,
		Interval: s.cfg.Interval,
		Fetch:    s.cfg.API.FetchStats,
		OnApplied: func(stats *trendapi.Stats, requestedAt time.Time) {
			if stats == nil {
				return
			}
			if s.cfg.Toggle != nil {
				s.cfg.Toggle.Reconcile(stats.BotActive, requestedAt)
			}
			if s.cfg.OnApplied != nil {
				s.cfg.OnApplied(stats)
			}
		},
	})
}

// Stop ends polling.
func (s *Stats) Stop() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.mu.Unlock()
	sub.Stop()
}

// Refresh fetches immediately when active.
func (s *Stats) Refresh() {
	s.mu.Lock()
	sub := s.sub
	s.mu.Unlock()
	sub.Refresh()
}

// Snapshot returns the current stats snapshot.
func (s *Stats) Snapshot() StatsSnapshot {
	return s.store.Snapshot()
}

// Seed shows cached stats until the first poll lands.
func (s *Stats) Seed(stats *trendapi.Stats, fetchedAt time.Time) bool {
	if stats == nil {
		return false
	}
	return s.store.Seed(stats, fetchedAt)
}

// OnChange registers a callback for every snapshot change.
func (s *Stats) OnChange(fn func()) {
	s.store.OnChange(fn)
}
