package controller

import (
	"context"
	"log/slog"
	"time"

	"github.com/five82/trendintel/internal/state"
	"github.com/five82/trendintel/internal/trendapi"
)

// ReportsKey is the resource key of the reports snapshot.
const ReportsKey = "reports"

// DefaultReportsLimit is the number of reports requested when none is configured.
const DefaultReportsLimit = 20

// ReportsConfig configures a Reports controller.
type ReportsConfig struct {
	API       trendapi.Service
	Limit     int
	OnApplied func([]trendapi.TrendItem)
}

// Reports loads the list of dispatched reports on demand. It does not poll.
type Reports struct {
	cfg   ReportsConfig
	store *state.Store[[]trendapi.TrendItem]
}

// NewReports creates a Reports controller.
func NewReports(cfg ReportsConfig) *Reports {
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultReportsLimit
	}
	return &Reports{
		cfg:   cfg,
		store: state.NewStore[[]trendapi.TrendItem](ReportsKey, state.CloneSlice[trendapi.TrendItem]),
	}
}

// Load fetches the reports once. The previous list stays visible when it
// fails. A Discard during the request drops its result.
func (r *Reports) Load(ctx context.Context) error {
	gen := r.store.Generation()
	if !r.store.Begin(gen) {
		return nil
	}
	requestedAt := time.Now()
	items, err := r.cfg.API.FetchReports(ctx, r.cfg.Limit)
	if !r.store.Update(gen, requestedAt, items, err) {
		slog.Debug("discarded stale reports", "generation", gen)
		return nil
	}
	if err != nil {
		slog.Warn("reports load failed", "error", err)
		return err
	}
	if r.cfg.OnApplied != nil {
		r.cfg.OnApplied(items)
	}
	return nil
}

// Discard orphans any load in flight, keeping the visible list.
func (r *Reports) Discard() {
	r.store.Invalidate()
}

// Snapshot returns the current reports snapshot.
func (r *Reports) Snapshot() FeedSnapshot {
	return r.store.Snapshot()
}

// Seed shows cached reports until the first load lands.
func (r *Reports) Seed(items []trendapi.TrendItem, fetchedAt time.Time) bool {
	return r.store.Seed(items, fetchedAt)
}

// OnChange registers a callback for every snapshot change.
func (r *Reports) OnChange(fn func()) {
	r.store.OnChange(fn)
}
