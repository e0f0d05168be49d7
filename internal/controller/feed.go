package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/trendintel/internal/poller"
	"github.com/five82/trendintel/internal/state"
	"github.com/five82/trendintel/internal/trendapi"
)

// FeedSnapshot is the exposed state of a trend feed.
type FeedSnapshot = state.Snapshot[[]trendapi.TrendItem]

// FeedConfig configures a Feed.
type FeedConfig struct {
	Poller   *poller.Poller
	API      trendapi.Service
	Interval time.Duration
	Limit    int
	// Filter is the initial category; empty means trendapi.CategoryAll.
	Filter string
	// OnApplied runs after each successful poll, e.g. to persist the items.
	OnApplied func(category string, items []trendapi.TrendItem)
}

// Feed keeps a filtered trend list fresh. Changing the filter restarts the
// poll under a new generation so results for an old filter can never be
// exposed once a new one is selected.
type Feed struct {
	poller    *poller.Poller
	api       trendapi.Service
	interval  time.Duration
	limit     int
	onApplied func(string, []trendapi.TrendItem)
	store     *state.Store[[]trendapi.TrendItem]

	mu     sync.Mutex
	filter string
	sub    *poller.Subscription[[]trendapi.TrendItem]
}

// NewFeed creates an inactive Feed. Call Start when its view becomes visible.
func NewFeed(cfg FeedConfig) *Feed {
	filter := cfg.Filter
	if !trendapi.IsCategory(filter) {
		filter = trendapi.CategoryAll
	}
	return &Feed{
		poller:    cfg.Poller,
		api:       cfg.API,
		interval:  cfg.Interval,
		limit:     cfg.Limit,
		onApplied: cfg.OnApplied,
		store:     state.NewStore[[]trendapi.TrendItem](feedKey(filter), state.CloneSlice[trendapi.TrendItem]),
		filter:    filter,
	}
}

// FeedKey returns the resource key used for a category.
func FeedKey(category string) string {
	return feedKey(category)
}

func feedKey(category string) string {
	return "trends:" + category
}

// Start begins polling with the current filter. It is a no-op when already
// running.
func (f *Feed) Start() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sub != nil {
		return
	}
	f.sub = f.startLocked()
}

// Stop ends polling. The last snapshot stays readable.
func (f *Feed) Stop() {
	f.mu.Lock()
	sub := f.sub
	f.sub = nil
	f.mu.Unlock()

	sub.Stop()
}

// Active reports whether the feed is polling.
func (f *Feed) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sub != nil
}

// Filter returns the selected category.
func (f *Feed) Filter() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filter
}

// SetFilter selects a category. The snapshot is cleared and, when the feed
// is active, polling restarts for the new category.
func (f *Feed) SetFilter(category string) error {
	if !trendapi.IsCategory(category) {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if category == f.filter {
		return nil
	}
	old := f.sub
	f.sub = nil
	old.Stop()

	slog.Info("trend filter changed", "from", f.filter, "to", category)
	f.filter = category
	f.store.Reset(feedKey(category))
	if old != nil {
		f.sub = f.startLocked()
	}
	return nil
}

// Refresh fetches immediately when active.
func (f *Feed) Refresh() {
	f.mu.Lock()
	sub := f.sub
	f.mu.Unlock()
	sub.Refresh()
}

// Snapshot returns the current feed snapshot.
func (f *Feed) Snapshot() FeedSnapshot {
	return f.store.Snapshot()
}

// Seed shows cached items for category until the first poll lands. Items for
// any other category are ignored.
func (f *Feed) Seed(category string, items []trendapi.TrendItem, fetchedAt time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if category != f.filter {
		return false
	}
	return f.store.Seed(items, fetchedAt)
}

// OnChange registers a callback for every snapshot change.
func (f *Feed) OnChange(fn func()) {
	f.store.OnChange(fn)
}

func (f *Feed) startLocked() *poller.Subscription[[]trendapi.TrendItem] {
	category := f.filter
	query := trendapi.TrendQuery{Category: category, Limit: f.limit}
	return poller.Start(f.poller, f.store, poller.Config[[]trendapi.TrendItem]{
		Key:      feedKey(category),
		Interval: f.interval,
		Fetch: func(ctx context.Context) ([]trendapi.TrendItem, error) {
			return f.api.FetchTrends(ctx, query)
		},
		OnApplied: func(items []trendapi.TrendItem, _ time.Time) {
			if f.onApplied != nil {
				f.onApplied(category, items)
			}
		},
	})
}
