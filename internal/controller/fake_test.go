package controller

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/five82/trendintel/internal/poller"
	"github.com/five82/trendintel/internal/trendapi"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond
)

// fakeService is a scriptable trendapi.Service. Hooks left nil return zero
// values.
type fakeService struct {
	mu sync.Mutex

	stats    func(ctx context.Context) (*trendapi.Stats, error)
	trends   func(ctx context.Context, q trendapi.TrendQuery) ([]trendapi.TrendItem, error)
	reports  func(ctx context.Context, limit int) ([]trendapi.TrendItem, error)
	analyze  func(ctx context.Context, url string) (*trendapi.AnalysisResult, error)
	setting  func(ctx context.Context, key, value string) error
	runCycle func(ctx context.Context) (*trendapi.Ack, error)

	queries  []trendapi.TrendQuery
	settings []string
	cycles   int
}

var _ trendapi.Service = (*fakeService)(nil)

func (f *fakeService) FetchStats(ctx context.Context) (*trendapi.Stats, error) {
	if f.stats == nil {
		return &trendapi.Stats{BotActive: true}, nil
	}
	return f.stats(ctx)
}

func (f *fakeService) FetchTrends(ctx context.Context, q trendapi.TrendQuery) ([]trendapi.TrendItem, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.trends == nil {
		return []trendapi.TrendItem{}, nil
	}
	return f.trends(ctx, q)
}

func (f *fakeService) FetchReports(ctx context.Context, limit int) ([]trendapi.TrendItem, error) {
	if f.reports == nil {
		return []trendapi.TrendItem{}, nil
	}
	return f.reports(ctx, limit)
}

func (f *fakeService) Analyze(ctx context.Context, url string) (*trendapi.AnalysisResult, error) {
	if f.analyze == nil {
		return &trendapi.AnalysisResult{}, nil
	}
	return f.analyze(ctx, url)
}

func (f *fakeService) WriteSetting(ctx context.Context, key, value string) error {
	f.mu.Lock()
	f.settings = append(f.settings, key+"="+value)
	f.mu.Unlock()
	if f.setting == nil {
		return nil
	}
	return f.setting(ctx, key, value)
}

func (f *fakeService) RunCycle(ctx context.Context) (*trendapi.Ack, error) {
	f.mu.Lock()
	f.cycles++
	f.mu.Unlock()
	if f.runCycle == nil {
		return &trendapi.Ack{Status: "started"}, nil
	}
	return f.runCycle(ctx)
}

func (f *fakeService) settingWrites() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.settings...)
}

func (f *fakeService) trendQueries() []trendapi.TrendQuery {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]trendapi.TrendQuery(nil), f.queries...)
}

func (f *fakeService) cycleCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cycles
}

func newTestPoller(t *testing.T) *poller.Poller {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	p := poller.New(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() {
		cancel()
		p.Wait()
	})
	return p
}

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}
