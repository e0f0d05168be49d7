package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/five82/trendintel/internal/cache"
	"github.com/five82/trendintel/internal/config"
	"github.com/five82/trendintel/internal/controller"
	"github.com/five82/trendintel/internal/logging"
	"github.com/five82/trendintel/internal/poller"
	"github.com/five82/trendintel/internal/prefs"
	"github.com/five82/trendintel/internal/trendapi"
	"github.com/five82/trendintel/internal/ui"
)

// Options configure the trendintel application.
type Options struct {
	ConfigPath string
	PrefsPath  string        // empty uses default ~/.config/trendintel/prefs.toml
	PollEvery  time.Duration // zero uses the configured interval
}

const uiRefresh = time.Second

// LoadConfig reads the configuration and applies command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = opts.PollEvery
	}
	return cfg, nil
}

// NewClient builds the service client for cfg.
func NewClient(cfg config.Config) (*trendapi.Client, error) {
	client, err := trendapi.NewClient(cfg.APIURL, trendapi.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	return client, nil
}

// Run boots the dashboard until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return err
	}

	logger, closer, err := logging.Setup(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer func() { _ = closer.Close() }()
	slog.SetDefault(logger)

	client, err := NewClient(cfg)
	if err != nil {
		return err
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	snapshots, err := cache.Open(cfg.CacheDir, client.BaseURL())
	if err != nil {
		logger.Warn("snapshot cache unavailable, continuing without it", "error", err)
		snapshots, _ = cache.Open("", client.BaseURL())
	}
	defer func() { _ = snapshots.Close() }()

	logger.Info("trendintel starting",
		"api_url", client.BaseURL(),
		"poll_interval", cfg.PollInterval,
		"cooldown", cfg.Cooldown,
	)

	s := newSession(ctx, cfg, client, snapshots, userPrefs.Category, logger)
	defer s.close()

	return ui.Run(ui.Options{
		Context:   ctx,
		Stats:     s.stats,
		TopTrend:  s.topTrend,
		Feed:      s.feed,
		Toggle:    s.toggle,
		Cycle:     s.cycle,
		Analyzer:  s.analyzer,
		Reports:   s.reports,
		Changes:   s.changes,
		APIURL:    client.BaseURL(),
		LogPath:   cfg.LogFile,
		RefreshUI: uiRefresh,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}

// session owns the controllers for one dashboard run.
type session struct {
	poller   *poller.Poller
	cancel   context.CancelFunc
	stats    *controller.Stats
	topTrend *controller.Feed
	feed     *controller.Feed
	toggle   *controller.Toggle
	cycle    *controller.Trigger
	analyzer *controller.Analyzer
	reports  *controller.Reports
	changes  chan struct{}
}

func newSession(ctx context.Context, cfg config.Config, api trendapi.Service, snapshots *cache.Cache, category string, logger *slog.Logger) *session {
	pollCtx, cancel := context.WithCancel(ctx)
	p := poller.New(pollCtx, logger)

	s := &session{
		poller:  p,
		cancel:  cancel,
		changes: make(chan struct{}, 1),
	}

	s.toggle = controller.NewToggle(api, trendapi.SettingBotActive, true)
	s.stats = controller.NewStats(controller.StatsConfig{
		Poller:   p,
		API:      api,
		Interval: cfg.PollInterval,
		Toggle:   s.toggle,
		OnApplied: func(stats *trendapi.Stats) {
			logCacheError(logger, "stats", snapshots.SaveStats(stats))
		},
	})
	s.topTrend = controller.NewFeed(controller.FeedConfig{
		Poller:   p,
		API:      api,
		Interval: cfg.PollInterval,
		Limit:    1,
	})
	s.feed = controller.NewFeed(controller.FeedConfig{
		Poller:   p,
		API:      api,
		Interval: cfg.PollInterval,
		Limit:    cfg.FeedLimit,
		Filter:   category,
		OnApplied: func(category string, items []trendapi.TrendItem) {
			logCacheError(logger, "trends", snapshots.SaveTrends(category, items))
		},
	})
	s.cycle = controller.NewTrigger("run-cycle", func(ctx context.Context) (string, error) {
		ack, err := api.RunCycle(ctx)
		if err != nil {
			return "", err
		}
		if ack == nil {
			return "", nil
		}
		return ack.Message, nil
	}, controller.WithCooldown(cfg.Cooldown))
	s.analyzer = controller.NewAnalyzer(api)
	s.reports = controller.NewReports(controller.ReportsConfig{
		API:   api,
		Limit: cfg.ReportsLimit,
		OnApplied: func(items []trendapi.TrendItem) {
			logCacheError(logger, "reports", snapshots.SaveReports(items))
		},
	})

	s.seed(snapshots)

	notify := s.notify
	s.stats.OnChange(notify)
	s.topTrend.OnChange(notify)
	s.feed.OnChange(notify)
	s.toggle.OnChange(notify)
	s.cycle.OnChange(notify)
	s.analyzer.OnChange(notify)
	s.reports.OnChange(notify)

	s.stats.Start()
	return s
}

// seed shows the last cached values until the first fetch lands.
func (s *session) seed(snapshots *cache.Cache) {
	if stats, at, ok := snapshots.LoadStats(); ok {
		s.stats.Seed(stats, at)
	}
	if items, at, ok := snapshots.LoadTrends(trendapi.CategoryAll); ok && len(items) > 0 {
		s.topTrend.Seed(trendapi.CategoryAll, items[:1], at)
	}
	category := s.feed.Filter()
	if items, at, ok := snapshots.LoadTrends(category); ok {
		s.feed.Seed(category, items, at)
	}
	if items, at, ok := snapshots.LoadReports(); ok {
		s.reports.Seed(items, at)
	}
}

// notify coalesces change notifications; the UI re-reads every controller
// on each one.
func (s *session) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

func (s *session) close() {
	s.stats.Stop()
	s.topTrend.Stop()
	s.feed.Stop()
	s.reports.Discard()
	s.cancel()
	s.poller.Wait()
}

func logCacheError(logger *slog.Logger, resource string, err error) {
	if err == nil || errors.Is(err, cache.ErrClosed) {
		return
	}
	logger.Warn("cache write failed", "resource", resource, "error", err)
}

// Describe renders err for command-line output.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	msg := trendapi.Describe(err)
	if kind := trendapi.Kind(err); kind == trendapi.KindNetwork {
		return msg + " (" + strings.TrimSpace(err.Error()) + ")"
	}
	return msg
}
