package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/trendintel/internal/state"
)

// DefaultInterval is the refresh cadence used when a subscription asks for none.
const DefaultInterval = 5 * time.Second

// FetchFunc retrieves the current value of a remote resource.
type FetchFunc[T any] func(ctx context.Context) (T, error)

// Poller owns the goroutines of all subscriptions started from it.
type Poller struct {
	ctx    context.Context
	logger *slog.Logger
	wg     sync.WaitGroup
}

// New creates a Poller whose subscriptions end when ctx is cancelled.
func New(ctx context.Context, logger *slog.Logger) *Poller {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{ctx: ctx, logger: logger}
}

// Wait blocks until every fetch goroutine started by p has returned.
func (p *Poller) Wait() {
	p.wg.Wait()
}

// Config describes one recurring fetch.
type Config[T any] struct {
	Key      string
	Interval time.Duration
	Fetch    FetchFunc[T]
	// OnApplied runs after a successful result was written to the store.
	OnApplied func(data T, requestedAt time.Time)
}

// Subscription is one active recurring-fetch loop.
type Subscription[T any] struct {
	Key      string
	Interval time.Duration

	store     *state.Store[T]
	fetch     FetchFunc[T]
	onApplied func(T, time.Time)
	logger    *slog.Logger
	gen       uint64

	ctx     context.Context
	cancel  context.CancelFunc
	ticker  *time.Ticker
	refresh chan struct{}

	mu        sync.Mutex
	cancelled bool
}

// Start issues one fetch immediately and then one per interval until the
// subscription is stopped. Results go to store under a fresh generation.
// A slow fetch delays the next one; at most one request per subscription is
// in flight.
func Start[T any](p *Poller, store *state.Store[T], cfg Config[T]) *Subscription[T] {
	interval := cfg.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(p.ctx)
	sub := &Subscription[T]{
		Key:       cfg.Key,
		Interval:  interval,
		store:     store,
		fetch:     cfg.Fetch,
		onApplied: cfg.OnApplied,
		logger:    p.logger.With("resource", cfg.Key),
		gen:       store.Invalidate(),
		ctx:       ctx,
		cancel:    cancel,
		ticker:    time.NewTicker(interval),
		refresh:   make(chan struct{}, 1),
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer sub.ticker.Stop()

		for {
			sub.fetchOnce()
			select {
			case <-ctx.Done():
				return
			case <-sub.ticker.C:
			case <-sub.refresh:
			}
		}
	}()

	sub.logger.Debug("poll started", "interval", interval, "generation", sub.gen)
	return sub
}

// Stop cancels the subscription. It is synchronous and idempotent: the timer
// is cleared and the generation advanced before it returns, so a response
// still in flight is discarded on arrival.
func (s *Subscription[T]) Stop() {
	if s == nil {
		return
	}
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	s.mu.Unlock()

	s.ticker.Stop()
	s.store.Retire(s.gen)
	s.cancel()
	s.logger.Debug("poll stopped", "generation", s.gen)
}

// Refresh requests an extra fetch in the current generation. It never queues
// more than one pending refresh.
func (s *Subscription[T]) Refresh() {
	if s == nil || s.Cancelled() {
		return
	}
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Cancelled reports whether Stop has been called.
func (s *Subscription[T]) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Generation returns the generation stamped on this subscription's requests.
func (s *Subscription[T]) Generation() uint64 {
	return s.gen
}

// Snapshot returns the store's current snapshot.
func (s *Subscription[T]) Snapshot() state.Snapshot[T] {
	return s.store.Snapshot()
}

func (s *Subscription[T]) fetchOnce() {
	if !s.store.Begin(s.gen) {
		return
	}
	requestedAt := time.Now()
	data, err := s.fetch(s.ctx)

	if !s.store.Update(s.gen, requestedAt, data, err) {
		s.logger.Debug("discarded stale response", "generation", s.gen, "error", err)
		return
	}
	if err != nil {
		s.logger.Warn("poll failed", "error", err)
		return
	}
	if s.onApplied != nil {
		s.onApplied(data, requestedAt)
	}
}
