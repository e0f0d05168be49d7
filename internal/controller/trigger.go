package controller

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultCooldown is how long an action stays locked after it is dispatched.
const DefaultCooldown = 5 * time.Second

// ActionFunc performs a one-shot remote action and returns a user-facing
// acknowledgement.
type ActionFunc func(ctx context.Context) (string, error)

// ActionLock is the observable state of a Trigger.
type ActionLock struct {
	Locked   bool
	UnlockAt time.Time
	// LastMessage is the acknowledgement of the most recent successful call.
	LastMessage string
	Err         error
	LastRunAt   time.Time
}

// TriggerOption customises a Trigger.
type TriggerOption func(*Trigger)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) TriggerOption {
	return func(t *Trigger) {
		if now != nil {
			t.now = now
		}
	}
}

// WithCooldown overrides DefaultCooldown.
func WithCooldown(d time.Duration) TriggerOption {
	return func(t *Trigger) {
		if d > 0 {
			t.cooldown = d
		}
	}
}

// Trigger dispatches an action at most once per cooldown window. The lock is
// time-based: it opens when the cooldown elapses whether or not the request
// has completed.
type Trigger struct {
	name     string
	action   ActionFunc
	cooldown time.Duration
	now      func() time.Time

	mu       sync.Mutex
	unlockAt time.Time
	lastMsg  string
	lastErr  error
	lastRun  time.Time
	onChange func()
}

// NewTrigger creates a Trigger for action. name is used in logs.
func NewTrigger(name string, action ActionFunc, opts ...TriggerOption) *Trigger {
	t := &Trigger{
		name:     name,
		action:   action,
		cooldown: DefaultCooldown,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// OnChange registers a callback for every lock change.
func (t *Trigger) OnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// Lock returns the current lock state, derived from the clock.
func (t *Trigger) Lock() ActionLock {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ActionLock{
		Locked:      t.now().Before(t.unlockAt),
		UnlockAt:    t.unlockAt,
		LastMessage: t.lastMsg,
		Err:         t.lastErr,
		LastRunAt:   t.lastRun,
	}
}

// Cooldown returns the configured lock duration.
func (t *Trigger) Cooldown() time.Duration {
	return t.cooldown
}

// Trigger runs the action unless the lock is held, in which case it returns
// ErrBusy and nothing is sent. The lock starts at dispatch time.
func (t *Trigger) Trigger(ctx context.Context) (string, error) {
	t.mu.Lock()
	now := t.now()
	if now.Before(t.unlockAt) {
		t.mu.Unlock()
		slog.Debug("action rejected while locked", "action", t.name, "unlock_at", t.unlockAt)
		return "", ErrBusy
	}
	t.unlockAt = now.Add(t.cooldown)
	t.lastRun = now
	t.lastErr = nil
	fn := t.onChange
	t.mu.Unlock()
	notify(fn)

	slog.Info("action dispatched", "action", t.name)
	msg, err := t.action(ctx)

	t.mu.Lock()
	if err != nil {
		t.lastErr = err
	} else {
		t.lastMsg = msg
	}
	fn = t.onChange
	t.mu.Unlock()
	notify(fn)

	if err != nil {
		slog.Warn("action failed", "action", t.name, "error", err)
		return "", err
	}
	return msg, nil
}
