package controller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/five82/trendintel/internal/trendapi"
)

// TogglePhase is the lifecycle of an optimistic boolean change.
type TogglePhase int

const (
	ToggleIdle TogglePhase = iota
	TogglePending
	ToggleRolledBack
)

func (p TogglePhase) String() string {
	switch p {
	case TogglePending:
		return "pending"
	case ToggleRolledBack:
		return "rolled back"
	default:
		return "idle"
	}
}

// ToggleState is the observable state of a remote boolean setting.
type ToggleState struct {
	Phase      TogglePhase
	Confirmed  bool // last value the service acknowledged or reported
	Optimistic bool // value shown while a write is pending
	Known      bool // Confirmed came from the service rather than the default
	Err        error
	UpdatedAt  time.Time
}

// Pending reports whether a write is in flight.
func (s ToggleState) Pending() bool {
	return s.Phase == TogglePending
}

// Display returns the value to show: the optimistic value while pending,
// otherwise the confirmed one.
func (s ToggleState) Display() bool {
	if s.Phase == TogglePending {
		return s.Optimistic
	}
	return s.Confirmed
}

// Toggle flips a remote boolean setting optimistically and rolls back when
// the write fails.
type Toggle struct {
	api trendapi.Service
	key string
	now func() time.Time

	mu          sync.Mutex
	state       ToggleState
	lastWriteAt time.Time
	onChange    func()
}

// NewToggle creates a Toggle for the setting key. initial is displayed until
// the first observation arrives.
func NewToggle(api trendapi.Service, key string, initial bool) *Toggle {
	return &Toggle{
		api:   api,
		key:   key,
		now:   time.Now,
		state: ToggleState{Confirmed: initial, Optimistic: initial},
	}
}

// OnChange registers a callback for every state change.
func (t *Toggle) OnChange(fn func()) {
	t.mu.Lock()
	t.onChange = fn
	t.mu.Unlock()
}

// State returns the current toggle state.
func (t *Toggle) State() ToggleState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Toggle writes the negation of the confirmed value. The displayed value
// flips immediately; on failure it reverts and the error is recorded. A
// second call while a write is pending returns ErrTogglePending without
// issuing another write.
func (t *Toggle) Toggle(ctx context.Context) error {
	t.mu.Lock()
	if t.state.Phase == TogglePending {
		t.mu.Unlock()
		return ErrTogglePending
	}
	target := !t.state.Confirmed
	t.state.Phase = TogglePending
	t.state.Optimistic = target
	t.state.Err = nil
	t.state.UpdatedAt = t.now()
	fn := t.onChange
	t.mu.Unlock()
	notify(fn)

	slog.Info("writing setting", "key", t.key, "value", target)
	err := t.api.WriteSetting(ctx, t.key, trendapi.BoolSetting(target))

	t.mu.Lock()
	now := t.now()
	t.state.UpdatedAt = now
	if err != nil {
		t.state.Phase = ToggleRolledBack
		t.state.Optimistic = t.state.Confirmed
		t.state.Err = err
	} else {
		t.state.Phase = ToggleIdle
		t.state.Confirmed = target
		t.state.Known = true
		t.lastWriteAt = now
	}
	fn = t.onChange
	t.mu.Unlock()
	notify(fn)

	if err != nil {
		slog.Warn("setting write failed, rolled back", "key", t.key, "error", err)
	}
	return err
}

// Reconcile records a value reported by the service for a request issued at
// observedAt. It is ignored while a write is pending and when the request
// predates the last successful write, since such a report may not include
// it. It reports whether the state changed.
func (t *Toggle) Reconcile(value bool, observedAt time.Time) bool {
	t.mu.Lock()
	if t.state.Phase == TogglePending || observedAt.Before(t.lastWriteAt) {
		t.mu.Unlock()
		return false
	}
	if t.state.Known && t.state.Confirmed == value {
		t.mu.Unlock()
		return false
	}
	t.state.Confirmed = value
	t.state.Optimistic = value
	t.state.Known = true
	t.state.UpdatedAt = t.now()
	fn := t.onChange
	t.mu.Unlock()
	notify(fn)
	return true
}

func notify(fn func()) {
	if fn != nil {
		fn()
	}
}
