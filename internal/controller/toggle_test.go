package controller

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/trendintel/internal/trendapi"
)

func TestToggle_SuccessConfirmsNegation(t *testing.T) {
	api := &fakeService{}
	tg := NewToggle(api, trendapi.SettingBotActive, true)

	require.NoError(t, tg.Toggle(context.Background()))

	st := tg.State()
	assert.Equal(t, ToggleIdle, st.Phase)
	assert.False(t, st.Confirmed)
	assert.False(t, st.Display())
	assert.True(t, st.Known)
	assert.NoError(t, st.Err)
	assert.Equal(t, []string{"bot_active=0"}, api.settingWrites())
}

func TestToggle_SecondToggleWhilePendingIsIgnored(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeService{
		setting: func(ctx context.Context, key, value string) error {
			close(started)
			<-release
			return nil
		},
	}
	tg := NewToggle(api, trendapi.SettingBotActive, true)

	done := make(chan error, 1)
	go func() { done <- tg.Toggle(context.Background()) }()
	<-started

	st := tg.State()
	assert.True(t, st.Pending())
	assert.False(t, st.Display(), "optimistic value shown while pending")
	assert.True(t, st.Confirmed)

	assert.ErrorIs(t, tg.Toggle(context.Background()), ErrTogglePending)

	close(release)
	require.NoError(t, <-done)
	assert.Len(t, api.settingWrites(), 1)
	assert.False(t, tg.State().Display())
}

func TestToggle_FailureRollsBack(t *testing.T) {
	writeErr := &trendapi.NetworkError{Op: "settings", Err: errors.New("connection refused")}
	api := &fakeService{
		setting: func(ctx context.Context, key, value string) error { return writeErr },
	}
	tg := NewToggle(api, trendapi.SettingBotActive, false)

	err := tg.Toggle(context.Background())
	require.ErrorIs(t, err, writeErr)

	st := tg.State()
	assert.Equal(t, ToggleRolledBack, st.Phase)
	assert.False(t, st.Pending())
	assert.False(t, st.Confirmed)
	assert.False(t, st.Display())
	assert.ErrorIs(t, st.Err, writeErr)
	assert.Equal(t, []string{"bot_active=1"}, api.settingWrites())

	// A retry is allowed after a rollback.
	require.ErrorIs(t, tg.Toggle(context.Background()), writeErr)
	assert.Len(t, api.settingWrites(), 2)
}

func TestToggle_ReconcileIgnoresObservationsBeforeWrite(t *testing.T) {
	clock := newFakeClock()
	tg := NewToggle(&fakeService{}, trendapi.SettingBotActive, true)
	tg.now = clock.Now

	before := clock.Now()
	clock.Advance(time.Second)
	require.NoError(t, tg.Toggle(context.Background()))
	require.False(t, tg.State().Confirmed)

	assert.False(t, tg.Reconcile(true, before), "stale observation applied")
	assert.False(t, tg.State().Confirmed)

	clock.Advance(time.Second)
	assert.True(t, tg.Reconcile(true, clock.Now()))
	assert.True(t, tg.State().Confirmed)
	assert.False(t, tg.Reconcile(true, clock.Now()), "unchanged value reported as change")
}

func TestToggle_ReconcileIgnoredWhilePending(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	api := &fakeService{
		setting: func(ctx context.Context, key, value string) error {
			close(started)
			<-release
			return nil
		},
	}
	tg := NewToggle(api, trendapi.SettingBotActive, true)

	done := make(chan error, 1)
	go func() { done <- tg.Toggle(context.Background()) }()
	<-started

	assert.False(t, tg.Reconcile(true, time.Now()))
	assert.True(t, tg.State().Pending())

	close(release)
	require.NoError(t, <-done)
	assert.False(t, tg.State().Confirmed)
}

func TestToggle_OnChangeFiresForEachTransition(t *testing.T) {
	tg := NewToggle(&fakeService{}, trendapi.SettingBotActive, true)
	var calls int
	tg.OnChange(func() { calls++ })

	require.NoError(t, tg.Toggle(context.Background()))
	assert.Equal(t, 2, calls)
}

func TestTogglePhaseString(t *testing.T) {
	assert.Equal(t, "idle", ToggleIdle.String())
	assert.Equal(t, "pending", TogglePending.String())
	assert.Equal(t, "rolled back", ToggleRolledBack.String())
}
