package state

import (
	"errors"
	"reflect"
	"testing"
	"time"
)

type item struct{ ID int }

func newItemStore() *Store[[]item] {
	return NewStore[[]item]("feed", CloneSlice[item])
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	s := newItemStore()
	gen := s.Generation()

	before := time.Now()
	requested := before.Add(-time.Second)
	if !s.Begin(gen) {
		t.Fatalf("Begin(%d) = false, want true", gen)
	}
	if snap := s.Snapshot(); !snap.Loading || snap.HasData {
		t.Fatalf("snapshot after Begin = %#v, want loading without data", snap)
	}
	if !s.Update(gen, requested, []item{{ID: 1}, {ID: 2}}, nil) {
		t.Fatalf("Update returned false for live generation")
	}

	snap := s.Snapshot()
	if !snap.HasData || len(snap.Data) != 2 || snap.Data[0].ID != 1 {
		t.Fatalf("snapshot data = %#v, want 2 items", snap.Data)
	}
	if snap.Loading {
		t.Fatalf("Loading = true after the only request finished")
	}
	if snap.FetchedAt.Before(before) || !snap.RequestedAt.Equal(requested) {
		t.Fatalf("timestamps = fetched %v requested %v", snap.FetchedAt, snap.RequestedAt)
	}
	if snap.Err != nil {
		t.Fatalf("Err = %v, want nil", snap.Err)
	}

	snap.Data[0].ID = 999
	if again := s.Snapshot(); again.Data[0].ID != 1 {
		t.Fatalf("Snapshot should clone data; got id %d want 1", again.Data[0].ID)
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	s := newItemStore()
	gen := s.Generation()

	s.Update(gen, time.Now(), []item{{ID: 1}}, nil)
	prev := s.Snapshot()

	origErr := errors.New("boom")
	s.Begin(gen)
	s.Update(gen, time.Now(), nil, origErr)

	snap := s.Snapshot()
	if !snap.HasData || len(snap.Data) != 1 || snap.Data[0].ID != 1 {
		t.Fatalf("data changed on error: got %#v want %#v", snap.Data, prev.Data)
	}
	if !snap.FetchedAt.Equal(prev.FetchedAt) {
		t.Fatalf("FetchedAt moved on error")
	}
	if snap.Loading {
		t.Fatalf("Loading = true after failed request")
	}
	if snap.Err == nil || snap.Err.Error() != "boom" || !errors.Is(snap.Err, origErr) {
		t.Fatalf("Err = %v, want boom", snap.Err)
	}
	if reflect.ValueOf(snap.Err).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_StaleGenerationDiscarded(t *testing.T) {
	s := newItemStore()
	oldGen := s.Generation()
	s.Begin(oldGen)

	newGen := s.Reset("feed:Technology")
	if newGen == oldGen {
		t.Fatalf("Reset did not advance generation")
	}
	if s.Begin(oldGen) {
		t.Fatalf("Begin accepted a superseded generation")
	}

	s.Update(newGen, time.Now(), []item{{ID: 2}}, nil)
	if s.Update(oldGen, time.Now(), []item{{ID: 1}}, nil) {
		t.Fatalf("Update applied a superseded generation")
	}
	if s.Update(oldGen, time.Now(), nil, errors.New("late failure")) {
		t.Fatalf("Update applied a superseded failure")
	}

	snap := s.Snapshot()
	if snap.Key != "feed:Technology" || len(snap.Data) != 1 || snap.Data[0].ID != 2 || snap.Err != nil {
		t.Fatalf("snapshot = %#v, want only the new generation's data", snap)
	}
}

func TestStore_ResetClearsAndInvalidateKeeps(t *testing.T) {
	s := newItemStore()
	gen := s.Generation()
	s.Update(gen, time.Now(), []item{{ID: 1}}, nil)

	gen = s.Invalidate()
	if snap := s.Snapshot(); !snap.HasData || snap.Generation != gen {
		t.Fatalf("Invalidate should keep data and advance generation, got %#v", snap)
	}

	s.Reset("other")
	if snap := s.Snapshot(); snap.HasData || snap.Data != nil || snap.Err != nil {
		t.Fatalf("Reset should clear snapshot, got %#v", snap)
	}
}

func TestStore_EmptyIsNotError(t *testing.T) {
	s := newItemStore()
	gen := s.Generation()
	s.Update(gen, time.Now(), []item{}, nil)

	snap := s.Snapshot()
	if !snap.IsEmpty(func(v []item) int { return len(v) }) {
		t.Fatalf("IsEmpty = false for zero-item success")
	}
	if snap.Data == nil || snap.Err != nil {
		t.Fatalf("snapshot = %#v, want empty non-nil data and no error", snap)
	}
}

func TestStore_SeedOnlyBeforeRealData(t *testing.T) {
	s := newItemStore()
	cachedAt := time.Now().Add(-time.Hour)
	if !s.Seed([]item{{ID: 7}}, cachedAt) {
		t.Fatalf("Seed returned false on empty store")
	}
	snap := s.Snapshot()
	if !snap.Stale || !snap.HasData || !snap.FetchedAt.Equal(cachedAt) {
		t.Fatalf("seeded snapshot = %#v", snap)
	}

	s.Update(s.Generation(), time.Now(), []item{{ID: 8}}, nil)
	if s.Seed([]item{{ID: 9}}, cachedAt) {
		t.Fatalf("Seed overwrote live data")
	}
	if snap := s.Snapshot(); snap.Stale || snap.Data[0].ID != 8 {
		t.Fatalf("snapshot = %#v, want live data", snap)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	s := newItemStore()
	gen := s.Generation()

	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store reports failures")
	}

	s.Update(gen, time.Now(), nil, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: %d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(gen, time.Now(), nil, errors.New("fail 2"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 2 || !snap.IsOffline() {
		t.Fatalf("after 2 failures: %d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Update(gen, time.Now(), []item{}, nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("success should reset failures, got %d", snap.ConsecutiveFailures)
	}
}

func TestStore_OnChangeCalledOutsideLock(t *testing.T) {
	s := newItemStore()
	calls := 0
	s.OnChange(func() {
		// Reading inside the callback would deadlock if the lock were held.
		_ = s.Snapshot()
		calls++
	})
	gen := s.Generation()
	s.Begin(gen)
	s.Update(gen, time.Now(), []item{{ID: 1}}, nil)
	s.Update(gen+5, time.Now(), []item{{ID: 2}}, nil)

	if calls != 2 {
		t.Fatalf("OnChange calls = %d, want 2 (stale update must not notify)", calls)
	}
}
