package state

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is an immutable point-in-time view of one polled resource.
type Snapshot[T any] struct {
	Key                 string
	Data                T
	HasData             bool // false means no successful fetch yet
	Loading             bool
	Stale               bool // Data was restored from the local cache and not yet confirmed
	Err                 error
	FetchedAt           time.Time // last successful fetch
	RequestedAt         time.Time // issue time of the request behind Data
	LastUpdated         time.Time // last applied result, success or failure
	ConsecutiveFailures int
	Generation          uint64
}

// IsOffline returns true when the resource has been unreachable for multiple polls.
func (s Snapshot[T]) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// IsEmpty reports a successful fetch that returned nothing. It is distinct
// from both "not loaded yet" and "failed".
func (s Snapshot[T]) IsEmpty(length func(T) int) bool {
	return s.HasData && length(s.Data) == 0
}

// Store owns the snapshot of one resource and fences results by generation.
// A result stamped with a generation other than the live one is discarded.
type Store[T any] struct {
	mu       sync.RWMutex
	snapshot Snapshot[T]
	inFlight int
	clone    func(T) T
	onChange func()
}

// NewStore creates a Store. clone copies Data on every read; nil means T is
// copied by value.
func NewStore[T any](key string, clone func(T) T) *Store[T] {
	return &Store[T]{
		snapshot: Snapshot[T]{Key: key},
		clone:    clone,
	}
}

// OnChange registers fn to be called after every applied mutation. fn runs
// outside the store lock.
func (s *Store[T]) OnChange(fn func()) {
	s.mu.Lock()
	s.onChange = fn
	s.mu.Unlock()
}

// Generation returns the live generation.
func (s *Store[T]) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Generation
}

// Reset starts a new generation under key with an empty snapshot. Results
// stamped with any earlier generation will be discarded.
func (s *Store[T]) Reset(key string) uint64 {
	s.mu.Lock()
	gen := s.snapshot.Generation + 1
	s.snapshot = Snapshot[T]{Key: key, Generation: gen}
	s.inFlight = 0
	fn := s.onChange
	s.mu.Unlock()

	notify(fn)
	return gen
}

// Invalidate bumps the generation while keeping the current data visible.
func (s *Store[T]) Invalidate() uint64 {
	s.mu.Lock()
	s.snapshot.Generation++
	s.snapshot.Loading = false
	s.inFlight = 0
	gen := s.snapshot.Generation
	fn := s.onChange
	s.mu.Unlock()

	notify(fn)
	return gen
}

// Retire advances the generation only if gen is still live, so stopping an
// old producer never orphans a newer one. It reports whether it advanced.
func (s *Store[T]) Retire(gen uint64) bool {
	s.mu.Lock()
	if gen != s.snapshot.Generation {
		s.mu.Unlock()
		return false
	}
	s.snapshot.Generation++
	s.snapshot.Loading = false
	s.inFlight = 0
	fn := s.onChange
	s.mu.Unlock()

	notify(fn)
	return true
}

// Begin records a request issued for gen. It returns false when gen is no
// longer live, in which case the request should not be sent.
func (s *Store[T]) Begin(gen uint64) bool {
	s.mu.Lock()
	if gen != s.snapshot.Generation {
		s.mu.Unlock()
		return false
	}
	s.inFlight++
	s.snapshot.Loading = true
	fn := s.onChange
	s.mu.Unlock()

	notify(fn)
	return true
}

// Update applies the result of a request issued at requestedAt for gen. On
// error the previous data is kept and the error recorded. It reports whether
// the result was applied.
func (s *Store[T]) Update(gen uint64, requestedAt time.Time, data T, err error) bool {
	s.mu.Lock()
	if gen != s.snapshot.Generation {
		s.mu.Unlock()
		return false
	}

	now := time.Now()
	if s.inFlight > 0 {
		s.inFlight--
	}
	s.snapshot.Loading = s.inFlight > 0
	s.snapshot.LastUpdated = now

	if err != nil {
		s.snapshot.Err = err
		s.snapshot.ConsecutiveFailures++
	} else {
		s.snapshot.Data = s.copyData(data)
		s.snapshot.HasData = true
		s.snapshot.Stale = false
		s.snapshot.Err = nil
		s.snapshot.FetchedAt = now
		s.snapshot.RequestedAt = requestedAt
		s.snapshot.ConsecutiveFailures = 0
	}
	fn := s.onChange
	s.mu.Unlock()

	notify(fn)
	return true
}

// Seed installs previously persisted data as a stale snapshot. It is ignored
// once real data has arrived.
func (s *Store[T]) Seed(data T, fetchedAt time.Time) bool {
	s.mu.Lock()
	if s.snapshot.HasData {
		s.mu.Unlock()
		return false
	}
	s.snapshot.Data = s.copyData(data)
	s.snapshot.HasData = true
	s.snapshot.Stale = true
	s.snapshot.FetchedAt = fetchedAt
	fn := s.onChange
	s.mu.Unlock()

	notify(fn)
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store[T]) Snapshot() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Data = s.copyData(s.snapshot.Data)
	if s.snapshot.Err != nil {
		snap.Err = fmt.Errorf("%w", s.snapshot.Err)
	}
	return snap
}

func (s *Store[T]) copyData(data T) T {
	if s.clone == nil {
		return data
	}
	return s.clone(data)
}

func notify(fn func()) {
	if fn != nil {
		fn()
	}
}

// CloneSlice copies items, keeping an empty non-nil slice distinct from nil.
func CloneSlice[E any](items []E) []E {
	if items == nil {
		return nil
	}
	dup := make([]E, len(items))
	copy(dup, items)
	return dup
}

// ClonePtr copies the value behind p.
func ClonePtr[E any](p *E) *E {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
