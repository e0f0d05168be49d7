// Package state provides the generation-fenced snapshot store shared by the
// pollers, controllers and the UI.
//
// # Overview
//
// Each polled resource (stats, the trend feed, reports) owns exactly one
// Store. The producer side (a poller subscription or a controller) writes
// results into it; the UI only ever reads copies via Snapshot.
//
//	Producer (poller):               Consumer (UI):
//	┌──────────────────┐            ┌──────────────────┐
//	│ gen := Begin()   │            │                  │
//	│ fetch(ctx)       │            │                  │
//	│ Update(gen, ...) │───────────→│ Snapshot()       │
//	│ repeat...        │  (mutex)   │ render           │
//	└──────────────────┘            └──────────────────┘
//
// # Generation Fencing
//
// Every request is stamped with the generation that was live when it was
// issued. Reset (new filter) and Invalidate (stopped subscription) advance
// the generation, so a response that arrives later is dropped by Update
// instead of overwriting newer state. This is the only ordering mechanism;
// within a generation results are applied in arrival order.
//
// # Update Semantics
//
//	// Success: replace data wholesale
//	store.Update(gen, requestedAt, items, nil)
//	→ Data = items, HasData = true, Err = nil, ConsecutiveFailures = 0
//
//	// Failure: keep last-known-good data
//	store.Update(gen, requestedAt, nil, err)
//	→ Data unchanged, Err = err, ConsecutiveFailures++
//
// A successful fetch of zero items yields HasData with an empty Data, which
// is distinct from "not loaded yet" (HasData false) and from a failure.
//
// # Seeding
//
// Seed installs data restored from the on-disk cache and marks the snapshot
// Stale until the first live result arrives.
package state
