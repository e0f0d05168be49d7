// Package poller repeatedly fetches remote resources into state stores.
//
// Start launches one goroutine per subscription: it fetches immediately, then
// once per interval, and writes every result into a state.Store stamped with
// the subscription's generation. Failures are recorded in the snapshot and
// polling continues; there is no backoff because the service is expected to
// come back on its own and the dashboard should notice promptly.
//
// Stop is synchronous and idempotent. It clears the ticker, retires the
// generation (so a late response is discarded by the store) and cancels the
// subscription's context, which aborts the HTTP request where the transport
// honours it.
package poller
