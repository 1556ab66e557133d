// Package rate provides the Redis-backed fixed-window request limiter
// used by the gateway's rate-check pipeline stage.
//
// # Window semantics
//
// Counters are keyed rl:<route>:<ip>:<bucket> where
// bucket = floor(unixNow / windowSeconds). Each request is one atomic
// INCR; the first hit in a window sets TTL = window so stale buckets
// expire on their own. Fixed windows admit a double burst straddling a
// boundary; that limitation is documented and accepted.
//
// # What this package must NOT do
//
//   - Decide fail-open vs fail-closed — the policy lives with the caller.
//   - Be imported from outside the authgate module.
package rate
