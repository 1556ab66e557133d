// Package session implements the Redis-backed server-side session store:
// crypto-random opaque identifiers, a compact versioned binary record
// encoding, fixed 24-hour expiry, and idempotent destruction.
//
// # Hard guarantees
//
//   - Session ids are 128 random bits and never derivable from the
//     subject identifier. Creation uses SET NX with bounded retries so a
//     collision can never overwrite a live session.
//   - Expired means absent: Get refuses to return a record whose logical
//     expiry has passed even when Redis has not physically evicted it.
//   - Operations are single-key Redis commands, linearizable per session
//     id. A Destroy observed by the store is observed by every later Get.
//
// # What this package must NOT do
//
//   - Extend expiry on access (no sliding renewal).
//   - Store anything derivable back to a password or its hash.
//   - Surface raw Redis errors; transport failures wrap
//     [ErrRedisUnavailable].
package session
