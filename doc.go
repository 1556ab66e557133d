// Package authgate is the credential, session, and authorization engine
// behind an authentication gateway: Argon2id password verification,
// stateless HS256 bearer tokens, Redis-backed sessions with CSRF
// tokens, fixed-window rate limiting, and a pure role policy, composed
// into an HTTP pipeline by the middleware subpackage.
//
// The package is designed for concurrent server workloads: Engine
// methods are safe to call from multiple goroutines after construction
// through [Builder.Build].
//
// # Architecture boundaries
//
// authgate is the public surface. It exposes [Engine], [Builder],
// [Config], [Principal], and the sentinel error taxonomy. Counter
// plumbing, audit dispatch, and the limiter live under internal/ and
// are never exported; HTTP semantics live in the middleware subpackage.
//
// # What this package must NOT do
//
//   - Own user persistence — credential records come from the caller's
//     [UserProvider].
//   - Log or serialize plaintext passwords or password hashes anywhere,
//     including audit events and error strings.
//   - Surface internal store errors verbatim across the HTTP boundary.
//
// # Revocation stance
//
// Bearer tokens have no server-side revocation: a logged-out or demoted
// user's token stays valid until expiry. The default 30-minute TTL
// bounds that exposure; sessions, by contrast, die immediately on
// Logout.
package authgate
