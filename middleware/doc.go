// Package middleware exposes the HTTP request pipeline for authgate:
// rate limiting, request logging, credential resolution, and role
// guards, composed as an explicit ordered [Chain].
//
// # Pipeline order
//
//   - [RateLimit] — counts the request against the fixed-window budget,
//     terminates with 429 when the budget is spent.
//   - [RequestLogger] — one structured line per request, never fails a
//     request.
//   - [Resolve] — bearer token or session cookie into a context
//     principal; invalid credentials degrade to anonymous.
//   - [Require] — rejects routes whose minimum role the principal does
//     not satisfy (401 anonymous, 403 insufficient).
//
// Later stages short-circuit on any terminal rejection in an earlier
// stage. Rate limiting runs first so unauthenticated abuse is counted
// before any credential work happens.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — resolution, rate accounting,
// and the role policy all live in the Engine.
//
// # What this package must NOT do
//
//   - Verify tokens or read Redis directly (Engine handles I/O).
//   - Leak internal error detail in responses (only machine-readable
//     kinds cross the HTTP boundary).
//   - Reorder stages at runtime.
package middleware
