// Package token issues and verifies self-contained HS256 access tokens.
//
// A token carries subject, role, issued-at, and expiry; validity is
// determined purely by the signature and the expiry instant, with no
// server-side record and no revocation. The expiry comparison is
// exclusive and no clock-skew leeway is applied.
//
// # Verification taxonomy
//
//   - [ErrExpired] — signature fine, expiry passed.
//   - [ErrSignature] — claims or signature bytes altered after issue.
//   - [ErrMalformed] — not decodable as a JWT, or required claims missing.
//
// # What this package must NOT do
//
//   - Perform any I/O. Verify is the request hot path.
//   - Accept any algorithm other than HS256 (alg confusion guard).
//   - Read the signing secret from globals or the environment.
package token
