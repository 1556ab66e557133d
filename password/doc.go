// Package password implements salted Argon2id password hashing with PHC
// string encoding and constant-time verification.
//
// # Security properties
//
//   - Every hash carries its own random salt; equal passwords never
//     produce equal hashes.
//   - Verify compares derived keys with subtle.ConstantTimeCompare.
//   - Malformed stored hashes verify false instead of returning an error,
//     so storage corruption cannot distinguish itself from a bad password
//     at the HTTP boundary.
//
// # What this package must NOT do
//
//   - Log, persist, or echo plaintext passwords on any code path.
//   - Perform I/O other than reading crypto/rand for salts.
package password
