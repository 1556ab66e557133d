// Package internal holds cryptographic identifier helpers shared by the
// authgate engine and its subpackages: random session ids, CSRF token
// generation, and constant-time CSRF comparison.
//
// Nothing in here is part of the public API.
package internal
