package rate

import "errors"

var (
	// ErrRateLimited reports that the window budget is spent.
	ErrRateLimited = errors.New("rate limited")
	// ErrRedisUnavailable wraps transport-level counter store failures.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
