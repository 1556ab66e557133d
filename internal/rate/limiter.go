package rate

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds fixed-window limiter tuning parameters.
type Config struct {
	// Limit is the number of requests admitted per (client IP, route)
	// pair inside one window.
	Limit int
	// Window is the fixed window size; it is also the counter key TTL.
	Window time.Duration
}

// Limiter enforces per-(IP, route) fixed-window limits using Redis
// counters. Windows are bucketed by floor(now / Window), so a client can
// burst up to 2*Limit across a window boundary; that is an accepted
// tradeoff of fixed windows, not a bug.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
	now    func() time.Time
}

// New creates a fixed-window Limiter backed by the given Redis client.
func New(client redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{
		redis:  client,
		config: cfg,
		now:    time.Now,
	}
}

func (l *Limiter) key(ip, route string, bucket int64) string {
	return "rl:" + route + ":" + ip + ":" + strconv.FormatInt(bucket, 10)
}

// Allow counts one request for the (ip, route) pair in the current
// window and reports whether it is within the limit. The check is a
// single atomic INCR-and-compare: two concurrent requests can never both
// observe count == Limit-1 and both be admitted. Counting happens before
// dispatch and is never rolled back, so a later client disconnect still
// leaves the request counted once.
//
// Transport failures return an error; the caller's fail-open/fail-closed
// policy decides what happens then.
func (l *Limiter) Allow(ctx context.Context, ip, route string) (bool, error) {
	windowSec := int64(l.config.Window / time.Second)
	if windowSec <= 0 {
		windowSec = 1
	}
	bucket := l.now().Unix() / windowSec
	key := l.key(ip, route, bucket)

	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// First hit in the window owns setting the TTL; stale buckets evict
	// themselves.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.config.Window).Err(); err != nil {
			return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return count <= int64(l.config.Limit), nil
}

// Remaining reports how many requests the (ip, route) pair has left in
// the current window. Missing counters mean a full budget.
func (l *Limiter) Remaining(ctx context.Context, ip, route string) (int, error) {
	windowSec := int64(l.config.Window / time.Second)
	if windowSec <= 0 {
		windowSec = 1
	}
	bucket := l.now().Unix() / windowSec

	count, err := l.redis.Get(ctx, l.key(ip, route, bucket)).Int64()
	if err != nil {
		if err == redis.Nil {
			return l.config.Limit, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	remaining := int64(l.config.Limit) - count
	if remaining < 0 {
		remaining = 0
	}
	return int(remaining), nil
}
