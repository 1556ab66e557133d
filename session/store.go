package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/boffins/authgate/internal"
)

// ErrNotFound is returned by Get for unknown, expired, or corrupt
// session ids. Callers cannot distinguish the three cases.
var ErrNotFound = errors.New("session not found")

// ErrRedisUnavailable wraps every transport-level Redis failure.
var ErrRedisUnavailable = errors.New("redis unavailable")

// maxCreateAttempts bounds id-collision retries. A collision of 128-bit
// random ids is vanishingly rare; the bound exists so a broken random
// source cannot loop forever.
const maxCreateAttempts = 3

// Store is a Redis-backed session store. All operations act on a single
// key per session id, so per-id linearizability comes directly from
// Redis' single-key command ordering; no caller ever does its own
// read-modify-write against a session record.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewStore creates a session Store. prefix namespaces the Redis keys;
// ttl is the fixed session lifetime applied at creation.
func NewStore(client redis.UniversalClient, prefix string, ttl time.Duration) *Store {
	return &Store{
		redis:  client,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

// TTL reports the configured fixed session lifetime.
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create generates a new session for subject with a fresh random id and
// CSRF token. The record is written with SET NX so an id collision is
// detected and retried rather than silently overwriting a live session.
func (s *Store) Create(ctx context.Context, subject, role string) (*Session, error) {
	if subject == "" {
		return nil, errors.New("empty subject")
	}

	csrf, err := internal.NewCSRFToken()
	if err != nil {
		return nil, err
	}

	now := s.now()
	sess := &Session{
		Subject:   subject,
		Role:      role,
		CSRFToken: csrf,
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		sid, err := internal.NewSessionID()
		if err != nil {
			return nil, err
		}
		sess.SessionID = sid.String()

		data, err := Encode(sess)
		if err != nil {
			return nil, err
		}

		stored, err := s.redis.SetNX(ctx, s.key(sess.SessionID), data, s.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		if stored {
			return sess, nil
		}
	}

	return nil, errors.New("session id collision retries exhausted")
}

// Get returns the live session for sessionID, or ErrNotFound. A record
// whose ExpiresAt has passed is absent even if Redis has not evicted it
// yet; Get deletes such records lazily on read. Corrupt blobs are also
// treated as absent.
func (s *Store) Get(ctx context.Context, sessionID string) (*Session, error) {
	if _, err := internal.ParseSessionID(sessionID); err != nil {
		return nil, ErrNotFound
	}

	data, err := s.redis.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	sess, err := Decode(data)
	if err != nil {
		// Unreadable blob: purge and report absent.
		_ = s.redis.Del(ctx, s.key(sessionID)).Err()
		return nil, ErrNotFound
	}
	sess.SessionID = sessionID

	if sess.ExpiresAt <= s.now().Unix() {
		_ = s.redis.Del(ctx, s.key(sessionID)).Err()
		return nil, ErrNotFound
	}

	return sess, nil
}

// Destroy removes the session. Removing an unknown or already-destroyed
// id is not an error.
func (s *Store) Destroy(ctx context.Context, sessionID string) error {
	if _, err := internal.ParseSessionID(sessionID); err != nil {
		return nil
	}

	if err := s.redis.Del(ctx, s.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
