package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newStoreTest(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return NewStore(rdb, "ag", 24*time.Hour), mr
}

func TestCreateAndGet(t *testing.T) {
	store, _ := newStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "alice", "user")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if sess.SessionID == "" {
		t.Fatal("expected non-empty session id")
	}
	if sess.CSRFToken == "" {
		t.Fatal("expected non-empty csrf token")
	}
	if sess.ExpiresAt-sess.CreatedAt != int64((24 * time.Hour).Seconds()) {
		t.Fatalf("unexpected lifetime: created=%d expires=%d", sess.CreatedAt, sess.ExpiresAt)
	}

	got, err := store.Get(ctx, sess.SessionID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.Subject != "alice" || got.Role != "user" {
		t.Fatalf("got %+v", got)
	}
	if got.CSRFToken != sess.CSRFToken {
		t.Fatal("csrf token did not round-trip")
	}
	if got.SessionID != sess.SessionID {
		t.Fatal("session id did not round-trip")
	}
}

func TestSessionIDsDistinct(t *testing.T) {
	store, _ := newStoreTest(t)
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 32; i++ {
		sess, err := store.Create(ctx, "alice", "user")
		if err != nil {
			t.Fatalf("Create error: %v", err)
		}
		if seen[sess.SessionID] {
			t.Fatalf("duplicate session id %q", sess.SessionID)
		}
		seen[sess.SessionID] = true
	}
}

func TestGetUnknownID(t *testing.T) {
	store, _ := newStoreTest(t)
	ctx := context.Background()

	// Well-formed but never issued.
	if _, err := store.Get(ctx, "AAAAAAAAAAAAAAAAAAAAAA"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get unknown = %v, want ErrNotFound", err)
	}

	// Garbage that is not even a session id shape.
	if _, err := store.Get(ctx, "not-a-session-id!"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get garbage = %v, want ErrNotFound", err)
	}
}

func TestDestroyIdempotent(t *testing.T) {
	store, _ := newStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "alice", "user")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := store.Destroy(ctx, sess.SessionID); err != nil {
		t.Fatalf("first Destroy error: %v", err)
	}
	if err := store.Destroy(ctx, sess.SessionID); err != nil {
		t.Fatalf("second Destroy error: %v", err)
	}
	if err := store.Destroy(ctx, "never-issued"); err != nil {
		t.Fatalf("Destroy unknown error: %v", err)
	}

	if _, err := store.Get(ctx, sess.SessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after Destroy = %v, want ErrNotFound", err)
	}
}

func TestExpiredIsAbsentBeforeEviction(t *testing.T) {
	store, _ := newStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "alice", "user")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Move the store's clock past expiry while the Redis TTL has not
	// fired: the record is physically present but must read as absent.
	store.now = func() time.Time { return time.Unix(sess.ExpiresAt, 0) }

	if _, err := store.Get(ctx, sess.SessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get expired = %v, want ErrNotFound", err)
	}

	// The lazy purge removed the stale record.
	store.now = time.Now
	if _, err := store.Get(ctx, sess.SessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get purged = %v, want ErrNotFound", err)
	}
}

func TestExpiredByRedisTTL(t *testing.T) {
	store, mr := newStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "alice", "user")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mr.FastForward(25 * time.Hour)

	if _, err := store.Get(ctx, sess.SessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after TTL = %v, want ErrNotFound", err)
	}
}

func TestCorruptBlobIsAbsent(t *testing.T) {
	store, mr := newStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "alice", "user")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := mr.Set("ag:"+sess.SessionID, "\xff\x00corrupt"); err != nil {
		t.Fatalf("corrupt set: %v", err)
	}

	if _, err := store.Get(ctx, sess.SessionID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get corrupt = %v, want ErrNotFound", err)
	}
}

func TestStoreUnavailable(t *testing.T) {
	store, mr := newStoreTest(t)
	ctx := context.Background()

	sess, err := store.Create(ctx, "alice", "user")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	mr.Close()

	if _, err := store.Get(ctx, sess.SessionID); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Get with store down = %v, want ErrRedisUnavailable", err)
	}
	if err := store.Destroy(ctx, sess.SessionID); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Destroy with store down = %v, want ErrRedisUnavailable", err)
	}
	if _, err := store.Create(ctx, "bob", "user"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("Create with store down = %v, want ErrRedisUnavailable", err)
	}
}

func TestEncodeDecodeRejectsOversizedFields(t *testing.T) {
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'a'
	}

	_, err := Encode(&Session{Subject: string(long), Role: "user"})
	if err == nil {
		t.Fatal("expected oversized subject rejection")
	}

	if _, err := Decode([]byte{0x02}); err == nil {
		t.Fatal("expected unknown version rejection")
	}
	if _, err := Decode([]byte{0x01, 0x05, 'a'}); err == nil {
		t.Fatal("expected truncated blob rejection")
	}
}
