package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testSecret() []byte {
	return []byte("0123456789abcdef0123456789abcdef")
}

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := New(Config{Secret: testSecret(), TTL: ttl, Issuer: "authgate-test"})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return m
}

func TestIssueAndVerify(t *testing.T) {
	m := newTestManager(t, 30*time.Minute)

	tok, err := m.Issue("alice", "admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if strings.ContainsAny(tok, " +/=") {
		t.Fatalf("token is not URL-safe: %q", tok)
	}

	claims, err := m.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("subject = %q, want alice", claims.Subject)
	}
	if claims.Role != "admin" {
		t.Fatalf("role = %q, want admin", claims.Role)
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil {
		t.Fatal("expected iat and exp claims to be set")
	}
}

func TestVerifyExpired(t *testing.T) {
	m := newTestManager(t, time.Minute)

	tok, err := m.Issue("alice", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	base := m.now()
	m.now = func() time.Time { return base.Add(2 * time.Minute) }

	if _, err := m.Verify(tok); !errors.Is(err, ErrExpired) {
		t.Fatalf("Verify error = %v, want ErrExpired", err)
	}
}

func TestVerifyExpiryBoundaryExclusive(t *testing.T) {
	m := newTestManager(t, time.Minute)

	issued := time.Unix(1_700_000_000, 0)
	m.now = func() time.Time { return issued }

	tok, err := m.Issue("alice", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// One second before expiry the token is still good.
	m.now = func() time.Time { return issued.Add(time.Minute - time.Second) }
	if _, err := m.Verify(tok); err != nil {
		t.Fatalf("Verify just before expiry: %v", err)
	}

	// At exactly expiry the token is rejected.
	m.now = func() time.Time { return issued.Add(time.Minute) }
	if _, err := m.Verify(tok); !errors.Is(err, ErrExpired) {
		t.Fatalf("Verify at expiry = %v, want ErrExpired", err)
	}
}

func TestVerifyTamperedClaims(t *testing.T) {
	m := newTestManager(t, time.Minute)

	tok, err := m.Issue("alice", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("expected compact JWS, got %d segments", len(parts))
	}

	// Flip one byte of the payload segment.
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = m.Verify(tampered)
	if !errors.Is(err, ErrSignature) && !errors.Is(err, ErrMalformed) {
		t.Fatalf("Verify tampered = %v, want signature or malformed error", err)
	}
	if err == nil {
		t.Fatal("expected tampered token to be rejected")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := newTestManager(t, time.Minute)

	tok, err := m.Issue("alice", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	other, err := New(Config{
		Secret: []byte("ffffffffffffffffffffffffffffffff"),
		TTL:    time.Minute,
		Issuer: "authgate-test",
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	if _, err := other.Verify(tok); !errors.Is(err, ErrSignature) {
		t.Fatalf("Verify with wrong secret = %v, want ErrSignature", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	m := newTestManager(t, time.Minute)

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d", "!!.!!.!!"} {
		if _, err := m.Verify(tok); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q) = %v, want ErrMalformed", tok, err)
		}
	}
}

func TestNewRejectsWeakConfig(t *testing.T) {
	if _, err := New(Config{Secret: []byte("short"), TTL: time.Minute}); err == nil {
		t.Fatal("expected short secret rejection")
	}
	if _, err := New(Config{Secret: testSecret(), TTL: 0}); err == nil {
		t.Fatal("expected zero TTL rejection")
	}
}

func TestIssueRejectsEmptySubject(t *testing.T) {
	m := newTestManager(t, time.Minute)
	if _, err := m.Issue("", "user"); err == nil {
		t.Fatal("expected empty subject rejection")
	}
}
