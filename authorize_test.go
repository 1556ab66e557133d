package authgate_test

import (
	"context"
	"errors"
	"testing"

	authgate "github.com/boffins/authgate"
)

func TestRoleSatisfies(t *testing.T) {
	cases := []struct {
		held     authgate.Role
		required authgate.Role
		want     bool
	}{
		{authgate.RoleUser, authgate.RoleNone, true},
		{authgate.RoleAdmin, authgate.RoleNone, true},
		{authgate.RoleUser, authgate.RoleUser, true},
		{authgate.RoleAdmin, authgate.RoleUser, true},
		{authgate.RoleUser, authgate.RoleAdmin, false},
		{authgate.RoleAdmin, authgate.RoleAdmin, true},
		// Unknown required roles demand an exact match.
		{authgate.RoleAdmin, "auditor", false},
		{"auditor", "auditor", true},
	}

	for _, tc := range cases {
		if got := tc.held.Satisfies(tc.required); got != tc.want {
			t.Errorf("%q.Satisfies(%q) = %v, want %v", tc.held, tc.required, got, tc.want)
		}
	}
}

func TestAuthorize(t *testing.T) {
	user := &authgate.Principal{Subject: "alice", Role: authgate.RoleUser}
	admin := &authgate.Principal{Subject: "root", Role: authgate.RoleAdmin}

	if err := authgate.Authorize(nil, authgate.RoleNone); err != nil {
		t.Fatalf("anonymous on open route: err = %v", err)
	}
	if err := authgate.Authorize(nil, authgate.RoleUser); !errors.Is(err, authgate.ErrUnauthenticated) {
		t.Fatalf("anonymous on user route: err = %v, want ErrUnauthenticated", err)
	}
	if err := authgate.Authorize(user, authgate.RoleUser); err != nil {
		t.Fatalf("user on user route: err = %v", err)
	}
	if err := authgate.Authorize(user, authgate.RoleAdmin); !errors.Is(err, authgate.ErrForbidden) {
		t.Fatalf("user on admin route: err = %v, want ErrForbidden", err)
	}
	if err := authgate.Authorize(admin, authgate.RoleUser); err != nil {
		t.Fatalf("admin on user route: err = %v", err)
	}
}

func TestEngineAuthorizeCountsDenials(t *testing.T) {
	engine, _, _ := newTestEngine(t, testConfig())
	ctx := context.Background()

	_ = engine.Authorize(ctx, nil, authgate.RoleUser)
	_ = engine.Authorize(ctx, &authgate.Principal{Role: authgate.RoleUser}, authgate.RoleAdmin)
	_ = engine.Authorize(ctx, &authgate.Principal{Role: authgate.RoleAdmin}, authgate.RoleAdmin)

	snap := engine.MetricsSnapshot()
	if got := snap.Counters[authgate.MetricAuthzDenied]; got != 2 {
		t.Fatalf("authz_denied = %d, want 2", got)
	}
}
