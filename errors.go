package authgate

import (
	"errors"

	"github.com/boffins/authgate/session"
	"github.com/boffins/authgate/token"
)

var (
	// ErrInvalidCredentials is returned for both an unknown identifier and
	// a wrong password. The two cases are deliberately indistinguishable
	// to prevent account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound is returned by UserProvider implementations when no
	// record matches. The engine never lets it cross the login boundary.
	ErrUserNotFound = errors.New("user not found")
	// ErrAccountExists is returned by Signup for a duplicate identifier.
	ErrAccountExists = errors.New("account already exists")
	// ErrSignupInvalid is returned for empty or malformed signup input.
	ErrSignupInvalid = errors.New("invalid signup request")
	// ErrRoleInvalid is returned when a requested role is outside the
	// configured allow-list.
	ErrRoleInvalid = errors.New("invalid account role")
	// ErrPasswordPolicy is returned when a password fails the configured
	// minimum-length policy.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrRateLimited is returned once a client's fixed-window budget for
	// a protected route is spent.
	ErrRateLimited = errors.New("rate limited")
	// ErrUnauthenticated is the authorization denial for an absent
	// principal; callers map it to 401.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is the authorization denial for a present principal
	// whose role is insufficient; callers map it to 403.
	ErrForbidden = errors.New("forbidden")
	// ErrCSRFMismatch is returned when a state-changing session request
	// carries a missing or wrong CSRF token.
	ErrCSRFMismatch = errors.New("csrf token mismatch")
	// ErrStoreUnavailable is returned when the shared Redis substrate is
	// unreachable after the component-level policy has been applied.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrProviderDuplicateIdentifier is returned by UserProvider.CreateUser
	// for an identifier that is already taken.
	ErrProviderDuplicateIdentifier = errors.New("provider duplicate identifier")
	// ErrEngineNotReady is returned when an Engine method is invoked on a
	// partially constructed engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)

// Token and session failures are surfaced under the subpackages'
// sentinels; they are re-exported here so most callers only need the
// root import.
var (
	// ErrTokenExpired is an alias of [token.ErrExpired].
	ErrTokenExpired = token.ErrExpired
	// ErrTokenSignature is an alias of [token.ErrSignature].
	ErrTokenSignature = token.ErrSignature
	// ErrTokenMalformed is an alias of [token.ErrMalformed].
	ErrTokenMalformed = token.ErrMalformed
	// ErrSessionNotFound is an alias of [session.ErrNotFound]. Expired
	// and unknown sessions collapse into it externally.
	ErrSessionNotFound = session.ErrNotFound
)
