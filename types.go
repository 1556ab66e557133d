package authgate

import "context"

// Role is the coarse access level attached to an account, a session,
// and a token claim set.
type Role string

const (
	// RoleNone marks a route that requires no authentication.
	RoleNone Role = ""
	// RoleUser is the default role for new accounts.
	RoleUser Role = "user"
	// RoleAdmin dominates every user-level requirement.
	RoleAdmin Role = "admin"
)

// Satisfies reports whether a principal holding r meets the required
// role. RoleAdmin satisfies everything; RoleUser never satisfies
// RoleAdmin.
func (r Role) Satisfies(required Role) bool {
	switch required {
	case RoleNone:
		return true
	case RoleUser:
		return r == RoleUser || r == RoleAdmin
	default:
		return r == required
	}
}

// AuthMethod records which credential path resolved a Principal.
type AuthMethod string

const (
	// MethodToken marks a principal resolved from a bearer token.
	MethodToken AuthMethod = "token"
	// MethodSession marks a principal resolved from a session cookie.
	MethodSession AuthMethod = "session"
)

// Principal is the resolved identity for one request. It is built fresh
// per request from token or session output and is never persisted.
type Principal struct {
	Subject string
	Role    Role
	Method  AuthMethod
}

// UserRecord is the credential record the engine reads from the caller's
// user store. PasswordHash is opaque to the engine and must never be
// logged or returned in any response.
type UserRecord struct {
	UserID       string
	Identifier   string
	PasswordHash string
	Role         Role
}

// CreateUserInput is the input for [UserProvider.CreateUser].
type CreateUserInput struct {
	Identifier   string
	PasswordHash string
	Role         Role
}

// UserProvider is the interface callers implement to integrate authgate
// with their user database. The engine only reads identifiers, hashes,
// and roles; it owns no user persistence itself.
//
// GetUserByIdentifier returns [ErrUserNotFound] for unknown identifiers.
// CreateUser returns [ErrProviderDuplicateIdentifier] when the
// identifier is already taken.
type UserProvider interface {
	GetUserByIdentifier(ctx context.Context, identifier string) (UserRecord, error)
	CreateUser(ctx context.Context, input CreateUserInput) (UserRecord, error)
}

// SignupRequest is the input for [Engine.Signup]. Role defaults to the
// configured default role when empty.
type SignupRequest struct {
	Identifier string
	Password   string
	Role       Role
}

// SignupResult is returned by [Engine.Signup].
type SignupResult struct {
	UserID string
	Role   Role
}

// ExternalIdentity is a pre-verified identity handed over by a trusted
// OAuth-style collaborator. The engine treats it exactly like a
// successful password login; it never speaks any provider protocol.
type ExternalIdentity struct {
	Subject string
	Email   string
	Name    string
}
