package authgate

import (
	"context"
	"errors"

	internalaudit "github.com/boffins/authgate/internal/audit"
)

// Signup creates a new account through the configured [UserProvider].
// The password is hashed before anything leaves the engine; the
// plaintext is never stored or logged. A duplicate identifier returns
// [ErrAccountExists].
func (e *Engine) Signup(ctx context.Context, req SignupRequest) (*SignupResult, error) {
	if e == nil || e.hasher == nil || e.users == nil {
		return nil, ErrEngineNotReady
	}

	if req.Identifier == "" {
		return nil, ErrSignupInvalid
	}
	if len(req.Password) < e.config.Password.MinLength {
		return nil, ErrPasswordPolicy
	}

	role := req.Role
	if role == RoleNone {
		role = e.config.Account.DefaultRole
	}
	if !roleAllowed(e.config.Account.AllowedRoles, role) {
		e.emitAudit(ctx, internalaudit.EventSignupFailure, false, req.Identifier, "", ErrRoleInvalid, func() map[string]string {
			return map[string]string{"role": string(role)}
		})
		return nil, ErrRoleInvalid
	}

	hash, err := e.hasher.Hash(req.Password)
	if err != nil {
		return nil, ErrSignupInvalid
	}

	record, err := e.users.CreateUser(ctx, CreateUserInput{
		Identifier:   req.Identifier,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, ErrProviderDuplicateIdentifier) {
			e.metricInc(MetricSignupDuplicate)
			e.emitAudit(ctx, internalaudit.EventSignupFailure, false, req.Identifier, "", ErrAccountExists, nil)
			return nil, ErrAccountExists
		}
		return nil, err
	}

	e.metricInc(MetricSignupSuccess)
	e.emitAudit(ctx, internalaudit.EventSignupSuccess, true, req.Identifier, "", nil, func() map[string]string {
		return map[string]string{"role": string(record.Role)}
	})

	return &SignupResult{UserID: record.UserID, Role: record.Role}, nil
}
