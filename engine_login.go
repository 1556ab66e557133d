package authgate

import (
	"context"
	"errors"

	internalaudit "github.com/boffins/authgate/internal/audit"
	"github.com/boffins/authgate/session"
)

// LoginSession verifies identifier+password and creates a server-side
// session. Unknown identifier and wrong password both return
// [ErrInvalidCredentials]; the response never reveals which field was
// wrong, and the unknown-identifier path performs the same hashing work
// as a real verification.
func (e *Engine) LoginSession(ctx context.Context, identifier, pass string) (*session.Session, error) {
	record, err := e.checkCredentials(ctx, identifier, pass)
	if err != nil {
		return nil, err
	}

	sess, err := e.sessions.Create(ctx, record.Identifier, string(record.Role))
	if err != nil {
		if errors.Is(err, session.ErrRedisUnavailable) {
			return nil, ErrStoreUnavailable
		}
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricSessionCreated)
	e.emitAudit(ctx, internalaudit.EventLoginSuccess, true, record.Identifier, sess.SessionID, nil, nil)

	return sess, nil
}

// LoginToken verifies identifier+password and issues a stateless bearer
// token for API clients. Failure semantics match [Engine.LoginSession].
func (e *Engine) LoginToken(ctx context.Context, identifier, pass string) (string, error) {
	record, err := e.checkCredentials(ctx, identifier, pass)
	if err != nil {
		return "", err
	}

	tok, err := e.tokens.Issue(record.Identifier, string(record.Role))
	if err != nil {
		return "", err
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricTokenIssued)
	e.emitAudit(ctx, internalaudit.EventTokenIssued, true, record.Identifier, "", nil, nil)

	return tok, nil
}

// LoginExternal creates a session for an identity already verified by a
// trusted external collaborator. A first-time subject is provisioned
// through the UserProvider with an unguessable placeholder credential;
// the account can only ever authenticate externally until a password is
// set out of band.
func (e *Engine) LoginExternal(ctx context.Context, identity ExternalIdentity) (*session.Session, error) {
	if e == nil || e.users == nil || e.sessions == nil {
		return nil, ErrEngineNotReady
	}
	if identity.Subject == "" {
		return nil, ErrSignupInvalid
	}

	record, err := e.users.GetUserByIdentifier(ctx, identity.Subject)
	if errors.Is(err, ErrUserNotFound) {
		record, err = e.users.CreateUser(ctx, CreateUserInput{
			Identifier: identity.Subject,
			// The dummy hash never verifies against any password.
			PasswordHash: e.dummyHash,
			Role:         e.config.Account.DefaultRole,
		})
		if errors.Is(err, ErrProviderDuplicateIdentifier) {
			// Raced another external login for the same subject.
			record, err = e.users.GetUserByIdentifier(ctx, identity.Subject)
		}
	}
	if err != nil {
		return nil, err
	}

	sess, err := e.sessions.Create(ctx, record.Identifier, string(record.Role))
	if err != nil {
		if errors.Is(err, session.ErrRedisUnavailable) {
			return nil, ErrStoreUnavailable
		}
		return nil, err
	}

	e.metricInc(MetricExternalLogin)
	e.metricInc(MetricSessionCreated)
	e.emitAudit(ctx, internalaudit.EventExternalLogin, true, record.Identifier, sess.SessionID, nil, func() map[string]string {
		return map[string]string{"email": identity.Email}
	})

	return sess, nil
}

// checkCredentials is the shared credential gate for both login paths.
func (e *Engine) checkCredentials(ctx context.Context, identifier, pass string) (UserRecord, error) {
	if e == nil || e.hasher == nil || e.users == nil {
		return UserRecord{}, ErrEngineNotReady
	}

	record, err := e.users.GetUserByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Burn the same hashing cost as a real verification.
			_ = e.hasher.Verify(pass, e.dummyHash)
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, internalaudit.EventLoginFailure, false, identifier, "", ErrInvalidCredentials, nil)
			return UserRecord{}, ErrInvalidCredentials
		}
		return UserRecord{}, err
	}

	if !e.hasher.Verify(pass, record.PasswordHash) {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, internalaudit.EventLoginFailure, false, identifier, "", ErrInvalidCredentials, nil)
		return UserRecord{}, ErrInvalidCredentials
	}

	return record, nil
}
