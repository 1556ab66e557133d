package authgate

import (
	"context"
	"errors"

	internalaudit "github.com/boffins/authgate/internal/audit"
	"github.com/boffins/authgate/session"
)

// ResolveToken verifies a bearer token and returns the principal it
// carries. No I/O: validity is determined by signature and expiry
// alone. On any failure no principal is returned.
func (e *Engine) ResolveToken(tokenStr string) (*Principal, error) {
	if e == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}

	claims, err := e.tokens.Verify(tokenStr)
	if err != nil {
		e.metricInc(MetricTokenRejected)
		return nil, err
	}

	return &Principal{
		Subject: claims.Subject,
		Role:    Role(claims.Role),
		Method:  MethodToken,
	}, nil
}

// ResolveSession looks up a session id and returns the principal plus
// the session's CSRF token. Unknown and expired sessions are
// indistinguishable: both return [ErrSessionNotFound].
func (e *Engine) ResolveSession(ctx context.Context, sessionID string) (*Principal, string, error) {
	if e == nil || e.sessions == nil {
		return nil, "", ErrEngineNotReady
	}

	sess, err := e.sessions.Get(ctx, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, session.ErrNotFound):
			e.metricInc(MetricSessionExpired)
			e.emitAudit(ctx, internalaudit.EventSessionExpired, false, "", sessionID, ErrSessionNotFound, nil)
			return nil, "", ErrSessionNotFound
		case errors.Is(err, session.ErrRedisUnavailable):
			return nil, "", ErrStoreUnavailable
		}
		return nil, "", err
	}

	principal := &Principal{
		Subject: sess.Subject,
		Role:    Role(sess.Role),
		Method:  MethodSession,
	}

	return principal, sess.CSRFToken, nil
}
