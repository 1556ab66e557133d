package authgate

import (
	"context"
	"errors"

	internalaudit "github.com/boffins/authgate/internal/audit"
	"github.com/boffins/authgate/session"
)

// Logout destroys the session. It is idempotent: logging out an
// unknown or already-destroyed session id succeeds silently.
//
// Logout does not revoke bearer tokens. Tokens stay valid until their
// expiry; the short token TTL bounds the exposure.
func (e *Engine) Logout(ctx context.Context, sessionID string) error {
	if e == nil || e.sessions == nil {
		return ErrEngineNotReady
	}

	if err := e.sessions.Destroy(ctx, sessionID); err != nil {
		if errors.Is(err, session.ErrRedisUnavailable) {
			return ErrStoreUnavailable
		}
		return err
	}

	e.metricInc(MetricSessionDestroyed)
	e.emitAudit(ctx, internalaudit.EventLogout, true, "", sessionID, nil, nil)

	return nil
}
