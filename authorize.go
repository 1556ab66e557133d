package authgate

import (
	"context"

	internalaudit "github.com/boffins/authgate/internal/audit"
)

// Authorize is the pure role-policy decision: no I/O, no engine state.
// A nil principal fails with [ErrUnauthenticated]; a present principal
// with an insufficient role fails with [ErrForbidden]. Callers map the
// two to 401 and 403 respectively. RoleNone always allows, including
// for anonymous requests.
func Authorize(p *Principal, required Role) error {
	if required == RoleNone {
		return nil
	}
	if p == nil {
		return ErrUnauthenticated
	}
	if !p.Role.Satisfies(required) {
		return ErrForbidden
	}
	return nil
}

// Authorize applies the role policy and records denials in the engine
// metrics and audit stream. The decision itself is [Authorize]; this
// method only adds accounting.
func (e *Engine) Authorize(ctx context.Context, p *Principal, required Role) error {
	err := Authorize(p, required)
	if err != nil {
		e.metricInc(MetricAuthzDenied)

		subject := ""
		if p != nil {
			subject = p.Subject
		}
		e.emitAudit(ctx, internalaudit.EventAccessDenied, false, subject, "", err, func() map[string]string {
			return map[string]string{"required_role": string(required)}
		})
	}
	return err
}
