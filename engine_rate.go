package authgate

import (
	"context"

	internalaudit "github.com/boffins/authgate/internal/audit"
)

// CheckRate counts one request from ip against route's fixed-window
// budget. Routes outside the configured protected set pass through
// uncounted. The count is committed before dispatch and is never rolled
// back, so a cancelled request still spends budget (at-least-once
// counting).
//
// When the counter store is unreachable the configured policy applies:
// the default fails closed ([ErrStoreUnavailable], surfaced as 429/503
// by the pipeline) so an outage cannot disable abuse protection on
// login and signup.
func (e *Engine) CheckRate(ctx context.Context, ip, route string) error {
	if e == nil || e.limiter == nil {
		return ErrEngineNotReady
	}

	if !e.routeProtected(route) {
		return nil
	}
	if ip == "" {
		ip = "unknown"
	}
	// Direct callers may not come through the pipeline; make sure the
	// audit route field is populated either way.
	ctx = WithRoute(ctx, route)

	ok, err := e.limiter.Allow(ctx, ip, route)
	if err != nil {
		if e.config.RateLimit.FailOpen {
			return nil
		}
		return ErrStoreUnavailable
	}
	if !ok {
		e.metricInc(MetricRateLimitHit)
		e.emitAudit(ctx, internalaudit.EventRateLimited, false, "", "", ErrRateLimited, func() map[string]string {
			return map[string]string{"ip": ip}
		})
		return ErrRateLimited
	}

	return nil
}

// RateWindowSeconds reports the limiter window length; the pipeline
// uses it for the Retry-After header on 429 responses.
func (e *Engine) RateWindowSeconds() int {
	if e == nil {
		return 0
	}
	return int(e.config.RateLimit.Window.Seconds())
}

func (e *Engine) routeProtected(route string) bool {
	for _, r := range e.config.RateLimit.ProtectedRoutes {
		if r == route {
			return true
		}
	}
	return false
}
