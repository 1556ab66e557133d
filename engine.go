package authgate

import (
	internalaudit "github.com/boffins/authgate/internal/audit"
	"github.com/boffins/authgate/internal/rate"
	"github.com/boffins/authgate/password"
	"github.com/boffins/authgate/session"
	"github.com/boffins/authgate/token"
)

// Engine is the credential, session, and authorization core of the
// gateway. All methods are safe for concurrent use after construction
// through [Builder.Build]; the engine holds no per-request state.
type Engine struct {
	config   Config
	tokens   *token.Manager
	sessions *session.Store
	limiter  *rate.Limiter
	hasher   *password.Hasher
	users    UserProvider
	audit    *internalaudit.Dispatcher
	metrics  *Metrics

	// dummyHash absorbs the verification cost for unknown identifiers so
	// login timing cannot reveal whether an account exists.
	dummyHash string
}

// Close flushes and stops the audit dispatcher. The engine must not be
// used after Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded under
// backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// SessionCookieName is the cookie the gateway stores session ids under.
const SessionCookieName = "auth_session"

// CSRFHeaderName is the request header checked on state-changing
// session-authenticated requests.
const CSRFHeaderName = "X-CSRF-Token"
