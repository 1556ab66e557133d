package authgate

import "sync/atomic"

// MetricID identifies one counter in the in-process metrics registry.
type MetricID uint16

const (
	// MetricLoginSuccess counts successful password logins.
	MetricLoginSuccess MetricID = iota
	// MetricLoginFailure counts rejected password logins.
	MetricLoginFailure
	// MetricSignupSuccess counts created accounts.
	MetricSignupSuccess
	// MetricSignupDuplicate counts signups rejected for a taken identifier.
	MetricSignupDuplicate
	// MetricTokenIssued counts issued bearer tokens.
	MetricTokenIssued
	// MetricTokenRejected counts failed token verifications.
	MetricTokenRejected
	// MetricSessionCreated counts created sessions.
	MetricSessionCreated
	// MetricSessionDestroyed counts destroyed sessions.
	MetricSessionDestroyed
	// MetricSessionExpired counts session lookups that found an expired
	// or unknown record.
	MetricSessionExpired
	// MetricExternalLogin counts logins completed via a verified
	// external identity.
	MetricExternalLogin
	// MetricRateLimitHit counts requests rejected by the limiter.
	MetricRateLimitHit
	// MetricAuthzDenied counts authorization denials (401 and 403).
	MetricAuthzDenied

	metricIDCount
)

var metricNames = [metricIDCount]string{
	MetricLoginSuccess:     "login_success",
	MetricLoginFailure:     "login_failure",
	MetricSignupSuccess:    "signup_success",
	MetricSignupDuplicate:  "signup_duplicate",
	MetricTokenIssued:      "token_issued",
	MetricTokenRejected:    "token_rejected",
	MetricSessionCreated:   "session_created",
	MetricSessionDestroyed: "session_destroyed",
	MetricSessionExpired:   "session_expired",
	MetricExternalLogin:    "external_login",
	MetricRateLimitHit:     "rate_limit_hit",
	MetricAuthzDenied:      "authz_denied",
}

// Name returns the stable snake_case name of id, used by exporters.
func (id MetricID) Name() string {
	if id >= metricIDCount {
		return "unknown"
	}
	return metricNames[id]
}

// MetricIDs returns every defined metric id in order.
func MetricIDs() []MetricID {
	out := make([]MetricID, metricIDCount)
	for i := range out {
		out[i] = MetricID(i)
	}
	return out
}

// Metrics holds lock-free counters incremented on the request path.
// When disabled every operation is a no-op.
type Metrics struct {
	enabled  bool
	counters [metricIDCount]atomic.Uint64
}

// NewMetrics creates a Metrics registry.
func NewMetrics(cfg MetricsConfig) *Metrics {
	return &Metrics{enabled: cfg.Enabled}
}

// Inc increments the counter for id.
func (m *Metrics) Inc(id MetricID) {
	if m == nil || !m.enabled || id >= metricIDCount {
		return
	}
	m.counters[id].Add(1)
}

// Get reads one counter.
func (m *Metrics) Get(id MetricID) uint64 {
	if m == nil || !m.enabled || id >= metricIDCount {
		return 0
	}
	return m.counters[id].Load()
}

// MetricsSnapshot is a point-in-time copy of all counters.
type MetricsSnapshot struct {
	Counters map[MetricID]uint64
}

// Snapshot deep-copies the current counter values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	snap := MetricsSnapshot{Counters: make(map[MetricID]uint64, metricIDCount)}
	if m == nil || !m.enabled {
		return snap
	}
	for i := MetricID(0); i < metricIDCount; i++ {
		snap.Counters[i] = m.counters[i].Load()
	}
	return snap
}
