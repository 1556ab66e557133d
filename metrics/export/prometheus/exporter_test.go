package prometheus

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	authgate "github.com/boffins/authgate"
)

type stubSource struct {
	counters map[authgate.MetricID]uint64
	dropped  uint64
}

func (s *stubSource) MetricsSnapshot() authgate.MetricsSnapshot {
	return authgate.MetricsSnapshot{Counters: s.counters}
}

func (s *stubSource) AuditDropped() uint64 {
	return s.dropped
}

func TestCollectRendersCounters(t *testing.T) {
	source := &stubSource{
		counters: map[authgate.MetricID]uint64{
			authgate.MetricLoginSuccess: 7,
			authgate.MetricLoginFailure: 3,
		},
		dropped: 2,
	}
	exporter := NewExporterFromSource(source)

	expected := `
# HELP authgate_login_success_total Successful password logins.
# TYPE authgate_login_success_total counter
authgate_login_success_total 7
# HELP authgate_login_failure_total Rejected password logins.
# TYPE authgate_login_failure_total counter
authgate_login_failure_total 3
# HELP authgate_audit_dropped_total Audit events discarded under dispatcher backpressure.
# TYPE authgate_audit_dropped_total counter
authgate_audit_dropped_total 2
`
	err := testutil.CollectAndCompare(exporter, strings.NewReader(expected),
		"authgate_login_success_total",
		"authgate_login_failure_total",
		"authgate_audit_dropped_total",
	)
	if err != nil {
		t.Fatalf("CollectAndCompare() error = %v", err)
	}
}

func TestCollectEmitsEveryCounter(t *testing.T) {
	exporter := NewExporterFromSource(&stubSource{
		counters: map[authgate.MetricID]uint64{},
	})

	// One series per engine counter plus the audit drop counter.
	want := len(authgate.MetricIDs()) + 1
	if got := testutil.CollectAndCount(exporter); got != want {
		t.Fatalf("CollectAndCount() = %d, want %d", got, want)
	}
}

func TestHandlerServesScrape(t *testing.T) {
	exporter := NewExporterFromSource(&stubSource{
		counters: map[authgate.MetricID]uint64{
			authgate.MetricTokenIssued: 11,
		},
	})

	rec := httptest.NewRecorder()
	exporter.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "authgate_token_issued_total 11") {
		t.Fatalf("scrape output missing token counter:\n%s", rec.Body.String())
	}
}
