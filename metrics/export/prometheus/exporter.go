package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authgate "github.com/boffins/authgate"
)

// metricsSource is the slice of the engine the exporter reads.
type metricsSource interface {
	MetricsSnapshot() authgate.MetricsSnapshot
	AuditDropped() uint64
}

// Exporter bridges the engine's lock-free counters into a
// [prometheus.Collector]. Counters are read as point-in-time snapshots
// at scrape time; the exporter itself holds no counter state and never
// mutates the engine.
type Exporter struct {
	source  metricsSource
	descs   map[authgate.MetricID]*prometheus.Desc
	dropped *prometheus.Desc
}

// NewExporter creates an Exporter reading from engine.
func NewExporter(engine *authgate.Engine) *Exporter {
	return NewExporterFromSource(engine)
}

// NewExporterFromSource creates an Exporter from a custom snapshot
// source; tests use it to scrape fixed counter values.
func NewExporterFromSource(source metricsSource) *Exporter {
	descs := make(map[authgate.MetricID]*prometheus.Desc)
	for _, id := range authgate.MetricIDs() {
		descs[id] = prometheus.NewDesc(
			"authgate_"+id.Name()+"_total",
			helpFor(id),
			nil, nil,
		)
	}

	return &Exporter{
		source: source,
		descs:  descs,
		dropped: prometheus.NewDesc(
			"authgate_audit_dropped_total",
			"Audit events discarded under dispatcher backpressure.",
			nil, nil,
		),
	}
}

// Describe implements [prometheus.Collector].
func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	for _, id := range authgate.MetricIDs() {
		ch <- e.descs[id]
	}
	ch <- e.dropped
}

// Collect implements [prometheus.Collector].
func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	if e == nil || e.source == nil {
		return
	}

	snapshot := e.source.MetricsSnapshot()
	for _, id := range authgate.MetricIDs() {
		ch <- prometheus.MustNewConstMetric(
			e.descs[id],
			prometheus.CounterValue,
			float64(snapshot.Counters[id]),
		)
	}
	ch <- prometheus.MustNewConstMetric(
		e.dropped,
		prometheus.CounterValue,
		float64(e.source.AuditDropped()),
	)
}

// Handler returns an http.Handler serving the exporter through a
// private registry. Nothing is registered in the global default
// registry; callers mount the handler where they want it.
func (e *Exporter) Handler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(e)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func helpFor(id authgate.MetricID) string {
	switch id {
	case authgate.MetricLoginSuccess:
		return "Successful password logins."
	case authgate.MetricLoginFailure:
		return "Rejected password logins."
	case authgate.MetricSignupSuccess:
		return "Created accounts."
	case authgate.MetricSignupDuplicate:
		return "Signups rejected for an already-taken identifier."
	case authgate.MetricTokenIssued:
		return "Issued bearer tokens."
	case authgate.MetricTokenRejected:
		return "Failed bearer token verifications."
	case authgate.MetricSessionCreated:
		return "Created sessions."
	case authgate.MetricSessionDestroyed:
		return "Destroyed sessions."
	case authgate.MetricSessionExpired:
		return "Session lookups that found an expired or unknown record."
	case authgate.MetricExternalLogin:
		return "Logins completed via a verified external identity."
	case authgate.MetricRateLimitHit:
		return "Requests rejected by the rate limiter."
	case authgate.MetricAuthzDenied:
		return "Authorization denials."
	default:
		return "Engine counter " + id.Name() + "."
	}
}
