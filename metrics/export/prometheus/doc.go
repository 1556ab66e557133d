// Package prometheus exposes authgate engine counters as a Prometheus
// collector.
//
// [NewExporter] accepts an [authgate.Engine] and implements
// [prometheus.Collector] over its metrics snapshot. Counter names are
// authgate_*_total; the dispatcher drop counter is
// authgate_audit_dropped_total. [Exporter.Handler] serves the scrape
// endpoint from a private registry.
//
// # What this package must NOT do
//
//   - Register metrics in the global default registry (callers mount
//     the Handler).
//   - Mutate engine state.
package prometheus
