// Package metrics exposes Prometheus counters for resolution passes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsPath = "/metrics"

type Metrics struct {
	PassesTotal    *prometheus.CounterVec
	RecordsTotal   *prometheus.CounterVec
	ProviderLookup *prometheus.CounterVec
}

// Pass statuses.
const (
	PassOK     = "ok"
	PassFailed = "failed"
)

// Record outcomes.
const (
	RecordResolved     = "resolved"
	RecordUnresolved   = "unresolved"
	RecordUpdated      = "updated"
	RecordUpdateFailed = "update_failed"
)

// Provider lookup results.
const (
	LookupHit   = "hit"
	LookupMiss  = "miss"
	LookupError = "error"
)

// New initializes and registers the pass counters.
func New() (*Metrics, error) {
	m := &Metrics{
		PassesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookfetch_passes_total",
			Help: "Completed resolution passes partitioned by status.",
		}, []string{"status"}),
		RecordsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookfetch_records_total",
			Help: "Sentinel-matched records partitioned by outcome.",
		}, []string{"outcome"}),
		ProviderLookup: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bookfetch_provider_lookups_total",
			Help: "Provider lookup attempts partitioned by provider and result.",
		}, []string{"provider", "result"}),
	}

	if err := prometheus.Register(m.PassesTotal); err != nil {
		return nil, err
	}
	if err := prometheus.Register(m.RecordsTotal); err != nil {
		return nil, err
	}
	if err := prometheus.Register(m.ProviderLookup); err != nil {
		return nil, err
	}

	return m, nil
}

// RegisterMetricsHandlers adds the metrics route to the provided mux.
func RegisterMetricsHandlers(mux *http.ServeMux) {
	mux.Handle(metricsPath, promhttp.Handler())
}

// CountPass records one finished pass. Nil-safe so callers can run
// without metrics wired.
func (m *Metrics) CountPass(status string) {
	if m == nil {
		return
	}
	m.PassesTotal.WithLabelValues(status).Inc()
}

// CountRecord records one per-record outcome. Nil-safe.
func (m *Metrics) CountRecord(outcome string) {
	if m == nil {
		return
	}
	m.RecordsTotal.WithLabelValues(outcome).Inc()
}

// CountLookup records one provider lookup attempt. Nil-safe.
func (m *Metrics) CountLookup(provider, result string) {
	if m == nil {
		return
	}
	m.ProviderLookup.WithLabelValues(provider, result).Inc()
}
