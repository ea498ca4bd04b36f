// Package observability holds the Prometheus collectors exposed on /metrics.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "invoice_drafter"

// Metrics groups the HTTP and domain collectors. A nil *Metrics is valid and
// records nothing, so services can run without instrumentation.
type Metrics struct {
	ReqTotal   *prometheus.CounterVec
	ReqDur     *prometheus.HistogramVec
	InFlight   prometheus.Gauge
	Imports    *prometheus.CounterVec
	Exports    *prometheus.CounterVec
	Validation *prometheus.CounterVec
	Sessions   prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg, or with the
// default registerer when reg is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		ReqTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests handled by the server.",
		}, []string{"method", "route", "status"}),
		ReqDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency distribution in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
		}, []string{"method", "route"}),
		InFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		Imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_imports_total",
			Help:      "Invoice JSON imports by result.",
		}, []string{"result"}),
		Exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_exports_total",
			Help:      "Invoice exports by format.",
		}, []string{"format"}),
		Validation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invoice_validations_total",
			Help:      "Invoice validations by result.",
		}, []string{"result"}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Number of live drafting sessions.",
		}),
	}
	reg.MustRegister(m.ReqTotal, m.ReqDur, m.InFlight, m.Imports, m.Exports, m.Validation, m.Sessions)
	return m
}

// ObserveImport counts an import attempt. result is "success" or the error kind.
func (m *Metrics) ObserveImport(result string) {
	if m == nil {
		return
	}
	m.Imports.WithLabelValues(result).Inc()
}

// ObserveExport counts an export in the given format.
func (m *Metrics) ObserveExport(format string) {
	if m == nil {
		return
	}
	m.Exports.WithLabelValues(format).Inc()
}

// ObserveValidation counts a validation run.
func (m *Metrics) ObserveValidation(valid bool) {
	if m == nil {
		return
	}
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.Validation.WithLabelValues(result).Inc()
}

// SetSessions records the number of live sessions.
func (m *Metrics) SetSessions(n int) {
	if m == nil {
		return
	}
	m.Sessions.Set(float64(n))
}

// DurationMillis converts a duration to milliseconds for metric observation.
func DurationMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
