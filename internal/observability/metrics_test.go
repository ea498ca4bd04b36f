package observability_test

import (
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafter/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsRecordNothing(t *testing.T) {
	var m *observability.Metrics

	assert.NotPanics(t, func() {
		m.ObserveImport("success")
		m.ObserveExport("json")
		m.ObserveValidation(true)
		m.SetSessions(3)
	})
}

func TestMetrics_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	m.ObserveImport("success")
	m.ObserveImport("errors.invalidJson")
	m.ObserveImport("success")
	m.ObserveExport("xlsx")
	m.ObserveValidation(false)
	m.ObserveValidation(true)
	m.SetSessions(4)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Imports.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Imports.WithLabelValues("errors.invalidJson")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Exports.WithLabelValues("xlsx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validation.WithLabelValues("valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validation.WithLabelValues("invalid")))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Sessions))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "invoice_drafter_invoice_imports_total")
	assert.Contains(t, names, "invoice_drafter_active_sessions")
}

func TestNewMetrics_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)

	assert.Panics(t, func() { observability.NewMetrics(reg) })
}

func TestDurationMillis(t *testing.T) {
	assert.Equal(t, 1500.0, observability.DurationMillis(1500*time.Millisecond))
	assert.Equal(t, 0.25, observability.DurationMillis(250*time.Microsecond))
}
