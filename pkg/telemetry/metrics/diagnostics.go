package metrics

import (
	"zedtex/zedtex/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// DiagnosticMetrics counts compile errors and line width warnings.
//
// Metrics:
//   - zedtex_compiler_errors_total: Errors by type (LexError, ParseError, GenerationError)
//   - zedtex_compiler_warnings_total: Line width warnings by dialect
type DiagnosticMetrics struct {
	errorsTotal *prometheus.CounterVec

	warningsTotal *prometheus.CounterVec
}

// NewDiagnosticMetrics creates and registers diagnostic metrics with the provided registry.
func NewDiagnosticMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *DiagnosticMetrics {
	dm := &DiagnosticMetrics{
		errorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "errors_total",
				Help:      "Total number of compile errors by type",
			},
			[]string{"type"},
		),

		warningsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "warnings_total",
				Help:      "Total number of line width warnings",
			},
			[]string{"dialect"},
		),
	}

	registry.MustRegister(
		dm.errorsTotal,
		dm.warningsTotal,
	)

	return dm
}

// RecordError increments the error counter for errType.
func (dm *DiagnosticMetrics) RecordError(errType string) {
	dm.errorsTotal.WithLabelValues(errType).Inc()
}

// RecordWarnings adds n warnings.
func (dm *DiagnosticMetrics) RecordWarnings(dialect string, n int) {
	if n > 0 {
		dm.warningsTotal.WithLabelValues(dialect).Add(float64(n))
	}
}
