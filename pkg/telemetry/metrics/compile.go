package metrics

import (
	"time"

	"zedtex/zedtex/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CompileMetrics tracks whole compilations and their pipeline stages.
//
// Metrics:
//   - zedtex_compiler_compiles_total: Compilations by dialect and status
//   - zedtex_compiler_compile_duration_seconds: End-to-end compile duration
//   - zedtex_compiler_stage_duration_seconds: Duration of lex, parse and generate
//   - zedtex_compiler_tokens_total: Tokens produced by the lexer
//   - zedtex_compiler_source_bytes: Size of compiled sources
type CompileMetrics struct {
	compilesTotal *prometheus.CounterVec

	compileDuration *prometheus.HistogramVec

	stageDuration *prometheus.HistogramVec

	tokensTotal *prometheus.CounterVec

	sourceBytes *prometheus.HistogramVec
}

// NewCompileMetrics creates and registers compile metrics with the provided registry.
func NewCompileMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CompileMetrics {
	cm := &CompileMetrics{
		compilesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "compiles_total",
				Help:      "Total number of compilations",
			},
			[]string{"dialect", "status"},
		),

		compileDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "compile_duration_seconds",
				Help:      "Duration of whole compilations in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"dialect"},
		),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "stage_duration_seconds",
				Help:      "Duration of each pipeline stage in seconds",
				Buckets:   cfg.DurationBuckets,
			},
			[]string{"stage"},
		),

		tokensTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "tokens_total",
				Help:      "Total number of tokens produced by the lexer",
			},
			[]string{"dialect"},
		),

		sourceBytes: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "source_bytes",
				Help:      "Size of compiled sources in bytes",
				Buckets:   prometheus.ExponentialBuckets(64, 4, 8), // 64B to 1MB
			},
			[]string{"dialect"},
		),
	}

	registry.MustRegister(
		cm.compilesTotal,
		cm.compileDuration,
		cm.stageDuration,
		cm.tokensTotal,
		cm.sourceBytes,
	)

	return cm
}

// RecordCompile records a finished compilation.
//
// Parameters:
//   - dialect: "fuzz" or "zed"
//   - status: "success", "error" or "cached"
//   - duration: End-to-end duration
//   - sourceBytes: Length of the source text
func (cm *CompileMetrics) RecordCompile(dialect, status string, duration time.Duration, sourceBytes int) {
	cm.compilesTotal.WithLabelValues(dialect, status).Inc()
	cm.compileDuration.WithLabelValues(dialect).Observe(duration.Seconds())
	if sourceBytes > 0 {
		cm.sourceBytes.WithLabelValues(dialect).Observe(float64(sourceBytes))
	}
}

// RecordStage records the duration of one pipeline stage ("lex", "parse" or "generate").
func (cm *CompileMetrics) RecordStage(stage string, duration time.Duration) {
	cm.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordTokens adds to the lexer token count.
func (cm *CompileMetrics) RecordTokens(dialect string, tokens int) {
	if tokens > 0 {
		cm.tokensTotal.WithLabelValues(dialect).Add(float64(tokens))
	}
}
