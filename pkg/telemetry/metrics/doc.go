// Package metrics provides Prometheus metrics collection for zedtex.
//
// # Metrics Categories
//
//   - Compile Metrics: compilations by dialect and status, end-to-end and
//     per-stage durations, token counts, source sizes
//   - Diagnostic Metrics: errors by type, line width warnings
//   - Cache Metrics: hits, misses, entries and pruned entries by backend
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//
//	collector.RecordStage("parse", 180*time.Microsecond)
//	collector.RecordCompile("zed", "success", 2*time.Millisecond, 512)
//	collector.RecordError("ParseError")
//
//	mux.Handle("/metrics", collector.Handler())
//
// A nil *Collector records nothing. Every method checks MetricsConfig.Enabled
// before touching a metric.
//
// # Prometheus Endpoint
//
//	# HELP zedtex_compiler_compiles_total Total number of compilations
//	# TYPE zedtex_compiler_compiles_total counter
//	zedtex_compiler_compiles_total{dialect="zed",status="success"} 17
package metrics
