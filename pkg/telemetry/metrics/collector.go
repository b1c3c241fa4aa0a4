package metrics

import (
	"time"

	"zedtex/zedtex/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector owns every Prometheus metric zedtex exports. A nil *Collector
// is valid and records nothing, so callers that run without metrics need
// no special casing.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	compileMetrics *CompileMetrics

	diagnosticMetrics *DiagnosticMetrics

	cacheMetrics *CacheMetrics
}

// NewCollector creates a new metrics collector with the specified configuration
// and Prometheus registry. If registry is nil, a fresh registry is created.
//
// Example:
//
//	cfg := &config.MetricsConfig{
//		Enabled:   true,
//		Namespace: "zedtex",
//		Subsystem: "compiler",
//	}
//	collector := metrics.NewCollector(cfg, nil)
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.DurationBuckets) == 0 {
		cfg.DurationBuckets = append([]float64(nil), config.DefaultDurationBuckets...)
	}

	return &Collector{
		config:            cfg,
		registry:          registry,
		compileMetrics:    NewCompileMetrics(cfg, registry),
		diagnosticMetrics: NewDiagnosticMetrics(cfg, registry),
		cacheMetrics:      NewCacheMetrics(cfg, registry),
	}
}

func (c *Collector) enabled() bool {
	return c != nil && c.config.Enabled
}

// RecordCompile records a finished compilation.
//
// Parameters:
//   - dialect: "fuzz" or "zed"
//   - status: "success", "error" or "cached"
//   - duration: End-to-end duration
//   - sourceBytes: Length of the source text
//
// Example:
//
//	collector.RecordCompile("zed", "success", 3*time.Millisecond, 412)
func (c *Collector) RecordCompile(dialect, status string, duration time.Duration, sourceBytes int) {
	if !c.enabled() {
		return
	}

	c.compileMetrics.RecordCompile(dialect, status, duration, sourceBytes)
}

// RecordStage records the duration of a pipeline stage.
func (c *Collector) RecordStage(stage string, duration time.Duration) {
	if !c.enabled() {
		return
	}

	c.compileMetrics.RecordStage(stage, duration)
}

// RecordTokens adds to the lexer token count.
func (c *Collector) RecordTokens(dialect string, tokens int) {
	if !c.enabled() {
		return
	}

	c.compileMetrics.RecordTokens(dialect, tokens)
}

// RecordError records a compile error by its type name, e.g. "ParseError".
func (c *Collector) RecordError(errType string) {
	if !c.enabled() {
		return
	}

	c.diagnosticMetrics.RecordError(errType)
}

// RecordWarnings records line width warnings from one compilation.
func (c *Collector) RecordWarnings(dialect string, n int) {
	if !c.enabled() {
		return
	}

	c.diagnosticMetrics.RecordWarnings(dialect, n)
}

// RecordCacheHit records a cache hit.
func (c *Collector) RecordCacheHit(backend string) {
	if !c.enabled() {
		return
	}

	c.cacheMetrics.RecordHit(backend)
}

// RecordCacheMiss records a cache miss.
func (c *Collector) RecordCacheMiss(backend string) {
	if !c.enabled() {
		return
	}

	c.cacheMetrics.RecordMiss(backend)
}

// UpdateCacheSize updates the current number of cache entries.
func (c *Collector) UpdateCacheSize(backend string, size int) {
	if !c.enabled() {
		return
	}

	c.cacheMetrics.UpdateSize(backend, size)
}

// RecordCachePruned records entries removed by a prune run.
func (c *Collector) RecordCachePruned(backend string, n int) {
	if !c.enabled() {
		return
	}

	c.cacheMetrics.RecordPruned(backend, n)
}

// Registry returns the Prometheus registry used by this collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
