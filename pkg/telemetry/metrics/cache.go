package metrics

import (
	"zedtex/zedtex/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// CacheMetrics tracks compile cache performance.
//
// Metrics:
//   - zedtex_compiler_cache_hits_total: Cache hits by backend
//   - zedtex_compiler_cache_misses_total: Cache misses by backend
//   - zedtex_compiler_cache_entries: Current number of cached outputs
//   - zedtex_compiler_cache_pruned_total: Entries removed by pruning
type CacheMetrics struct {
	hitsTotal *prometheus.CounterVec

	missesTotal *prometheus.CounterVec

	entries *prometheus.GaugeVec

	prunedTotal *prometheus.CounterVec
}

// NewCacheMetrics creates and registers cache metrics with the provided registry.
func NewCacheMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *CacheMetrics {
	cm := &CacheMetrics{
		hitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_hits_total",
				Help:      "Total number of cache hits",
			},
			[]string{"backend"},
		),

		missesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_misses_total",
				Help:      "Total number of cache misses",
			},
			[]string{"backend"},
		),

		entries: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_entries",
				Help:      "Current number of entries in the cache",
			},
			[]string{"backend"},
		),

		prunedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cache_pruned_total",
				Help:      "Total number of cache entries removed by pruning",
			},
			[]string{"backend"},
		),
	}

	registry.MustRegister(
		cm.hitsTotal,
		cm.missesTotal,
		cm.entries,
		cm.prunedTotal,
	)

	return cm
}

// RecordHit records a cache hit.
func (cm *CacheMetrics) RecordHit(backend string) {
	cm.hitsTotal.WithLabelValues(backend).Inc()
}

// RecordMiss records a cache miss.
func (cm *CacheMetrics) RecordMiss(backend string) {
	cm.missesTotal.WithLabelValues(backend).Inc()
}

// UpdateSize sets the current number of entries.
func (cm *CacheMetrics) UpdateSize(backend string, size int) {
	cm.entries.WithLabelValues(backend).Set(float64(size))
}

// RecordPruned adds n entries removed by a prune run.
//
// Hit rate is best computed in PromQL:
//
//	rate(zedtex_compiler_cache_hits_total[5m]) /
//	(rate(zedtex_compiler_cache_hits_total[5m]) +
//	 rate(zedtex_compiler_cache_misses_total[5m]))
func (cm *CacheMetrics) RecordPruned(backend string, n int) {
	if n > 0 {
		cm.prunedTotal.WithLabelValues(backend).Add(float64(n))
	}
}
