package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"zedtex/zedtex/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func testConfig() *config.MetricsConfig {
	return &config.MetricsConfig{
		Enabled:         true,
		Namespace:       "test",
		Subsystem:       "metrics",
		DurationBuckets: []float64{0.001, 0.01, 0.1},
	}
}

func TestCollector_NewCollector(t *testing.T) {
	cfg := testConfig()
	registry := prometheus.NewRegistry()

	collector := NewCollector(cfg, registry)

	if collector.config != cfg {
		t.Error("Collector config not set correctly")
	}
	if collector.Registry() != registry {
		t.Error("Collector registry not set correctly")
	}
}

func TestCollector_Defaults(t *testing.T) {
	cfg := &config.MetricsConfig{Enabled: true}
	NewCollector(cfg, nil)

	if cfg.Namespace != "zedtex" {
		t.Errorf("Namespace = %q, want zedtex", cfg.Namespace)
	}
	if cfg.Subsystem != "compiler" {
		t.Errorf("Subsystem = %q, want compiler", cfg.Subsystem)
	}
	if len(cfg.DurationBuckets) == 0 {
		t.Error("DurationBuckets not defaulted")
	}
}

func TestCollector_RecordCompile(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	tests := []struct {
		name    string
		dialect string
		status  string
		calls   int
	}{
		{"fuzz success", "fuzz", "success", 3},
		{"zed error", "zed", "error", 1},
		{"zed cached", "zed", "cached", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < tt.calls; i++ {
				collector.RecordCompile(tt.dialect, tt.status, time.Millisecond, 100)
			}
			got := testutil.ToFloat64(collector.compileMetrics.compilesTotal.WithLabelValues(tt.dialect, tt.status))
			if got != float64(tt.calls) {
				t.Errorf("compiles_total{%s,%s} = %v, want %d", tt.dialect, tt.status, got, tt.calls)
			}
		})
	}
}

func TestCollector_StagesAndTokens(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordStage("lex", 100*time.Microsecond)
	collector.RecordStage("parse", 200*time.Microsecond)
	collector.RecordStage("parse", 300*time.Microsecond)
	collector.RecordTokens("fuzz", 12)
	collector.RecordTokens("fuzz", 8)
	collector.RecordTokens("fuzz", 0)

	if got := testutil.CollectAndCount(collector.compileMetrics.stageDuration); got != 2 {
		t.Errorf("stage series = %d, want 2", got)
	}
	if got := testutil.ToFloat64(collector.compileMetrics.tokensTotal.WithLabelValues("fuzz")); got != 20 {
		t.Errorf("tokens_total = %v, want 20", got)
	}
}

func TestCollector_Diagnostics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordError("ParseError")
	collector.RecordError("ParseError")
	collector.RecordError("LexError")
	collector.RecordWarnings("zed", 3)

	if got := testutil.ToFloat64(collector.diagnosticMetrics.errorsTotal.WithLabelValues("ParseError")); got != 2 {
		t.Errorf("errors_total{ParseError} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.diagnosticMetrics.errorsTotal.WithLabelValues("LexError")); got != 1 {
		t.Errorf("errors_total{LexError} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.diagnosticMetrics.warningsTotal.WithLabelValues("zed")); got != 3 {
		t.Errorf("warnings_total = %v, want 3", got)
	}
}

func TestCollector_CacheMetrics(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	collector.RecordCacheHit("memory")
	collector.RecordCacheMiss("memory")
	collector.RecordCacheMiss("memory")
	collector.UpdateCacheSize("memory", 42)
	collector.RecordCachePruned("memory", 5)

	if got := testutil.ToFloat64(collector.cacheMetrics.hitsTotal.WithLabelValues("memory")); got != 1 {
		t.Errorf("cache_hits_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(collector.cacheMetrics.missesTotal.WithLabelValues("memory")); got != 2 {
		t.Errorf("cache_misses_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(collector.cacheMetrics.entries.WithLabelValues("memory")); got != 42 {
		t.Errorf("cache_entries = %v, want 42", got)
	}
	if got := testutil.ToFloat64(collector.cacheMetrics.prunedTotal.WithLabelValues("memory")); got != 5 {
		t.Errorf("cache_pruned_total = %v, want 5", got)
	}
}

func TestCollector_Disabled(t *testing.T) {
	cfg := testConfig()
	cfg.Enabled = false
	collector := NewCollector(cfg, nil)

	collector.RecordCompile("fuzz", "success", time.Millisecond, 10)
	collector.RecordError("LexError")

	if got := testutil.CollectAndCount(collector.compileMetrics.compilesTotal); got != 0 {
		t.Errorf("compiles_total series = %d, want 0 when disabled", got)
	}
	if got := testutil.CollectAndCount(collector.diagnosticMetrics.errorsTotal); got != 0 {
		t.Errorf("errors_total series = %d, want 0 when disabled", got)
	}
}

func TestCollector_Nil(t *testing.T) {
	var collector *Collector

	// None of these may panic.
	collector.RecordCompile("fuzz", "success", time.Millisecond, 10)
	collector.RecordStage("lex", time.Millisecond)
	collector.RecordError("ParseError")
	collector.RecordCacheHit("memory")
}

func TestCollector_Handler(t *testing.T) {
	collector := NewCollector(testConfig(), nil)
	collector.RecordCompile("zed", "success", time.Millisecond, 10)

	srv := httptest.NewServer(collector.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(string(body), `test_metrics_compiles_total{dialect="zed",status="success"} 1`) {
		t.Errorf("metrics output missing compiles_total:\n%s", body)
	}
}

func TestCollector_ConcurrentRecording(t *testing.T) {
	collector := NewCollector(testConfig(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.RecordCompile("fuzz", "success", time.Millisecond, 10)
			collector.RecordCacheHit("memory")
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(collector.compileMetrics.compilesTotal.WithLabelValues("fuzz", "success")); got != 50 {
		t.Errorf("compiles_total = %v, want 50", got)
	}
}
