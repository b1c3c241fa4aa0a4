package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"zedtex/zedtex/pkg/config"
)

func TestNew(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.Logging.Format = "json"

	var buf bytes.Buffer
	tel, err := NewWithWriter(&cfg, "test", &buf)
	if err != nil {
		t.Fatalf("NewWithWriter() error = %v", err)
	}
	defer tel.Shutdown(context.Background())

	if tel.Metrics() == nil {
		t.Error("Metrics() = nil, want a collector when metrics are enabled")
	}
	if tel.Tracer().Enabled() {
		t.Error("Tracer().Enabled() = true, want false by default")
	}
	if tel.Health() == nil {
		t.Error("Health() = nil")
	}

	tel.Logger().Info("compiled", "file", "a.zed")
	if !strings.Contains(buf.String(), `"file":"a.zed"`) {
		t.Errorf("log output = %q, want the file field", buf.String())
	}
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.Metrics.Enabled = false

	tel, err := NewWithWriter(&cfg, "test", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("NewWithWriter() error = %v", err)
	}
	if tel.Metrics() != nil {
		t.Error("Metrics() != nil with metrics disabled")
	}
}

func TestNew_BadLogLevel(t *testing.T) {
	cfg := config.Default().Telemetry
	cfg.Logging.Level = "loud"

	if _, err := NewWithWriter(&cfg, "test", &bytes.Buffer{}); err == nil {
		t.Error("NewWithWriter() error = nil, want an error for an unknown level")
	}
}
