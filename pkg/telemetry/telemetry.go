package telemetry

import (
	"context"
	"fmt"
	"io"

	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/telemetry/health"
	"zedtex/zedtex/pkg/telemetry/logging"
	"zedtex/zedtex/pkg/telemetry/metrics"
	"zedtex/zedtex/pkg/telemetry/tracing"
)

// Telemetry owns the logger, metrics collector, tracer and health checker
// built from one TelemetryConfig.
type Telemetry struct {
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer
	health  *health.Checker
}

// New builds every component. Logs are written to stderr.
func New(cfg *config.TelemetryConfig, version string) (*Telemetry, error) {
	return NewWithWriter(cfg, version, nil)
}

// NewWithWriter is New with an explicit log destination; nil means stderr.
func NewWithWriter(cfg *config.TelemetryConfig, version string, w io.Writer) (*Telemetry, error) {
	logger, err := logging.New(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
		Writer:    w,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	tracer, err := tracing.New(&cfg.Tracing, version)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Metrics, nil)
	}

	return &Telemetry{
		logger:  logger,
		metrics: collector,
		tracer:  tracer,
		health:  health.New(cfg.Health.CheckTimeout).WithVersion(version),
	}, nil
}

// Logger returns the structured logger.
func (t *Telemetry) Logger() *logging.Logger { return t.logger }

// Metrics returns the collector, or nil when metrics are disabled.
func (t *Telemetry) Metrics() *metrics.Collector { return t.metrics }

// Tracer returns the tracer. It is never nil.
func (t *Telemetry) Tracer() *tracing.Tracer { return t.tracer }

// Health returns the health checker.
func (t *Telemetry) Health() *health.Checker { return t.health }

// Shutdown flushes pending spans.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return t.tracer.Shutdown(ctx)
}
