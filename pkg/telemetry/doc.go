// Package telemetry bundles zedtex's observability: structured logging,
// Prometheus metrics, OpenTelemetry tracing and health probes.
//
// # Components
//
//   - logging: slog-based structured logging with run context
//   - metrics: Prometheus collectors for compilations and the cache
//   - tracing: spans per compile stage, exported over OTLP gRPC
//   - health: liveness and readiness probes for the server
//
// # Usage
//
//	tel, err := telemetry.New(&cfg.Telemetry, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer tel.Shutdown(context.Background())
//
//	tel.Logger().Info("compiled", "file", name)
//	ctx, span := tel.Tracer().Start(ctx, tracing.SpanCompile)
//	defer span.End()
//
// Logs go to stderr so that compiled LaTeX on stdout stays clean.
package telemetry
