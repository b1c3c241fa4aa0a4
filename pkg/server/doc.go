// Package server exposes the compiler over HTTP.
//
// # Routes
//
//	POST /v1/compile   {"source": "...", "dialect": "zed", "name": "hw1.txt"}
//	GET  /health       liveness probe
//	GET  /ready        readiness probe, runs the compiler canary
//	GET  /metrics      Prometheus exposition
//
// The health and metrics paths come from the telemetry configuration and
// are only mounted when configured with WithHealth and WithMetrics.
//
// A compile response always has the same shape:
//
//	{"output": "\\begin{zed}...", "warnings": [], "error": null}
//
// A source that fails to lex, parse or generate answers 422 with error set to
// its type, message, line, column and snippet. Malformed requests answer 400.
//
// # Middleware
//
// Requests pass through, outermost first: panic recovery, request ID
// (X-Request-ID, generated when absent), request logging, and a server span
// that continues any incoming traceparent.
//
// # Usage
//
//	srv := server.NewServer(&cfg.Server, comp).
//	    WithLogger(tel.Logger()).
//	    WithMetrics(tel.Metrics(), cfg.Telemetry.Metrics.Path).
//	    WithTracer(tel.Tracer()).
//	    WithHealth(tel.Health(), cfg.Telemetry.Health)
//	if err := srv.Start(ctx); err != nil {
//	    return err
//	}
//
// Start returns once ctx is cancelled and in-flight requests have finished,
// or ShutdownTimeout has passed.
package server
