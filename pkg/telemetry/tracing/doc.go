// Package tracing provides OpenTelemetry tracing for zedtex.
//
// A compilation produces one zedtex.compile span with a child span per
// pipeline stage (zedtex.lex, zedtex.parse, zedtex.generate). Spans are
// batched to an OTLP collector over gRPC. When tracing is disabled the
// Tracer hands out noop spans, so instrumented code never branches on
// whether tracing is on.
//
// # Sampling Strategies
//
//   - always: sample every compilation
//   - never: sample nothing
//   - ratio: sample a fraction chosen by sample_ratio
//
// All strategies respect a propagated parent's decision.
//
// # Usage
//
//	tracer, err := tracing.New(&cfg.Telemetry.Tracing, version.Version)
//	if err != nil {
//	    return err
//	}
//	defer tracer.Shutdown(context.Background())
//
//	ctx, span := tracer.Start(ctx, tracing.SpanParse)
//	defer span.End()
//
// The HTTP server wraps its mux in HTTPMiddleware, which continues any
// W3C traceparent sent by the client.
package tracing
