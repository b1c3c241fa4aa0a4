package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Attribute keys. Custom keys use the "zedtex.*" namespace.
const (
	AttrRunID   = "zedtex.run_id"
	AttrFile    = "zedtex.file"
	AttrDialect = "zedtex.dialect"

	AttrSourceBytes = "zedtex.source.bytes"
	AttrTokens      = "zedtex.tokens"
	AttrItems       = "zedtex.items"
	AttrNodes       = "zedtex.nodes"
	AttrWarnings    = "zedtex.warnings"

	AttrCacheHit     = "zedtex.cache.hit"
	AttrCacheBackend = "zedtex.cache.backend"

	AttrErrorType    = "zedtex.error.type"
	AttrErrorLine    = "zedtex.error.line"
	AttrErrorColumn  = "zedtex.error.column"
	AttrErrorMessage = "error.message"
)

// Span names for the compile pipeline.
const (
	SpanCompile  = "zedtex.compile"
	SpanLex      = "zedtex.lex"
	SpanParse    = "zedtex.parse"
	SpanGenerate = "zedtex.generate"
)

// SetCompileAttributes sets the attributes shared by every compile span.
func SetCompileAttributes(span trace.Span, runID, file, dialect string) {
	span.SetAttributes(
		attribute.String(AttrRunID, runID),
		attribute.String(AttrDialect, dialect),
	)
	if file != "" {
		span.SetAttributes(attribute.String(AttrFile, file))
	}
}

// SetCacheAttributes records a cache lookup outcome.
func SetCacheAttributes(span trace.Span, hit bool, backend string) {
	span.SetAttributes(
		attribute.Bool(AttrCacheHit, hit),
		attribute.String(AttrCacheBackend, backend),
	)
}

// SetDiagnosticAttributes records where a compile error occurred and marks
// the span failed.
func SetDiagnosticAttributes(span trace.Span, err error, errType string, line, column int) {
	if err == nil {
		return
	}
	span.SetAttributes(
		attribute.String(AttrErrorType, errType),
		attribute.Int(AttrErrorLine, line),
		attribute.Int(AttrErrorColumn, column),
	)
	SetError(span, err)
}

// AttributeBuilder provides a fluent interface for building span attributes.
type AttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewAttributeBuilder creates a new attribute builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 8),
	}
}

// WithRun adds the run ID and dialect.
func (ab *AttributeBuilder) WithRun(runID, dialect string) *AttributeBuilder {
	ab.attrs = append(ab.attrs,
		attribute.String(AttrRunID, runID),
		attribute.String(AttrDialect, dialect),
	)
	return ab
}

// WithFile adds the source file name, if any.
func (ab *AttributeBuilder) WithFile(file string) *AttributeBuilder {
	if file != "" {
		ab.attrs = append(ab.attrs, attribute.String(AttrFile, file))
	}
	return ab
}

// WithCount adds an integer attribute such as AttrTokens or AttrItems.
func (ab *AttributeBuilder) WithCount(key string, n int) *AttributeBuilder {
	ab.attrs = append(ab.attrs, attribute.Int(key, n))
	return ab
}

// Build returns the attributes as a span start option.
func (ab *AttributeBuilder) Build() trace.SpanStartOption {
	return trace.WithAttributes(ab.attrs...)
}

// Apply sets the attributes on an existing span.
func (ab *AttributeBuilder) Apply(span trace.Span) {
	span.SetAttributes(ab.attrs...)
}

// Attributes returns the collected attributes.
func (ab *AttributeBuilder) Attributes() []attribute.KeyValue {
	return ab.attrs
}
