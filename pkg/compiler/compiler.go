package compiler

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"zedtex/zedtex/pkg/cache"
	"zedtex/zedtex/pkg/config"
	"zedtex/zedtex/pkg/telemetry/logging"
	"zedtex/zedtex/pkg/telemetry/metrics"
	"zedtex/zedtex/pkg/telemetry/tracing"
	"zedtex/zedtex/pkg/zed"
	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
	"zedtex/zedtex/pkg/zed/generator"
	"zedtex/zedtex/pkg/zed/lexer"
	"zedtex/zedtex/pkg/zed/parser"
	"zedtex/zedtex/pkg/zed/token"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// Stage names used for spans and metrics.
const (
	StageLex      = "lex"
	StageParse    = "parse"
	StageGenerate = "generate"
)

// Status labels for the compiles_total metric.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusCached  = "cached"
)

// Request is one source to compile.
type Request struct {
	// Name is shown in error locations and logs; usually the file path.
	Name string

	Source string

	Dialect generator.Dialect
}

// Result is a successful compilation.
type Result struct {
	RunID string

	Name string

	Dialect generator.Dialect

	Output string

	Warnings []generator.Warning

	// Tokens is the lexer token count; zero for cached results.
	Tokens int

	Cached bool

	Duration time.Duration
}

// Compiler runs the lex, parse and generate pipeline with caching, logging,
// metrics and tracing around it. The zero value is not usable; call New.
type Compiler struct {
	opts    zed.Options
	version string

	store   cache.Store
	logger  *logging.Logger
	metrics *metrics.Collector
	tracer  *tracing.Tracer

	now func() time.Time
}

// New creates a compiler with opts as the base options for every request.
// The request's Dialect and Name override opts.Dialect and opts.File.
func New(opts zed.Options) *Compiler {
	return &Compiler{
		opts:    opts,
		version: "dev",
		logger:  logging.Discard(),
		tracer:  tracing.Disabled(),
		now:     time.Now,
	}
}

// OptionsFromConfig converts the compiler and prose sections to zed.Options.
func OptionsFromConfig(cfg *config.Config) (zed.Options, error) {
	opts := zed.DefaultOptions()

	d, err := generator.ParseDialect(cfg.Compiler.Dialect)
	if err != nil {
		return opts, err
	}
	opts.Dialect = d
	opts.MaxLineWidth = cfg.Compiler.MaxLineWidth
	opts.Standalone = cfg.Compiler.Standalone

	if len(cfg.Prose.Starters) > 0 {
		opts.Prose.Starters = cfg.Prose.Starters
	}
	if len(cfg.Prose.Indicators) > 0 {
		opts.Prose.Indicators = cfg.Prose.Indicators
	}
	if cfg.Prose.Lookahead > 0 {
		opts.Prose.Lookahead = cfg.Prose.Lookahead
	}
	return opts, nil
}

// WithCache enables result caching. A nil store disables it.
func (c *Compiler) WithCache(store cache.Store) *Compiler {
	c.store = store
	return c
}

// WithLogger sets the logger.
func (c *Compiler) WithLogger(logger *logging.Logger) *Compiler {
	c.logger = logger.With("component", "compiler")
	return c
}

// WithMetrics sets the metrics collector; nil disables metrics.
func (c *Compiler) WithMetrics(collector *metrics.Collector) *Compiler {
	c.metrics = collector
	return c
}

// WithTracer sets the tracer.
func (c *Compiler) WithTracer(tracer *tracing.Tracer) *Compiler {
	if tracer != nil {
		c.tracer = tracer
	}
	return c
}

// WithVersion sets the version folded into cache keys, so that an upgrade
// never serves output from an older compiler.
func (c *Compiler) WithVersion(version string) *Compiler {
	c.version = version
	return c
}

// Options returns the base options.
func (c *Compiler) Options() zed.Options {
	return c.opts
}

// requestOptions applies the request to the base options.
func (c *Compiler) requestOptions(req Request) zed.Options {
	opts := c.opts
	opts.File = req.Name
	opts.Dialect = req.Dialect
	return opts
}

// CacheKey returns the cache key for source compiled with opts by the given
// compiler version. Every option that changes the output is part of the key.
func CacheKey(source string, opts zed.Options, version string) string {
	h := sha256.New()
	parts := []string{
		version,
		opts.Dialect.String(),
		strconv.FormatBool(opts.Standalone),
		strconv.Itoa(opts.MaxLineWidth),
		strings.Join(opts.Prose.Starters, ","),
		strings.Join(opts.Prose.Indicators, ","),
		strconv.Itoa(opts.Prose.Lookahead),
		source,
	}
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Compile translates req.Source. Errors from the pipeline are returned
// unwrapped, so callers can match *errors.LexError, *errors.ParseError and
// *errors.GenerationError with errors.As.
func (c *Compiler) Compile(ctx context.Context, req Request) (*Result, error) {
	start := c.now()
	runID := uuid.NewString()
	dialect := req.Dialect.String()
	opts := c.requestOptions(req)

	ctx = logging.WithRunID(ctx, runID)
	ctx = logging.WithDialect(ctx, dialect)
	if req.Name != "" {
		ctx = logging.WithSourceFile(ctx, req.Name)
	}

	ctx, span := c.tracer.Start(ctx, tracing.SpanCompile)
	defer span.End()
	tracing.SetCompileAttributes(span, runID, req.Name, dialect)

	result := &Result{RunID: runID, Name: req.Name, Dialect: req.Dialect}

	key := CacheKey(req.Source, opts, c.version)
	if entry, ok := c.lookup(ctx, key); ok {
		tracing.SetCacheAttributes(span, true, c.store.Backend())
		result.Output = entry.Text
		result.Warnings = entry.Warnings
		result.Cached = true
		result.Duration = c.now().Sub(start)
		c.metrics.RecordCompile(dialect, StatusCached, result.Duration, len(req.Source))
		c.logger.DebugContext(ctx, "served from cache", "key", key[:12])
		return result, nil
	}
	if c.store != nil {
		tracing.SetCacheAttributes(span, false, c.store.Backend())
	}

	out, tokens, err := c.run(ctx, req.Source, opts)
	result.Duration = c.now().Sub(start)
	if err != nil {
		c.recordFailure(ctx, span, err)
		c.metrics.RecordCompile(dialect, StatusError, result.Duration, len(req.Source))
		return nil, err
	}

	result.Output = out.Text
	result.Warnings = out.Warnings
	result.Tokens = tokens

	c.metrics.RecordCompile(dialect, StatusSuccess, result.Duration, len(req.Source))
	c.metrics.RecordWarnings(dialect, len(out.Warnings))
	tracing.SetStatus(span, nil)

	c.logger.DebugContext(ctx, "compiled",
		"tokens", tokens,
		"warnings", len(out.Warnings),
		"duration", result.Duration.String(),
	)

	c.save(ctx, &cache.Entry{
		Key:       key,
		Dialect:   dialect,
		Text:      out.Text,
		Warnings:  out.Warnings,
		CreatedAt: c.now(),
	})

	return result, nil
}

// run executes the three stages, each in its own span.
func (c *Compiler) run(ctx context.Context, source string, opts zed.Options) (*generator.Output, int, error) {
	tokens, err := c.lex(ctx, source, opts)
	if err != nil {
		return nil, 0, err
	}
	c.metrics.RecordTokens(opts.Dialect.String(), len(tokens))

	doc, err := c.parse(ctx, source, tokens, opts)
	if err != nil {
		return nil, len(tokens), err
	}

	out, err := c.generate(ctx, doc, opts)
	if err != nil {
		return nil, len(tokens), err
	}
	return out, len(tokens), nil
}

func (c *Compiler) lex(ctx context.Context, source string, opts zed.Options) ([]token.Token, error) {
	_, span := c.tracer.Start(ctx, tracing.SpanLex)
	defer span.End()
	defer c.timeStage(StageLex, c.now())

	tokens, err := lexer.New().WithProse(opts.Prose).WithFile(opts.File).Tokenize(source)
	if err != nil {
		tracing.SetError(span, err)
		return nil, err
	}
	tracing.NewAttributeBuilder().WithCount(tracing.AttrTokens, len(tokens)).Apply(span)
	return tokens, nil
}

func (c *Compiler) parse(ctx context.Context, source string, tokens []token.Token, opts zed.Options) (*ast.Document, error) {
	_, span := c.tracer.Start(ctx, tracing.SpanParse)
	defer span.End()
	defer c.timeStage(StageParse, c.now())

	doc, err := parser.NewParser().WithSource(source).WithFile(opts.File).Parse(tokens)
	if err != nil {
		tracing.SetError(span, err)
		return nil, err
	}
	nodes := ast.NewCountingVisitor()
	if err := ast.Walk(doc, nodes); err != nil {
		tracing.SetError(span, err)
		return nil, err
	}
	tracing.NewAttributeBuilder().
		WithCount(tracing.AttrItems, len(doc.Items)).
		WithCount(tracing.AttrNodes, nodes.Total()).
		Apply(span)
	c.logger.DebugContext(ctx, "parsed document", "items", len(doc.Items), "nodes", nodes.Total())
	return doc, nil
}

func (c *Compiler) generate(ctx context.Context, doc *ast.Document, opts zed.Options) (*generator.Output, error) {
	_, span := c.tracer.Start(ctx, tracing.SpanGenerate)
	defer span.End()
	defer c.timeStage(StageGenerate, c.now())

	out, err := generator.NewGenerator(opts.Dialect).
		WithMaxLineWidth(opts.MaxLineWidth).
		WithStandalone(opts.Standalone).
		Generate(doc)
	if err != nil {
		tracing.SetError(span, err)
		return nil, err
	}
	tracing.NewAttributeBuilder().WithCount(tracing.AttrWarnings, len(out.Warnings)).Apply(span)
	return out, nil
}

func (c *Compiler) timeStage(stage string, start time.Time) {
	c.metrics.RecordStage(stage, c.now().Sub(start))
}

// Tokenize runs only the lexer.
func (c *Compiler) Tokenize(ctx context.Context, name, source string) ([]token.Token, error) {
	opts := c.opts
	opts.File = name
	return c.lex(ctx, source, opts)
}

// Parse runs the lexer and parser.
func (c *Compiler) Parse(ctx context.Context, name, source string) (*ast.Document, error) {
	opts := c.opts
	opts.File = name
	tokens, err := c.lex(ctx, source, opts)
	if err != nil {
		return nil, err
	}
	return c.parse(ctx, source, tokens, opts)
}

func (c *Compiler) lookup(ctx context.Context, key string) (*cache.Entry, bool) {
	if c.store == nil {
		return nil, false
	}
	entry, ok, err := c.store.Get(ctx, key)
	if err != nil {
		c.logger.WarnContext(ctx, "cache lookup failed", "error", err)
		return nil, false
	}
	if ok {
		c.metrics.RecordCacheHit(c.store.Backend())
	} else {
		c.metrics.RecordCacheMiss(c.store.Backend())
	}
	return entry, ok
}

// save stores a result. Cache failures are logged and never fail a compile.
func (c *Compiler) save(ctx context.Context, entry *cache.Entry) {
	if c.store == nil {
		return
	}
	if err := c.store.Put(ctx, entry); err != nil {
		c.logger.WarnContext(ctx, "cache store failed", "error", err)
		return
	}
	if st, err := c.store.Stats(ctx); err == nil {
		c.metrics.UpdateCacheSize(c.store.Backend(), st.Entries)
	}
}

// recordFailure classifies err for metrics and the span. Failures are logged
// at debug level; reporting them to the user is the caller's job.
func (c *Compiler) recordFailure(ctx context.Context, span trace.Span, err error) {
	var diag zedErrors.Diagnostic
	if !stderrors.As(err, &diag) {
		c.metrics.RecordError("unknown")
		tracing.SetError(span, err)
		c.logger.DebugContext(ctx, "compile failed", "error", err)
		return
	}

	loc := diag.Position()
	errType := string(diag.Type())
	c.metrics.RecordError(errType)
	tracing.SetDiagnosticAttributes(span, err, errType, loc.Line, loc.Column)
	c.logger.DebugContext(ctx, "compile failed",
		"type", errType,
		"location", loc.String(),
		"error", err,
	)
}

// canary is compiled by HealthCheck.
const (
	canarySource = "p and q => r"
	canaryOutput = `\[ p \land q \implies r \]` + "\n"
)

// HealthCheck compiles a fixed expression in the Fuzz dialect and compares
// the result. It bypasses the cache.
func (c *Compiler) HealthCheck(ctx context.Context) error {
	opts := c.opts
	opts.Dialect = generator.Fuzz
	opts.Standalone = false
	out, _, err := c.run(ctx, canarySource, opts)
	if err != nil {
		return fmt.Errorf("canary compile failed: %w", err)
	}
	if out.Text != canaryOutput {
		return fmt.Errorf("canary output %q, want %q", out.Text, canaryOutput)
	}
	return nil
}
