package generator

import (
	"fmt"
	"strings"

	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
)

// DefaultMaxLineWidth is the line length above which box lines draw a warning.
const DefaultMaxLineWidth = 80

// Generator turns documents into LaTeX for one dialect.
// A Generator holds configuration only; Generate may be called concurrently.
type Generator struct {
	dialect    Dialect
	profile    *profile
	maxWidth   int
	standalone bool
}

// NewGenerator creates a generator for dialect. Unknown dialects fall back to Fuzz.
func NewGenerator(dialect Dialect) *Generator {
	p, ok := profiles[dialect]
	if !ok {
		dialect, p = Fuzz, profiles[Fuzz]
	}
	return &Generator{
		dialect:  dialect,
		profile:  p,
		maxWidth: DefaultMaxLineWidth,
	}
}

// WithMaxLineWidth sets the width checked inside boxed environments.
// Zero or less disables the check.
func (g *Generator) WithMaxLineWidth(n int) *Generator {
	g.maxWidth = n
	return g
}

// WithStandalone wraps the output in a complete LaTeX document.
func (g *Generator) WithStandalone(standalone bool) *Generator {
	g.standalone = standalone
	return g
}

// Dialect returns the generator's dialect.
func (g *Generator) Dialect() Dialect {
	return g.dialect
}

// Warning is an advisory note about the output. Warnings never change the text.
type Warning struct {
	Location ast.Location
	Message  string
}

func (w Warning) String() string {
	if w.Location.IsValid() {
		return w.Location.String() + ": " + w.Message
	}
	return w.Message
}

// Output is the result of generation.
type Output struct {
	Text     string
	Warnings []Warning
}

// Generate renders doc with the default configuration.
func Generate(doc *ast.Document, dialect Dialect) (*Output, error) {
	return NewGenerator(dialect).Generate(doc)
}

// Generate renders a document. It fails with a *errors.GenerationError on a
// node it cannot render and never returns partial output.
func (g *Generator) Generate(doc *ast.Document) (*Output, error) {
	r := &run{g: g, p: g.profile}

	body, err := r.items(doc.Items)
	if err != nil {
		return nil, err
	}
	if g.standalone {
		body = r.standalone(body)
	} else if body != "" {
		body += "\n"
	}
	return &Output{Text: body, Warnings: r.warnings}, nil
}

// GenerateExpr renders a single expression as math-mode LaTeX without delimiters.
func (g *Generator) GenerateExpr(e ast.Expr) (string, error) {
	r := &run{g: g, p: g.profile}
	return r.expr(e, topLevel())
}

// run is one generation in progress. It collects warnings.
type run struct {
	g        *Generator
	p        *profile
	warnings []Warning
}

func (r *run) warn(loc ast.Location, format string, args ...any) {
	r.warnings = append(r.warnings, Warning{Location: loc, Message: fmt.Sprintf(format, args...)})
}

// exprContext describes where an expression sits. It is passed down each
// call instead of being stored on the nodes.
type exprContext struct {
	// parent is the enclosing node; nil for a top-level expression
	parent ast.Node

	// body is set for the body of a quantifier or lambda
	body bool

	// tail is set when nothing of the parent follows the expression
	tail bool

	// box is set inside boxed environments, where line breaks are allowed
	box bool

	// indent is the current \t level for continued lines
	indent int
}

func topLevel() exprContext {
	return exprContext{tail: true}
}

func (c exprContext) child(parent ast.Node, tail bool) exprContext {
	return exprContext{parent: parent, tail: tail, box: c.box, indent: c.indent}
}

type (
	exprHandler func(r *run, e ast.Expr, ctx exprContext) (string, error)
	itemHandler func(r *run, item ast.Item) (string, error)
)

var (
	exprHandlers map[ast.NodeKind]exprHandler
	itemHandlers map[ast.NodeKind]itemHandler
)

func init() {
	exprHandlers = map[ast.NodeKind]exprHandler{
		ast.KindLiteral:       genLiteral,
		ast.KindUnary:         genUnary,
		ast.KindBinary:        genBinary,
		ast.KindQuantifier:    genQuantifier,
		ast.KindComprehension: genComprehension,
		ast.KindCollection:    genCollection,
		ast.KindTuple:         genTuple,
		ast.KindProjection:    genProjection,
		ast.KindRange:         genRange,
		ast.KindConditional:   genConditional,
		ast.KindApplication:   genApplication,
		ast.KindInstantiation: genInstantiation,
		ast.KindRelImage:      genRelImage,
		ast.KindScript:        genScript,
	}
	itemHandlers = map[ast.NodeKind]itemHandler{
		ast.KindSection:      genSection,
		ast.KindSolution:     genSolution,
		ast.KindPart:         genPart,
		ast.KindTruthTable:   genTruthTable,
		ast.KindEquivChain:   genEquivChain,
		ast.KindProofTree:    genProofTree,
		ast.KindGivenType:    genGivenType,
		ast.KindFreeType:     genFreeType,
		ast.KindAbbreviation: genAbbreviation,
		ast.KindBox:          genBox,
		ast.KindZedBlock:     genZedBlock,
		ast.KindTextBlock:    genTextBlock,
		ast.KindExprItem:     genExprItem,
		ast.KindPageBreak:    genPageBreak,
	}
}

// expr dispatches on the expression's kind.
func (r *run) expr(e ast.Expr, ctx exprContext) (string, error) {
	if e == nil {
		loc := ast.Location{}
		if ctx.parent != nil {
			loc = ctx.parent.Pos()
		}
		return "", zedErrors.NewGenerationError("", loc, "missing expression")
	}
	h, ok := exprHandlers[e.Kind()]
	if !ok {
		return "", zedErrors.NewGenerationError(e.Kind().String(), e.Pos(), "no rendering for node")
	}
	return h(r, e, ctx)
}

// item dispatches on the item's kind.
func (r *run) item(item ast.Item) (string, error) {
	if item == nil {
		return "", zedErrors.NewGenerationError("", ast.Location{}, "missing document item")
	}
	h, ok := itemHandlers[item.Kind()]
	if !ok {
		return "", zedErrors.NewGenerationError(item.Kind().String(), item.Pos(), "no rendering for node")
	}
	return h(r, item)
}

// items renders a list of items separated by blank lines.
func (r *run) items(items []ast.Item) (string, error) {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		s, err := r.item(item)
		if err != nil {
			return "", err
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n"), nil
}

func (r *run) standalone(body string) string {
	var sb strings.Builder
	sb.WriteString("\\documentclass{article}\n")
	for _, pkg := range r.p.packages {
		sb.WriteString("\\usepackage{" + pkg + "}\n")
	}
	sb.WriteString("\\usepackage{proof}\n")
	sb.WriteString("\\usepackage{amsmath}\n")
	sb.WriteString("\n\\begin{document}\n\n")
	if body != "" {
		sb.WriteString(body)
		sb.WriteString("\n\n")
	}
	sb.WriteString("\\end{document}\n")
	return sb.String()
}
