package zed

import (
	"zedtex/zedtex/pkg/zed/ast"
	"zedtex/zedtex/pkg/zed/generator"
	"zedtex/zedtex/pkg/zed/lexer"
	"zedtex/zedtex/pkg/zed/parser"
	"zedtex/zedtex/pkg/zed/token"
)

// Options configures a compilation. The zero value disables line width
// warnings; use DefaultOptions for the usual settings.
type Options struct {
	// File is recorded in error locations.
	File string

	Dialect generator.Dialect

	// Prose overrides the prose detection word lists. Empty lists keep the defaults.
	Prose lexer.ProseRules

	// MaxLineWidth is the warning threshold for boxed environments; 0 disables it.
	MaxLineWidth int

	// Standalone wraps the output in a complete LaTeX document.
	Standalone bool
}

// DefaultOptions returns options for the Fuzz dialect with the default line width.
func DefaultOptions() Options {
	return Options{
		Dialect:      generator.Fuzz,
		Prose:        lexer.DefaultProseRules(),
		MaxLineWidth: generator.DefaultMaxLineWidth,
	}
}

func (o Options) lexer() *lexer.Lexer {
	return lexer.New().WithProse(o.Prose).WithFile(o.File)
}

func (o Options) parser(source string) *parser.Parser {
	return parser.NewParser().WithSource(source).WithFile(o.File)
}

func (o Options) generator() *generator.Generator {
	return generator.NewGenerator(o.Dialect).
		WithMaxLineWidth(o.MaxLineWidth).
		WithStandalone(o.Standalone)
}

// Tokenize lexes source with the default prose rules.
func Tokenize(source string) ([]token.Token, error) {
	return TokenizeWithOptions(source, DefaultOptions())
}

// TokenizeWithOptions lexes source.
func TokenizeWithOptions(source string, opts Options) ([]token.Token, error) {
	return opts.lexer().Tokenize(source)
}

// Parse lexes and parses a document.
func Parse(source string) (*ast.Document, error) {
	return ParseWithOptions(source, DefaultOptions())
}

// ParseWithOptions lexes and parses a document.
func ParseWithOptions(source string, opts Options) (*ast.Document, error) {
	tokens, err := opts.lexer().Tokenize(source)
	if err != nil {
		return nil, err
	}
	return opts.parser(source).Parse(tokens)
}

// ParseExpr lexes and parses a single expression.
func ParseExpr(source string) (ast.Expr, error) {
	opts := DefaultOptions()
	tokens, err := opts.lexer().Tokenize(source)
	if err != nil {
		return nil, err
	}
	return opts.parser(source).ParseExpr(tokens)
}

// Generate renders a parsed document in the given dialect.
func Generate(doc *ast.Document, dialect generator.Dialect) (*generator.Output, error) {
	return generator.Generate(doc, dialect)
}

// Compile translates whiteboard source to LaTeX in the given dialect.
//
// The error, if any, is a *errors.LexError, *errors.ParseError or
// *errors.GenerationError from the stage that failed.
func Compile(source string, dialect generator.Dialect) (*generator.Output, error) {
	opts := DefaultOptions()
	opts.Dialect = dialect
	return CompileWithOptions(source, opts)
}

// CompileWithOptions translates whiteboard source to LaTeX.
func CompileWithOptions(source string, opts Options) (*generator.Output, error) {
	doc, err := ParseWithOptions(source, opts)
	if err != nil {
		return nil, err
	}
	return opts.generator().Generate(doc)
}
