package parser

import (
	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
	"zedtex/zedtex/pkg/zed/token"
)

// Parser parses token streams into documents.
// A Parser holds configuration only and may be reused.
type Parser struct {
	file   string // recorded in error locations
	source string // used to build error snippets
}

// NewParser creates a new parser with default configuration.
func NewParser() *Parser {
	return &Parser{}
}

// WithSource sets the source text the tokens came from, so errors carry a snippet.
func (p *Parser) WithSource(source string) *Parser {
	p.source = source
	return p
}

// WithFile sets the file name recorded in error locations.
func (p *Parser) WithFile(name string) *Parser {
	p.file = name
	return p
}

// Parse parses tokens with the default configuration.
func Parse(tokens []token.Token) (*ast.Document, error) {
	return NewParser().Parse(tokens)
}

// Parse builds a document from tokens. It stops at the first grammar
// violation and returns a *errors.ParseError pointing at the offending token.
func (p *Parser) Parse(tokens []token.Token) (*ast.Document, error) {
	s := newState(p.file, p.source, tokens)
	return s.parseDocument()
}

// ParseExpr parses tokens holding exactly one expression.
func (p *Parser) ParseExpr(tokens []token.Token) (ast.Expr, error) {
	s := newState(p.file, p.source, tokens)
	s.skipNewlines()
	e, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	s.skipNewlines()
	if t := s.peek(); t.Kind != token.EOF {
		return nil, s.errorExpected("end of input")
	}
	return e, nil
}

// state is one parse in progress.
type state struct {
	file   string
	source string
	toks   []token.Token
	pos    int

	// nesting counts open brackets; line ends inside brackets are insignificant
	nesting int

	// typeCtx makes the identifier "x" the Cartesian product operator
	typeCtx bool

	// base relocates tokens of an embedded math span to their place in the source
	base *token.Token
	// offset is the rune offset of the span within base
	offset int
}

func newState(file, source string, tokens []token.Token) *state {
	if n := len(tokens); n == 0 || tokens[n-1].Kind != token.EOF {
		line, col := 1, 1
		if n > 0 {
			line, col = tokens[n-1].Line, tokens[n-1].EndColumn
		}
		tokens = append(tokens[:n:n], token.Token{Kind: token.EOF, Line: line, Column: col, EndColumn: col})
	}
	return &state{file: file, source: source, toks: tokens}
}

// peek returns the current token. Inside brackets it first steps over line ends.
func (s *state) peek() token.Token {
	if s.nesting > 0 {
		for s.toks[s.pos].Kind == token.Newline {
			s.pos++
		}
	}
	return s.toks[s.pos]
}

// peekAt returns the token n positions after the current one without skipping anything.
func (s *state) peekAt(n int) token.Token {
	i := s.pos + n
	if i >= len(s.toks) {
		i = len(s.toks) - 1
	}
	return s.toks[i]
}

func (s *state) next() token.Token {
	t := s.peek()
	if t.Kind != token.EOF {
		s.pos++
	}
	return t
}

func (s *state) atDelim(value string) bool {
	return s.peek().IsDelim(value)
}

func (s *state) atKeyword(name string) bool {
	return s.peek().IsKeyword(name)
}

func (s *state) atLineEnd() bool {
	k := s.peek().Kind
	return k == token.Newline || k == token.EOF
}

// expectLineEnd consumes the end of the current line.
func (s *state) expectLineEnd() error {
	switch s.peek().Kind {
	case token.Newline:
		s.pos++
		return nil
	case token.EOF:
		return nil
	}
	return s.errorExpected("end of line")
}

// skipNewlines steps over line ends and reports how many it skipped.
func (s *state) skipNewlines() int {
	n := 0
	for s.toks[s.pos].Kind == token.Newline {
		s.pos++
		n++
	}
	return n
}

func (s *state) expectDelim(value string) (token.Token, error) {
	if !s.atDelim(value) {
		return token.Token{}, s.errorExpected("'" + value + "'")
	}
	return s.next(), nil
}

func (s *state) expectKeyword(name string) (token.Token, error) {
	if !s.atKeyword(name) {
		return token.Token{}, s.errorExpected("'" + name + "'")
	}
	return s.next(), nil
}

// expectClosing consumes the delimiter that closes open, suggesting it when missing.
func (s *state) expectClosing(open token.Token, closing string) error {
	if s.atDelim(closing) {
		s.next()
		return nil
	}
	err := s.errorExpected("'" + closing + "'")
	err.Suggestion = zedErrors.SuggestClosing(open.Literal, closing)
	return err
}

// errorExpected reports that the current token is not what the grammar needs.
func (s *state) errorExpected(expected string) *zedErrors.ParseError {
	return s.errorAt(s.peek(), expected, "")
}

func (s *state) errorAt(t token.Token, expected, found string) *zedErrors.ParseError {
	if found == "" {
		found = t.Describe()
	}
	return zedErrors.NewParseError(s.source, s.loc(t), expected, found)
}

func (s *state) loc(t token.Token) ast.Location {
	if s.base != nil {
		return ast.Location{
			File:   s.file,
			Line:   s.base.Line,
			Column: s.base.Column + s.offset + t.Column - 1,
		}
	}
	return ast.Location{File: s.file, Line: t.Line, Column: t.Column}
}
