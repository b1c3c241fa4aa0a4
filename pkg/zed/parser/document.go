package parser

import (
	stderrors "errors"

	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
	"zedtex/zedtex/pkg/zed/symbols"
	"zedtex/zedtex/pkg/zed/token"
)

// Outline levels. A heading closes every open heading at its level or deeper.
const (
	levelSection  = 1
	levelSolution = 2
	levelPart     = 3
)

type frame struct {
	level int
	node  ast.Item // nil for the document itself
	items []ast.Item
}

// outline tracks the open section, solution and part while items are parsed.
type outline struct {
	frames []*frame
}

func newOutline() *outline {
	return &outline{frames: []*frame{{}}}
}

func (o *outline) add(item ast.Item) {
	top := o.frames[len(o.frames)-1]
	top.items = append(top.items, item)
}

func (o *outline) open(level int, node ast.Item) {
	o.closeTo(level)
	o.frames = append(o.frames, &frame{level: level, node: node})
}

func (o *outline) closeTo(level int) {
	for len(o.frames) > 1 {
		top := o.frames[len(o.frames)-1]
		if top.level < level {
			return
		}
		o.frames = o.frames[:len(o.frames)-1]
		switch n := top.node.(type) {
		case *ast.Section:
			n.Items = top.items
		case *ast.Solution:
			n.Items = top.items
		case *ast.Part:
			n.Items = top.items
		}
		o.add(top.node)
	}
}

func (o *outline) finish() []ast.Item {
	o.closeTo(levelSection)
	return o.frames[0].items
}

// parseDocument parses items until the end of input.
func (s *state) parseDocument() (*ast.Document, error) {
	o := newOutline()
	for {
		s.skipNewlines()
		if s.peek().Kind == token.EOF {
			break
		}
		if err := s.parseLine(o); err != nil {
			return nil, err
		}
	}
	return &ast.Document{Items: o.finish()}, nil
}

// parseLine parses the item starting at the current line.
func (s *state) parseLine(o *outline) error {
	t := s.peek()
	switch t.Kind {
	case token.SectionHeader:
		s.next()
		o.open(levelSection, &ast.Section{Title: t.Value, Location: s.loc(t)})
		return s.expectLineEnd()

	case token.SolutionHeader:
		s.next()
		o.open(levelSolution, &ast.Solution{Label: t.Value, Location: s.loc(t)})
		return s.expectLineEnd()

	case token.PartLabel:
		s.next()
		o.open(levelPart, &ast.Part{Label: t.Value, Location: s.loc(t)})
		if s.atLineEnd() {
			return s.expectLineEnd()
		}
		return s.parseLine(o)

	case token.Text:
		s.next()
		block, err := s.textBlock(ast.TextProse, []token.Token{t})
		if err != nil {
			return err
		}
		o.add(block)
		return s.expectLineEnd()
	}

	item, err := s.parseItem()
	if err != nil {
		return err
	}
	o.add(item)
	return nil
}

// parseItem parses one block or statement and the end of its last line.
func (s *state) parseItem() (ast.Item, error) {
	t := s.peek()
	if t.Kind == token.Keyword {
		switch t.Value {
		case symbols.Given:
			return s.parseGiven()
		case symbols.Axdef, symbols.Schema, symbols.Gendef:
			return s.parseBox()
		case symbols.Zed:
			return s.parseZedBlock()
		case symbols.TextBlock:
			return s.parseTextBlock(ast.TextProse)
		case symbols.PureTextBlock:
			return s.parseTextBlock(ast.TextPure)
		case symbols.LatexBlock:
			return s.parseTextBlock(ast.TextLatex)
		case symbols.ProofBlock:
			return s.parseProof()
		case symbols.EquivBlock:
			return s.parseEquiv()
		case symbols.TruthTable:
			return s.parseTruthTable()
		case symbols.PageBreak:
			s.next()
			return &ast.PageBreak{Location: s.loc(t)}, s.expectLineEnd()
		}
	}

	if t.Kind == token.Identifier {
		switch {
		case s.peekAt(1).IsDelim(token.Defines):
			return s.parseFreeType()
		case s.lineHasDelim(token.Abbrev):
			return s.parseAbbreviation()
		}
	}

	start := s.pos
	e, err := s.parseExpr()
	if err == nil {
		err = s.expectLineEnd()
	}
	if err != nil {
		return nil, s.withKeywordHint(err, start)
	}
	return &ast.ExprItem{Expr: e, Location: s.loc(t)}, nil
}

// withKeywordHint adds a "Did you mean" suggestion when a line that failed
// to parse starts with a misspelt keyword such as "axdeff" or "PROFF:".
func (s *state) withKeywordHint(err error, start int) error {
	var perr *zedErrors.ParseError
	first := s.toks[start]
	if !stderrors.As(err, &perr) || perr.Suggestion != "" || first.Kind != token.Identifier {
		return err
	}
	hint := zedErrors.SuggestKeyword(first.Value, symbols.Keywords())
	if hint == "" && s.toks[start+1].IsDelim(token.Colon) {
		hint = zedErrors.SuggestKeyword(first.Value+":", symbols.BlockKeywords())
	}
	perr.Suggestion = hint
	return err
}

// lineHasDelim reports whether delimiter value occurs on the rest of the line.
func (s *state) lineHasDelim(value string) bool {
	for i := s.pos; i < len(s.toks); i++ {
		t := s.toks[i]
		if t.Kind == token.Newline || t.Kind == token.EOF {
			return false
		}
		if t.IsDelim(value) {
			return true
		}
	}
	return false
}

// parseNames parses "A, B, C".
func (s *state) parseNames() ([]string, error) {
	var names []string
	for {
		t := s.peek()
		if !isNameToken(t) {
			return nil, s.errorExpected("name")
		}
		s.next()
		names = append(names, nameOf(t))
		if !s.atDelim(token.Comma) {
			return names, nil
		}
		s.next()
	}
}

// parseGenerics parses an optional "[X, Y]" parameter list.
func (s *state) parseGenerics() ([]string, error) {
	if !s.atDelim(token.LBracket) {
		return nil, nil
	}
	open := s.next()
	names, err := s.parseNames()
	if err != nil {
		return nil, err
	}
	if err := s.expectClosing(open, token.RBracket); err != nil {
		return nil, err
	}
	return names, nil
}

// parseGiven parses "given A, B".
func (s *state) parseGiven() (ast.Item, error) {
	kw := s.next()
	names, err := s.parseNames()
	if err != nil {
		return nil, err
	}
	return &ast.GivenType{Names: names, Location: s.loc(kw)}, s.expectLineEnd()
}

// parseFreeType parses "T ::= a | b<E> | c(E)". A following line that
// starts with "|" continues the branch list.
func (s *state) parseFreeType() (ast.Item, error) {
	name := s.next()
	s.next() // ::=
	ft := &ast.FreeType{Name: name.Value, Location: s.loc(name)}

	for {
		b, err := s.parseBranch()
		if err != nil {
			return nil, err
		}
		ft.Branches = append(ft.Branches, b)

		if s.atDelim(token.Bar) {
			s.next()
			continue
		}
		if s.peek().Kind == token.Newline && s.peekAt(1).IsDelim(token.Bar) {
			s.next()
			s.next()
			continue
		}
		break
	}
	return ft, s.expectLineEnd()
}

func (s *state) parseBranch() (ast.Branch, error) {
	t := s.peek()
	if t.Kind != token.Identifier {
		return ast.Branch{}, s.errorExpected("constructor name")
	}
	s.next()
	b := ast.Branch{Name: t.Value, Location: s.loc(t)}

	var closing string
	switch {
	case s.atDelim(token.LAngle):
		closing = token.RAngle
	case s.atDelim(token.LParen):
		closing = token.RParen
	default:
		return b, nil
	}

	open := s.next()
	s.nesting++
	defer func() { s.nesting-- }()
	param, err := s.parseType()
	if err != nil {
		return ast.Branch{}, err
	}
	if err := s.expectClosing(open, closing); err != nil {
		return ast.Branch{}, err
	}
	b.Param = param
	return b, nil
}

// parseAbbreviation parses "Name[X] == E". The body is read as a type, so
// "Pair == N x N" is a product.
func (s *state) parseAbbreviation() (ast.Item, error) {
	name := s.next()
	generics, err := s.parseGenerics()
	if err != nil {
		return nil, err
	}
	if _, err := s.expectDelim(token.Abbrev); err != nil {
		return nil, err
	}
	body, err := s.parseType()
	if err != nil {
		return nil, err
	}
	abbr := &ast.Abbreviation{Name: name.Value, Generics: generics, Body: body, Location: s.loc(name)}
	return abbr, s.expectLineEnd()
}
