package parser

import (
	"strings"
	"unicode"

	"zedtex/zedtex/pkg/zed/ast"
	"zedtex/zedtex/pkg/zed/symbols"
	"zedtex/zedtex/pkg/zed/token"
)

// parsePrimary parses an atom: a literal, a bracketed form, a binder or a conditional.
func (s *state) parsePrimary() (ast.Expr, error) {
	t := s.peek()
	switch t.Kind {
	case token.Number:
		s.next()
		return &ast.Literal{Type: ast.LiteralNumber, Value: t.Value, Location: s.loc(t)}, nil

	case token.Identifier:
		s.next()
		return s.identifier(t), nil

	case token.Delimiter:
		switch t.Value {
		case token.LParen:
			return s.parseGroup()
		case token.LBrace:
			return s.parseBraces()
		case token.LAngle:
			return s.parseCollection(ast.CollectionSequence, token.RAngle)
		case token.LBag:
			return s.parseCollection(ast.CollectionBag, token.RBag)
		}

	case token.Keyword:
		switch t.Value {
		case symbols.Forall, symbols.Exists, symbols.Exists1, symbols.Mu, symbols.Lambda:
			return s.parseQuantifier()
		case symbols.If:
			return s.parseConditional()
		}
	}
	return nil, s.errorExpected("expression")
}

// identifier turns a name token into a literal, splitting a one-character
// subscript such as "x_1" into a script.
func (s *state) identifier(t token.Token) ast.Expr {
	loc := s.loc(t)
	base, sub, ok := splitSubscript(t.Value)
	if !ok {
		return ast.Ident(t.Value, loc)
	}
	subExpr := &ast.Literal{Type: ast.LiteralIdentifier, Value: sub, Location: loc}
	if unicode.IsDigit(rune(sub[0])) {
		subExpr.Type = ast.LiteralNumber
	}
	return &ast.Script{Base: ast.Ident(base, loc), Sub: subExpr, Location: loc}
}

// splitSubscript matches letters, an underscore and exactly one letter or digit.
func splitSubscript(name string) (base, sub string, ok bool) {
	i := strings.IndexByte(name, '_')
	if i <= 0 || i != len(name)-2 {
		return "", "", false
	}
	for _, r := range name[:i] {
		if !unicode.IsLetter(r) {
			return "", "", false
		}
	}
	c := rune(name[i+1])
	if c >= unicode.MaxASCII || !(unicode.IsLetter(c) || unicode.IsDigit(c)) {
		return "", "", false
	}
	return name[:i], name[i+1:], true
}

// parseGroup parses a parenthesized expression or a tuple.
func (s *state) parseGroup() (ast.Expr, error) {
	open := s.next()
	s.nesting++
	defer func() { s.nesting-- }()

	first, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	if !s.atDelim(token.Comma) {
		if err := s.expectClosing(open, token.RParen); err != nil {
			return nil, err
		}
		return first, nil
	}

	tuple := &ast.Tuple{Elements: []ast.Expr{first}, Location: s.loc(open)}
	for s.atDelim(token.Comma) {
		s.next()
		e, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		tuple.Elements = append(tuple.Elements, e)
	}
	if err := s.expectClosing(open, token.RParen); err != nil {
		return nil, err
	}
	return tuple, nil
}

// parseBraces parses a set literal or a set comprehension.
func (s *state) parseBraces() (ast.Expr, error) {
	if !s.bindingsAhead(1, true) {
		return s.parseCollection(ast.CollectionSet, token.RBrace)
	}

	open := s.next()
	s.nesting++
	defer func() { s.nesting-- }()
	saved := s.typeCtx
	s.typeCtx = false
	defer func() { s.typeCtx = saved }()

	bindings, err := s.parseBindings()
	if err != nil {
		return nil, err
	}
	comp := &ast.Comprehension{Bindings: bindings, Location: s.loc(open)}
	if s.atDelim(token.Bar) {
		s.next()
		if comp.Predicate, err = s.parseExpr(); err != nil {
			return nil, err
		}
	}
	if s.atDelim(token.At) || s.atDelim(token.Period) {
		s.next()
		if comp.Result, err = s.parseExpr(); err != nil {
			return nil, err
		}
	}
	if err := s.expectClosing(open, token.RBrace); err != nil {
		return nil, err
	}
	return comp, nil
}

func (s *state) parseCollection(typ ast.CollectionType, closing string) (ast.Expr, error) {
	open := s.peek()
	saved := s.typeCtx
	s.typeCtx = false
	defer func() { s.typeCtx = saved }()

	elems, err := s.parseList(closing)
	if err != nil {
		return nil, err
	}
	return &ast.Collection{Type: typ, Elements: elems, Location: s.loc(open)}, nil
}

// bindingsAhead reports whether the tokens starting skip positions ahead
// read "name, name, ... :". Line ends are stepped over only when spanLines is set.
func (s *state) bindingsAhead(skip int, spanLines bool) bool {
	s.peek()
	wantName := true
	for i := s.pos + skip; i < len(s.toks); i++ {
		t := s.toks[i]
		switch {
		case t.Kind == token.Newline:
			if !spanLines {
				return false
			}
		case wantName:
			if !isNameToken(t) {
				return false
			}
			wantName = false
		case t.IsDelim(token.Comma):
			wantName = true
		case t.IsDelim(token.Colon):
			return true
		default:
			return false
		}
	}
	return false
}

// parseBindings parses "x, y : T; z : U". Groups are separated by ";" or by
// "," after a domain.
func (s *state) parseBindings() ([]ast.Binding, error) {
	var groups []ast.Binding
	for {
		first := s.peek()
		if !isNameToken(first) {
			return nil, s.errorExpected("variable name")
		}
		b := ast.Binding{Location: s.loc(first)}
		for {
			t := s.peek()
			if !isNameToken(t) {
				return nil, s.errorExpected("variable name")
			}
			s.next()
			b.Names = append(b.Names, nameOf(t))
			if !s.atDelim(token.Comma) || !isNameToken(s.peekAt(1)) {
				break
			}
			s.next()
		}

		if s.atDelim(token.Colon) {
			s.next()
			domain, err := s.parseType()
			if err != nil {
				return nil, err
			}
			b.Domain = domain
		}
		groups = append(groups, b)

		switch {
		case s.atDelim(token.Semicolon):
			s.next()
		case s.atDelim(token.Comma) && b.Domain != nil:
			s.next()
		default:
			return groups, nil
		}
	}
}

// parseType parses an expression in which "x" is the product operator.
func (s *state) parseType() (ast.Expr, error) {
	saved := s.typeCtx
	s.typeCtx = true
	defer func() { s.typeCtx = saved }()
	return s.parseExpr()
}

// parseQuantifier parses forall, exists, exists1, mu and lambda.
func (s *state) parseQuantifier() (ast.Expr, error) {
	q := s.next()
	saved := s.typeCtx
	s.typeCtx = false
	defer func() { s.typeCtx = saved }()

	bindings, err := s.parseBindings()
	if err != nil {
		return nil, err
	}
	node := &ast.Quantifier{Quant: q.Value, Surface: q.Literal, Bindings: bindings, Location: s.loc(q)}

	switch {
	case s.atDelim(token.Bar):
		s.next()
		first, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		switch {
		case s.atDelim(token.At) || s.atDelim(token.Period):
			s.next()
			node.Constraint = first
			if node.Body, err = s.parseExpr(); err != nil {
				return nil, err
			}
		case q.Value == symbols.Mu:
			node.Constraint = first
		default:
			node.Body = first
		}

	case s.atDelim(token.At) || s.atDelim(token.Period):
		s.next()
		if node.Body, err = s.parseExpr(); err != nil {
			return nil, err
		}

	default:
		return nil, s.errorExpected("'|', '@' or '.'")
	}
	return node, nil
}

// parseConditional parses "if c then a else b". The else branch extends as
// far right as possible.
func (s *state) parseConditional() (ast.Expr, error) {
	kw := s.next()
	cond, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := s.expectKeyword(symbols.Then); err != nil {
		return nil, err
	}
	then, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := s.expectKeyword(symbols.Else); err != nil {
		return nil, err
	}
	els, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	return &ast.Conditional{Cond: cond, Then: then, Else: els, Location: s.loc(kw)}, nil
}
