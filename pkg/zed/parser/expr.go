package parser

import (
	"unicode"
	"unicode/utf8"

	"zedtex/zedtex/pkg/zed/ast"
	"zedtex/zedtex/pkg/zed/symbols"
	"zedtex/zedtex/pkg/zed/token"
)

// parseExpr parses a full expression or predicate.
func (s *state) parseExpr() (ast.Expr, error) {
	return s.parseBinary(symbols.PrecLowest + 1)
}

type infixOp struct {
	name  string
	prec  symbols.Precedence
	assoc symbols.Assoc
}

// infixAt reports the infix operator at the current token, if any.
func (s *state) infixAt() (infixOp, bool) {
	t := s.peek()
	name := ""
	switch {
	case t.Kind == token.Operator:
		name = t.Value
	case t.Kind == token.Identifier && t.Value == "x" && s.typeCtx:
		name = symbols.Cross
	default:
		return infixOp{}, false
	}
	prec, assoc, ok := symbols.Infix(name)
	if !ok {
		return infixOp{}, false
	}
	return infixOp{name: name, prec: prec, assoc: assoc}, true
}

// parseBinary climbs the precedence ladder. Operators binding at least as
// tightly as minPrec are consumed; adjacent relations form a chain.
func (s *state) parseBinary(minPrec symbols.Precedence) (ast.Expr, error) {
	left, err := s.parseUnary()
	if err != nil {
		return nil, err
	}

	var lastRel *ast.Binary
	for {
		op, ok := s.infixAt()
		if !ok || op.prec < minPrec {
			return left, nil
		}
		opTok := s.next()
		breakAfter := s.skipContinuation()

		nextMin := op.prec + 1
		if op.assoc == symbols.AssocRight {
			nextMin = op.prec
		}
		right, err := s.parseBinary(nextMin)
		if err != nil {
			return nil, err
		}

		switch {
		case symbols.IsRelation(op.name) && lastRel != nil:
			rel := &ast.Binary{
				Op:         op.name,
				Surface:    opTok.Literal,
				Left:       lastRel.Right,
				Right:      right,
				BreakAfter: breakAfter,
				Location:   s.loc(opTok),
			}
			left = &ast.Binary{Op: symbols.And, Left: left, Right: rel, Chained: true, Location: left.Pos()}
			lastRel = rel
		case op.name == symbols.Upto:
			left = &ast.Range{Low: left, High: right, Location: s.loc(opTok)}
			lastRel = nil
		default:
			b := &ast.Binary{
				Op:         op.name,
				Surface:    opTok.Literal,
				Left:       left,
				Right:      right,
				BreakAfter: breakAfter,
				Location:   s.loc(opTok),
			}
			left = b
			lastRel = nil
			if symbols.IsRelation(op.name) {
				lastRel = b
			}
		}
	}
}

// skipContinuation consumes a trailing "\" and the line end after it.
func (s *state) skipContinuation() bool {
	if !s.atDelim(token.Continuation) {
		return false
	}
	s.next()
	if s.toks[s.pos].Kind == token.Newline {
		s.pos++
	}
	return true
}

// parseUnary parses prefix operators and then a postfix expression.
func (s *state) parseUnary() (ast.Expr, error) {
	return s.parseOperand(true)
}

func (s *state) parseOperand(juxtapose bool) (ast.Expr, error) {
	t := s.peek()
	if t.Kind == token.Operator {
		switch {
		case t.Value == symbols.Minus:
			s.next()
			operand, err := s.parseOperand(juxtapose)
			if err != nil {
				return nil, err
			}
			return &ast.Unary{Op: symbols.Negate, Surface: t.Literal, Operand: operand, Location: s.loc(t)}, nil

		case t.Value == symbols.Not:
			s.next()
			operand, err := s.parseBinary(symbols.PrecNot)
			if err != nil {
				return nil, err
			}
			return &ast.Unary{Op: symbols.Not, Surface: t.Literal, Operand: operand, Location: s.loc(t)}, nil

		case isPrefix(t.Value):
			if isWordSpelled(t) && !s.startsOperand(s.peekAt(1)) {
				// "max : N" or "seq[N]": the word names something here
				s.next()
				return s.parsePostfix(ast.Ident(t.Literal, s.loc(t)), juxtapose)
			}
			s.next()
			operand, err := s.parseOperand(juxtapose)
			if err != nil {
				return nil, err
			}
			return &ast.Unary{Op: t.Value, Surface: t.Literal, Operand: operand, Location: s.loc(t)}, nil
		}
	}

	grouped := t.IsDelim(token.LParen)
	base, err := s.parsePrimary()
	if err != nil {
		return nil, err
	}
	if grouped {
		if base, err = s.applyGroup(base, juxtapose); err != nil {
			return nil, err
		}
	}
	return s.parsePostfix(base, juxtapose)
}

// applyGroup applies a parenthesized expression to the arguments that follow
// it: "(lambda x : N . x)(3)", "(f ; g)(x)". Only a lambda takes a
// space-separated argument, so "(a + b) c" stays two operands.
func (s *state) applyGroup(group ast.Expr, juxtapose bool) (ast.Expr, error) {
	t := s.peek()
	switch {
	case t.IsDelim(token.LParen) && !t.SpaceBefore:
		args, err := s.parseList(token.RParen)
		if err != nil {
			return nil, err
		}
		return &ast.Application{Target: group, Args: args, Location: group.Pos()}, nil

	case juxtapose && t.SpaceBefore && isLambda(group) && s.startsOperand(t):
		arg, err := s.parseOperand(false)
		if err != nil {
			return nil, err
		}
		return &ast.Application{Target: group, Args: []ast.Expr{arg}, Juxtaposed: true, Location: group.Pos()}, nil
	}
	return group, nil
}

func isLambda(e ast.Expr) bool {
	q, ok := e.(*ast.Quantifier)
	return ok && q.Quant == symbols.Lambda
}

// parsePostfix applies application, instantiation, projection, closures,
// inverse, superscripts and relational image to base.
func (s *state) parsePostfix(base ast.Expr, juxtapose bool) (ast.Expr, error) {
	for {
		t := s.peek()
		switch {
		case t.IsDelim(token.LParen) && !t.SpaceBefore && applicable(base):
			args, err := s.parseList(token.RParen)
			if err != nil {
				return nil, err
			}
			base = &ast.Application{Target: base, Args: args, Location: base.Pos()}

		case t.IsDelim(token.LBracket) && (!t.SpaceBefore || isName(base)) && applicable(base):
			params, err := s.parseList(token.RBracket)
			if err != nil {
				return nil, err
			}
			base = &ast.Instantiation{Base: base, Params: params, Location: base.Pos()}

		case t.IsDelim(token.Period) && !t.SpaceBefore && s.isField(s.peekAt(1)):
			s.next()
			field := s.next()
			base = &ast.Projection{Target: base, Field: field.Value, Location: base.Pos()}

		case t.IsOp(symbols.Inverse):
			s.next()
			base = &ast.Unary{Op: symbols.Inverse, Surface: t.Literal, Operand: base, Postfix: true, Location: s.loc(t)}

		case (t.IsOp(symbols.Plus) || t.IsOp(symbols.Times)) && !t.SpaceBefore && !s.startsOperand(s.peekAt(1)):
			s.next()
			op := symbols.TransClos
			if t.Value == symbols.Times {
				op = symbols.ReflClos
			}
			base = &ast.Unary{Op: op, Surface: t.Literal, Operand: base, Postfix: true, Location: s.loc(t)}

		case t.IsOp(symbols.Superscript):
			s.next()
			sup, err := s.parsePrimary()
			if err != nil {
				return nil, err
			}
			if sc, ok := base.(*ast.Script); ok && sc.Super == nil {
				sc.Super = sup
			} else {
				base = &ast.Script{Base: base, Super: sup, Location: base.Pos()}
			}

		case t.IsDelim(token.LImage):
			s.next()
			s.nesting++
			set, err := s.parseExpr()
			if err != nil {
				return nil, err
			}
			if err := s.expectClosing(t, token.RImage); err != nil {
				return nil, err
			}
			s.nesting--
			base = &ast.RelImage{Relation: base, Set: set, Location: base.Pos()}

		case juxtapose && t.SpaceBefore && applicable(base) && s.startsOperand(t):
			arg, err := s.parseOperand(false)
			if err != nil {
				return nil, err
			}
			base = &ast.Application{Target: base, Args: []ast.Expr{arg}, Juxtaposed: true, Location: base.Pos()}

		default:
			return base, nil
		}
	}
}

// parseList parses a comma-separated list between the current opening
// delimiter and closing. The list may be empty.
func (s *state) parseList(closing string) ([]ast.Expr, error) {
	open := s.next()
	s.nesting++
	defer func() { s.nesting-- }()

	var elems []ast.Expr
	if s.atDelim(closing) {
		s.next()
		return elems, nil
	}
	for {
		e, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if !s.atDelim(token.Comma) {
			break
		}
		s.next()
	}
	if err := s.expectClosing(open, closing); err != nil {
		return nil, err
	}
	return elems, nil
}

// startsOperand reports whether t can begin an operand. The same test decides
// whether a prefix word is an operator and whether "f x" is an application.
func (s *state) startsOperand(t token.Token) bool {
	switch t.Kind {
	case token.Identifier:
		return !(s.typeCtx && t.Value == "x")
	case token.Number:
		return true
	case token.Delimiter:
		switch t.Value {
		case token.LParen, token.LBrace, token.LAngle, token.LBag:
			return true
		}
	case token.Operator:
		return isPrefix(t.Value)
	}
	return false
}

// isField reports whether t can follow "." in a projection.
func (s *state) isField(t token.Token) bool {
	return (t.Kind == token.Identifier || t.Kind == token.Number) && !t.SpaceBefore
}

func isPrefix(name string) bool {
	e, ok := symbols.Lookup(name)
	return ok && e.Role == symbols.RolePrefix
}

// isWordSpelled reports whether an operator token was written as an ASCII word.
func isWordSpelled(t token.Token) bool {
	r, _ := utf8.DecodeRuneInString(t.Literal)
	return r < utf8.RuneSelf && unicode.IsLetter(r)
}

// isNameToken reports whether t can name a variable: an identifier or a
// prefix word such as "max" used as a name.
func isNameToken(t token.Token) bool {
	if t.Kind == token.Identifier {
		return true
	}
	return t.Kind == token.Operator && isPrefix(t.Value) && isWordSpelled(t)
}

func nameOf(t token.Token) string {
	if t.Kind == token.Identifier {
		return t.Value
	}
	return t.Literal
}

// isName reports whether e is a plain identifier that is not a reserved constant.
func isName(e ast.Expr) bool {
	lit, ok := e.(*ast.Literal)
	if !ok || lit.Type != ast.LiteralIdentifier {
		return false
	}
	entry, reserved := symbols.Lookup(lit.Value)
	return !reserved || entry.Role != symbols.RoleConstant
}

// applicable reports whether e can be applied to arguments.
func applicable(e ast.Expr) bool {
	switch e.(type) {
	case *ast.Application, *ast.Instantiation, *ast.Projection:
		return true
	}
	return isName(e)
}
