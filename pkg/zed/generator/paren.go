package generator

import (
	"zedtex/zedtex/pkg/zed/ast"
	"zedtex/zedtex/pkg/zed/symbols"
)

// precedence returns the binding power of the construct e renders as.
// Quantifiers report PrecAtom; their parentheses depend on context instead.
func precedence(e ast.Expr) symbols.Precedence {
	switch n := e.(type) {
	case *ast.Binary:
		if n.Chained {
			return symbols.PrecRelation
		}
		if p, _, ok := symbols.Infix(n.Op); ok {
			return p
		}
		return symbols.PrecLowest
	case *ast.Unary:
		switch {
		case n.Postfix:
			return symbols.PrecPostfix
		case n.Op == symbols.Not:
			return symbols.PrecNot
		}
		return symbols.PrecPrefix
	case *ast.Range:
		return symbols.PrecRange
	case *ast.Conditional:
		return symbols.PrecConditional
	case *ast.Application:
		if n.Juxtaposed {
			return symbols.PrecPostfix
		}
	}
	return symbols.PrecAtom
}

// appliesFunction reports whether e renders as a function application:
// "f(x)", "f~x" or a prefix word such as "head~s".
func appliesFunction(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.Application:
		return true
	case *ast.Unary:
		if n.Postfix {
			return false
		}
		entry, ok := symbols.Lookup(n.Op)
		return ok && entry.Apply
	}
	return false
}

func parens(s string) string {
	return "(" + s + ")"
}

// operand renders child as an operand of an operator with the given binding
// power, adding parentheses when precedence requires them.
func (r *run) operand(child ast.Expr, prec symbols.Precedence, assoc symbols.Assoc, rightSide bool, ctx exprContext) (string, error) {
	wrap := symbols.NeedsParens(precedence(child), prec, assoc, rightSide)
	return r.wrapped(child, wrap, ctx)
}

// wrapped renders child, in parentheses when wrap is set. A parenthesized
// expression is in tail position within its parentheses.
func (r *run) wrapped(child ast.Expr, wrap bool, ctx exprContext) (string, error) {
	if wrap {
		ctx.tail = true
	}
	s, err := r.expr(child, ctx)
	if err != nil {
		return "", err
	}
	if wrap {
		return parens(s), nil
	}
	return s, nil
}

// atLeast renders child, in parentheses when it binds more loosely than minPrec.
func (r *run) atLeast(child ast.Expr, minPrec symbols.Precedence, ctx exprContext) (string, error) {
	return r.wrapped(child, precedence(child) < minPrec, ctx)
}
