package generator

import (
	"strconv"
	"strings"

	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
	"zedtex/zedtex/pkg/zed/symbols"
)

func genLiteral(r *run, e ast.Expr, _ exprContext) (string, error) {
	lit := e.(*ast.Literal)
	if lit.Type == ast.LiteralNumber {
		return lit.Value, nil
	}
	return r.p.identifier(lit.Value), nil
}

func genUnary(r *run, e ast.Expr, ctx exprContext) (string, error) {
	u := e.(*ast.Unary)
	entry, ok := symbols.Lookup(u.Op)
	if !ok {
		return "", zedErrors.NewGenerationError(u.Kind().String(), u.Location, "unknown operator %q", u.Op)
	}
	inner := ctx.child(u, ctx.tail)

	if u.Postfix {
		operand, err := r.atLeast(u.Operand, symbols.PrecPostfix, inner)
		if err != nil {
			return "", err
		}
		return r.p.closure(entry, operand), nil
	}

	minPrec := symbols.PrecPrefix
	if u.Op == symbols.Not {
		minPrec = symbols.PrecNot
	}
	wrap := precedence(u.Operand) < minPrec || r.p.wrapUnaryOperand(entry, u.Operand)
	operand, err := r.wrapped(u.Operand, wrap, inner)
	if err != nil {
		return "", err
	}

	sym := r.p.symbol(entry)
	switch {
	case u.Op == symbols.Negate:
		return sym + operand, nil
	case entry.Apply:
		return sym + "~" + operand, nil
	}
	return sym + " " + operand, nil
}

func genBinary(r *run, e ast.Expr, ctx exprContext) (string, error) {
	b := e.(*ast.Binary)
	if b.Chained {
		return r.chain(b, ctx)
	}
	entry, ok := symbols.Lookup(b.Op)
	prec, assoc, infix := symbols.Infix(b.Op)
	if !ok || !infix {
		return "", zedErrors.NewGenerationError(b.Kind().String(), b.Location, "unknown operator %q", b.Op)
	}

	left, err := r.operand(b.Left, prec, assoc, false, ctx.child(b, false))
	if err != nil {
		return "", err
	}
	rightCtx := ctx.child(b, ctx.tail)
	if b.BreakAfter && ctx.box {
		rightCtx.indent++
	}
	right, err := r.operand(b.Right, prec, assoc, true, rightCtx)
	if err != nil {
		return "", err
	}

	sym := r.p.symbol(entry)
	if b.BreakAfter && ctx.box {
		return left + " " + sym + ` \\` + "\n" + tab(rightCtx.indent) + right, nil
	}
	return left + " " + sym + " " + right, nil
}

// chain renders a relation chain "a < b <= c". The shared middle operand is
// printed once.
func (r *run) chain(b *ast.Binary, ctx exprContext) (string, error) {
	rel, ok := b.Right.(*ast.Binary)
	if !ok {
		return "", zedErrors.NewGenerationError(b.Kind().String(), b.Location, "relation chain without a relation")
	}
	entry, ok := symbols.Lookup(rel.Op)
	if !ok || !symbols.IsRelation(rel.Op) {
		return "", zedErrors.NewGenerationError(b.Kind().String(), rel.Location, "unknown relation %q", rel.Op)
	}

	left, err := r.expr(b.Left, ctx.child(b, false))
	if err != nil {
		return "", err
	}
	right, err := r.operand(rel.Right, symbols.PrecRelation, symbols.AssocNone, true, ctx.child(b, ctx.tail))
	if err != nil {
		return "", err
	}
	return left + " " + r.p.symbol(entry) + " " + right, nil
}

func tab(level int) string {
	if level <= 0 {
		return ""
	}
	return `\t` + strconv.Itoa(level) + " "
}

func genQuantifier(r *run, e ast.Expr, ctx exprContext) (string, error) {
	q := e.(*ast.Quantifier)
	entry, ok := symbols.Lookup(q.Quant)
	if !ok || entry.Role != symbols.RoleQuantifier {
		return "", zedErrors.NewGenerationError(q.Kind().String(), q.Location, "unknown quantifier %q", q.Quant)
	}
	if q.Constraint == nil && q.Body == nil {
		return "", zedErrors.NewGenerationError(q.Kind().String(), q.Location, "quantifier without a predicate")
	}

	decl, err := r.bindings(q.Bindings, q, ctx)
	if err != nil {
		return "", err
	}
	s := r.p.symbol(entry) + " " + decl

	if q.Constraint != nil {
		c, err := r.expr(q.Constraint, ctx.child(q, q.Body == nil))
		if err != nil {
			return "", err
		}
		s += " | " + c
	}
	if q.Body != nil {
		bodyCtx := ctx.child(q, true)
		bodyCtx.body = true
		body, err := r.expr(q.Body, bodyCtx)
		if err != nil {
			return "", err
		}
		s += " " + r.p.spot + " " + body
	}

	if r.p.wrapQuantifier(ctx) {
		return parens(s), nil
	}
	return s, nil
}

// bindings renders "x, y : T; z : U".
func (r *run) bindings(bs []ast.Binding, parent ast.Node, ctx exprContext) (string, error) {
	if len(bs) == 0 {
		return "", zedErrors.NewGenerationError(parent.Kind().String(), parent.Pos(), "no bound variables")
	}
	groups := make([]string, 0, len(bs))
	for _, b := range bs {
		names := make([]string, len(b.Names))
		for i, n := range b.Names {
			names[i] = r.p.identifier(n)
		}
		group := strings.Join(names, ", ")
		if b.Domain != nil {
			domain, err := r.expr(b.Domain, ctx.child(parent, false))
			if err != nil {
				return "", err
			}
			group += " : " + domain
		}
		groups = append(groups, group)
	}
	return strings.Join(groups, "; "), nil
}

func genComprehension(r *run, e ast.Expr, ctx exprContext) (string, error) {
	c := e.(*ast.Comprehension)
	decl, err := r.bindings(c.Bindings, c, ctx)
	if err != nil {
		return "", err
	}
	s := `\{ ` + decl
	if c.Predicate != nil {
		pred, err := r.expr(c.Predicate, ctx.child(c, c.Result == nil))
		if err != nil {
			return "", err
		}
		s += " | " + pred
	}
	if c.Result != nil {
		result, err := r.expr(c.Result, ctx.child(c, true))
		if err != nil {
			return "", err
		}
		s += " " + r.p.spot + " " + result
	}
	return s + ` \}`, nil
}

// list renders comma-separated elements; only the last is in tail position.
func (r *run) list(elems []ast.Expr, parent ast.Node, ctx exprContext) (string, error) {
	parts := make([]string, len(elems))
	for i, el := range elems {
		s, err := r.expr(el, ctx.child(parent, i == len(elems)-1))
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	return strings.Join(parts, ", "), nil
}

var collectionBrackets = map[ast.CollectionType][2]string{
	ast.CollectionSet:      {`\{`, `\}`},
	ast.CollectionSequence: {`\langle`, `\rangle`},
	ast.CollectionBag:      {`\lbag`, `\rbag`},
}

func genCollection(r *run, e ast.Expr, ctx exprContext) (string, error) {
	c := e.(*ast.Collection)
	brackets, ok := collectionBrackets[c.Type]
	if !ok {
		return "", zedErrors.NewGenerationError(c.Kind().String(), c.Location, "unknown collection type %q", c.Type)
	}
	if len(c.Elements) == 0 {
		if c.Type == ast.CollectionSet {
			return `\{\}`, nil
		}
		return brackets[0] + " " + brackets[1], nil
	}
	inner, err := r.list(c.Elements, c, ctx)
	if err != nil {
		return "", err
	}
	return brackets[0] + " " + inner + " " + brackets[1], nil
}

func genTuple(r *run, e ast.Expr, ctx exprContext) (string, error) {
	t := e.(*ast.Tuple)
	inner, err := r.list(t.Elements, t, ctx)
	if err != nil {
		return "", err
	}
	return parens(inner), nil
}

func genProjection(r *run, e ast.Expr, ctx exprContext) (string, error) {
	p := e.(*ast.Projection)
	target, err := r.atLeast(p.Target, symbols.PrecAtom, ctx.child(p, false))
	if err != nil {
		return "", err
	}
	return target + "." + r.p.identifier(p.Field), nil
}

func genRange(r *run, e ast.Expr, ctx exprContext) (string, error) {
	rg := e.(*ast.Range)
	entry, _ := symbols.Lookup(symbols.Upto)
	low, err := r.operand(rg.Low, symbols.PrecRange, symbols.AssocNone, false, ctx.child(rg, false))
	if err != nil {
		return "", err
	}
	high, err := r.operand(rg.High, symbols.PrecRange, symbols.AssocNone, true, ctx.child(rg, ctx.tail))
	if err != nil {
		return "", err
	}
	return low + " " + r.p.symbol(entry) + " " + high, nil
}

func genConditional(r *run, e ast.Expr, ctx exprContext) (string, error) {
	c := e.(*ast.Conditional)
	cond, err := r.expr(c.Cond, ctx.child(c, false))
	if err != nil {
		return "", err
	}
	then, err := r.expr(c.Then, ctx.child(c, false))
	if err != nil {
		return "", err
	}
	els, err := r.expr(c.Else, ctx.child(c, ctx.tail))
	if err != nil {
		return "", err
	}
	sep := r.p.keywordSep
	return r.p.conditionalKeyword(symbols.If) + sep + cond + sep +
		r.p.conditionalKeyword(symbols.Then) + sep + then + sep +
		r.p.conditionalKeyword(symbols.Else) + sep + els, nil
}

func genApplication(r *run, e ast.Expr, ctx exprContext) (string, error) {
	a := e.(*ast.Application)
	target, err := r.atLeast(a.Target, symbols.PrecPostfix, ctx.child(a, false))
	if err != nil {
		return "", err
	}

	if a.Juxtaposed && len(a.Args) == 1 {
		arg, err := r.atLeast(a.Args[0], symbols.PrecAtom, ctx.child(a, ctx.tail))
		if err != nil {
			return "", err
		}
		return target + "~" + arg, nil
	}

	args, err := r.list(a.Args, a, ctx)
	if err != nil {
		return "", err
	}
	return target + parens(args), nil
}

func genInstantiation(r *run, e ast.Expr, ctx exprContext) (string, error) {
	in := e.(*ast.Instantiation)
	base, err := r.atLeast(in.Base, symbols.PrecPostfix, ctx.child(in, false))
	if err != nil {
		return "", err
	}
	params, err := r.list(in.Params, in, ctx)
	if err != nil {
		return "", err
	}
	return base + "[" + params + "]", nil
}

func genRelImage(r *run, e ast.Expr, ctx exprContext) (string, error) {
	ri := e.(*ast.RelImage)
	rel, err := r.atLeast(ri.Relation, symbols.PrecPostfix, ctx.child(ri, false))
	if err != nil {
		return "", err
	}
	set, err := r.expr(ri.Set, ctx.child(ri, true))
	if err != nil {
		return "", err
	}
	return rel + ` \limg ` + set + ` \rimg`, nil
}

func genScript(r *run, e ast.Expr, ctx exprContext) (string, error) {
	sc := e.(*ast.Script)
	if sc.Super == nil && sc.Sub == nil {
		return "", zedErrors.NewGenerationError(sc.Kind().String(), sc.Location, "script without superscript or subscript")
	}
	s, err := r.atLeast(sc.Base, symbols.PrecAtom, ctx.child(sc, false))
	if err != nil {
		return "", err
	}
	if sc.Sub != nil {
		sub, err := r.expr(sc.Sub, ctx.child(sc, true))
		if err != nil {
			return "", err
		}
		s += "_{" + sub + "}"
	}
	if sc.Super != nil {
		sup, err := r.expr(sc.Super, ctx.child(sc, true))
		if err != nil {
			return "", err
		}
		s += "^{" + sup + "}"
	}
	return s, nil
}
