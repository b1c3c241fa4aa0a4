package ast

// Visitor provides an interface for traversing the AST.
// Implement it to collect statistics or check invariants over a document.
type Visitor interface {
	VisitItem(Item) error
	VisitExpr(Expr) error
}

// Walk traverses the document depth-first, items before their contents, and
// calls the visitor for each node. It returns the first error encountered.
func Walk(doc *Document, visitor Visitor) error {
	for _, item := range doc.Items {
		if err := walkItem(item, visitor); err != nil {
			return err
		}
	}
	return nil
}

// WalkExpr traverses an expression tree depth-first.
func WalkExpr(e Expr, visitor Visitor) error {
	if e == nil {
		return nil
	}
	if err := visitor.VisitExpr(e); err != nil {
		return err
	}
	for _, child := range Operands(e) {
		if err := WalkExpr(child, visitor); err != nil {
			return err
		}
	}
	return nil
}

func walkItem(item Item, visitor Visitor) error {
	if err := visitor.VisitItem(item); err != nil {
		return err
	}

	var children []Item
	var exprs []Expr

	switch n := item.(type) {
	case *Section:
		children = n.Items
	case *Solution:
		children = n.Items
	case *Part:
		children = n.Items
	case *TruthTable:
		exprs = n.Header
	case *EquivChain:
		for _, s := range n.Steps {
			exprs = append(exprs, s.Expr)
		}
	case *ProofTree:
		exprs = proofExprs(n.Root, exprs)
	case *FreeType:
		for _, b := range n.Branches {
			exprs = append(exprs, b.Param)
		}
	case *Abbreviation:
		exprs = append(exprs, n.Body)
	case *Box:
		exprs = declExprs(n.Declarations, exprs)
		for _, p := range n.Predicates {
			exprs = append(exprs, p.Expr)
		}
	case *ZedBlock:
		for _, l := range n.Lines {
			if l.Decl != nil {
				exprs = declExprs([]Declaration{*l.Decl}, exprs)
			}
			exprs = append(exprs, l.Expr)
		}
	case *TextBlock:
		for _, s := range n.Segments {
			exprs = append(exprs, s.Math)
		}
	case *ExprItem:
		exprs = append(exprs, n.Expr)
	}

	for _, c := range children {
		if err := walkItem(c, visitor); err != nil {
			return err
		}
	}
	for _, e := range exprs {
		if err := WalkExpr(e, visitor); err != nil {
			return err
		}
	}
	return nil
}

func proofExprs(n *ProofNode, acc []Expr) []Expr {
	if n == nil {
		return acc
	}
	acc = append(acc, n.Expr)
	for _, c := range n.Children {
		acc = proofExprs(c, acc)
	}
	return acc
}

func declExprs(decls []Declaration, acc []Expr) []Expr {
	for _, d := range decls {
		acc = append(acc, d.Type, d.Include)
	}
	return acc
}

// Operands returns the direct sub-expressions of e in source order,
// skipping absent optional parts.
func Operands(e Expr) []Expr {
	var out []Expr
	add := func(xs ...Expr) {
		for _, x := range xs {
			if x != nil {
				out = append(out, x)
			}
		}
	}

	switch n := e.(type) {
	case *Unary:
		add(n.Operand)
	case *Binary:
		add(n.Left, n.Right)
	case *Quantifier:
		for _, b := range n.Bindings {
			add(b.Domain)
		}
		add(n.Constraint, n.Body)
	case *Comprehension:
		for _, b := range n.Bindings {
			add(b.Domain)
		}
		add(n.Predicate, n.Result)
	case *Collection:
		add(n.Elements...)
	case *Tuple:
		add(n.Elements...)
	case *Projection:
		add(n.Target)
	case *Range:
		add(n.Low, n.High)
	case *Conditional:
		add(n.Cond, n.Then, n.Else)
	case *Application:
		add(n.Target)
		add(n.Args...)
	case *Instantiation:
		add(n.Base)
		add(n.Params...)
	case *RelImage:
		add(n.Relation, n.Set)
	case *Script:
		add(n.Base, n.Super, n.Sub)
	}
	return out
}

// CountingVisitor counts nodes by kind.
type CountingVisitor struct {
	Counts map[NodeKind]int
}

// NewCountingVisitor creates an empty CountingVisitor.
func NewCountingVisitor() *CountingVisitor {
	return &CountingVisitor{Counts: make(map[NodeKind]int)}
}

func (v *CountingVisitor) VisitItem(item Item) error {
	v.Counts[item.Kind()]++
	return nil
}

func (v *CountingVisitor) VisitExpr(e Expr) error {
	v.Counts[e.Kind()]++
	return nil
}

// Total returns the number of nodes visited.
func (v *CountingVisitor) Total() int {
	total := 0
	for _, n := range v.Counts {
		total += n
	}
	return total
}
