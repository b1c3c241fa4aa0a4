package ast

// LiteralType distinguishes number literals from names.
type LiteralType string

const (
	LiteralNumber     LiteralType = "number"
	LiteralIdentifier LiteralType = "identifier"
)

// Literal is a number or a name. Names keep their decorations (x', in?, out!)
// and reserved constants use their canonical name (N, Z, emptyset).
type Literal struct {
	Type     LiteralType
	Value    string
	Location Location
}

// Unary is a prefix or postfix operator application.
type Unary struct {
	Op       string // Canonical operator name from the symbols table
	Surface  string // Operator as written
	Operand  Expr
	Postfix  bool
	Location Location
}

// Binary is an infix operator application.
//
// Chained marks the implicit conjunction built from a relation chain such as
// a < b <= c: Op is "and", Left is the chain so far and Right is the last
// relation, whose left operand repeats the previous right operand.
type Binary struct {
	Op         string
	Surface    string
	Left       Expr
	Right      Expr
	BreakAfter bool // source had a continuation marker after the operator
	Chained    bool
	Location   Location
}

// Binding is one group of variables sharing an optional domain: "x, y : N".
type Binding struct {
	Names    []string
	Domain   Expr // nil when untyped
	Location Location
}

// Quantifier is forall, exists, exists1, mu or lambda.
//
// Body is the predicate of forall/exists/exists1 and the result expression of
// mu and lambda. Constraint is the optional "| P" part written before a body;
// for "mu x : T | P" with no result, Constraint is P and Body is nil.
type Quantifier struct {
	Quant      string // Canonical quantifier name
	Surface    string
	Bindings   []Binding
	Constraint Expr
	Body       Expr
	Location   Location
}

// Comprehension is a set comprehension { x : T | P . E }.
type Comprehension struct {
	Bindings  []Binding
	Predicate Expr // optional
	Result    Expr // optional
	Location  Location
}

// CollectionType is the bracket family of a collection literal.
type CollectionType string

const (
	CollectionSet      CollectionType = "set"
	CollectionSequence CollectionType = "sequence"
	CollectionBag      CollectionType = "bag"
)

// Collection is a set, sequence or bag literal.
type Collection struct {
	Type     CollectionType
	Elements []Expr
	Location Location
}

// Tuple is a parenthesized list of two or more expressions.
type Tuple struct {
	Elements []Expr
	Location Location
}

// Projection selects a named field: s.field.
type Projection struct {
	Target   Expr
	Field    string
	Location Location
}

// Range is a numeric range lo..hi.
type Range struct {
	Low      Expr
	High     Expr
	Location Location
}

// Conditional is if c then a else b.
type Conditional struct {
	Cond     Expr
	Then     Expr
	Else     Expr
	Location Location
}

// Application applies a function to arguments. Juxtaposed marks the
// space-separated form "f x" as opposed to "f(x)".
type Application struct {
	Target     Expr
	Args       []Expr
	Juxtaposed bool
	Location   Location
}

// Instantiation supplies generic parameters: seq[N].
type Instantiation struct {
	Base     Expr
	Params   []Expr
	Location Location
}

// RelImage is the relational image R(| S |).
type RelImage struct {
	Relation Expr
	Set      Expr
	Location Location
}

// Script attaches a superscript and/or subscript to a base: x^2, a_1.
type Script struct {
	Base     Expr
	Super    Expr // optional
	Sub      Expr // optional
	Location Location
}

func (n *Literal) Kind() NodeKind       { return KindLiteral }
func (n *Unary) Kind() NodeKind         { return KindUnary }
func (n *Binary) Kind() NodeKind        { return KindBinary }
func (n *Quantifier) Kind() NodeKind    { return KindQuantifier }
func (n *Comprehension) Kind() NodeKind { return KindComprehension }
func (n *Collection) Kind() NodeKind    { return KindCollection }
func (n *Tuple) Kind() NodeKind         { return KindTuple }
func (n *Projection) Kind() NodeKind    { return KindProjection }
func (n *Range) Kind() NodeKind         { return KindRange }
func (n *Conditional) Kind() NodeKind   { return KindConditional }
func (n *Application) Kind() NodeKind   { return KindApplication }
func (n *Instantiation) Kind() NodeKind { return KindInstantiation }
func (n *RelImage) Kind() NodeKind      { return KindRelImage }
func (n *Script) Kind() NodeKind        { return KindScript }

func (n *Literal) Pos() Location       { return n.Location }
func (n *Unary) Pos() Location         { return n.Location }
func (n *Binary) Pos() Location        { return n.Location }
func (n *Quantifier) Pos() Location    { return n.Location }
func (n *Comprehension) Pos() Location { return n.Location }
func (n *Collection) Pos() Location    { return n.Location }
func (n *Tuple) Pos() Location         { return n.Location }
func (n *Projection) Pos() Location    { return n.Location }
func (n *Range) Pos() Location         { return n.Location }
func (n *Conditional) Pos() Location   { return n.Location }
func (n *Application) Pos() Location   { return n.Location }
func (n *Instantiation) Pos() Location { return n.Location }
func (n *RelImage) Pos() Location      { return n.Location }
func (n *Script) Pos() Location        { return n.Location }

func (*Literal) exprNode()       {}
func (*Unary) exprNode()         {}
func (*Binary) exprNode()        {}
func (*Quantifier) exprNode()    {}
func (*Comprehension) exprNode() {}
func (*Collection) exprNode()    {}
func (*Tuple) exprNode()         {}
func (*Projection) exprNode()    {}
func (*Range) exprNode()         {}
func (*Conditional) exprNode()   {}
func (*Application) exprNode()   {}
func (*Instantiation) exprNode() {}
func (*RelImage) exprNode()      {}
func (*Script) exprNode()        {}

// Ident returns an identifier literal.
func Ident(name string, loc Location) *Literal {
	return &Literal{Type: LiteralIdentifier, Value: name, Location: loc}
}

// IsIdent reports whether e is the identifier name.
func IsIdent(e Expr, name string) bool {
	lit, ok := e.(*Literal)
	return ok && lit.Type == LiteralIdentifier && lit.Value == name
}

// Flatten returns the operands of a left-nested chain of the same binary
// operator: A x B x C gives [A B C].
func Flatten(e Expr, op string) []Expr {
	b, ok := e.(*Binary)
	if !ok || b.Op != op || b.Chained {
		return []Expr{e}
	}
	return append(Flatten(b.Left, op), b.Right)
}
