package ast

// NodeKind identifies the variant of a node.
type NodeKind int

// Expression kinds.
const (
	KindLiteral NodeKind = iota
	KindUnary
	KindBinary
	KindQuantifier
	KindComprehension
	KindCollection
	KindTuple
	KindProjection
	KindRange
	KindConditional
	KindApplication
	KindInstantiation
	KindRelImage
	KindScript

	exprKindCount
)

// Document item kinds.
const (
	KindSection NodeKind = iota + exprKindCount
	KindSolution
	KindPart
	KindTruthTable
	KindEquivChain
	KindProofTree
	KindGivenType
	KindFreeType
	KindAbbreviation
	KindBox
	KindZedBlock
	KindTextBlock
	KindExprItem
	KindPageBreak

	kindCount
)

var kindNames = [...]string{
	KindLiteral:       "literal",
	KindUnary:         "unary",
	KindBinary:        "binary",
	KindQuantifier:    "quantifier",
	KindComprehension: "comprehension",
	KindCollection:    "collection",
	KindTuple:         "tuple",
	KindProjection:    "projection",
	KindRange:         "range",
	KindConditional:   "conditional",
	KindApplication:   "application",
	KindInstantiation: "instantiation",
	KindRelImage:      "relational image",
	KindScript:        "script",
	KindSection:       "section",
	KindSolution:      "solution",
	KindPart:          "part",
	KindTruthTable:    "truth table",
	KindEquivChain:    "equivalence chain",
	KindProofTree:     "proof tree",
	KindGivenType:     "given type",
	KindFreeType:      "free type",
	KindAbbreviation:  "abbreviation",
	KindBox:           "box",
	KindZedBlock:      "zed block",
	KindTextBlock:     "text block",
	KindExprItem:      "expression",
	KindPageBreak:     "page break",
}

// String returns the kind name.
func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// ExprKinds returns every expression kind.
func ExprKinds() []NodeKind {
	kinds := make([]NodeKind, 0, exprKindCount)
	for k := KindLiteral; k < exprKindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// ItemKinds returns every document item kind.
func ItemKinds() []NodeKind {
	kinds := make([]NodeKind, 0, kindCount-exprKindCount)
	for k := KindSection; k < kindCount; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// Node is implemented by every AST node.
type Node interface {
	Kind() NodeKind
	Pos() Location
}

// Expr is an expression or predicate. The set of implementations is closed:
// only types in this package satisfy it.
type Expr interface {
	Node
	exprNode()
}

// Item is a top-level document construct. The set of implementations is closed.
type Item interface {
	Node
	itemNode()
}
