package ast

// Document is the root of a parsed source.
type Document struct {
	Items []Item
}

// Section is a "=== Title ===" heading and the items under it.
type Section struct {
	Title    string
	Items    []Item
	Location Location
}

// Solution is a "** Solution N **" marker and the items under it.
type Solution struct {
	Label    string
	Items    []Item
	Location Location
}

// Part is a "(a)" part label and the items under it.
type Part struct {
	Label    string
	Items    []Item
	Location Location
}

// TruthTable has a header of expressions and rows of cell text, all equal width.
type TruthTable struct {
	Header   []Expr
	Rows     [][]string
	Location Location
}

// EquivStep is one line of an equivalence chain.
type EquivStep struct {
	Connective    string // "" for the first step, otherwise "iff" or "implies"
	Expr          Expr
	Justification string
	Location      Location
}

// EquivChain is an EQUIV: block.
type EquivChain struct {
	Steps    []EquivStep
	Location Location
}

// ProofNode is one step of a proof tree. Children are the premises the step
// is inferred from, in source order.
type ProofNode struct {
	Expr          Expr
	Justification string
	Label         int  // assumption label, zero when unlabeled
	IsAssumption  bool // "[n] expr" introduces an assumption
	IsSibling     bool // "::" co-premise of the next step at the same depth
	IsCase        bool // "case p:" branch of a case analysis
	Discharge     []int
	Children      []*ProofNode
	Location      Location
}

// Depth returns the height of the subtree rooted at n; a leaf has depth 1.
func (n *ProofNode) Depth() int {
	deepest := 0
	for _, c := range n.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// ProofTree is a PROOF: block.
type ProofTree struct {
	Root     *ProofNode
	Location Location
}

// GivenType declares basic types: given A, B.
type GivenType struct {
	Names    []string
	Location Location
}

// Branch is one constructor of a free type.
type Branch struct {
	Name     string
	Param    Expr // optional parameter type
	Location Location
}

// FreeType is T ::= a | b<E>.
type FreeType struct {
	Name     string
	Branches []Branch
	Location Location
}

// Abbreviation is Name[X] == E.
type Abbreviation struct {
	Name     string
	Generics []string
	Body     Expr
	Location Location
}

// BoxType is the environment of a boxed block.
type BoxType string

const (
	BoxAxdef  BoxType = "axdef"
	BoxSchema BoxType = "schema"
	BoxGendef BoxType = "gendef"
)

// Declaration is "x, y : T" or, when Include is set, a schema inclusion.
type Declaration struct {
	Names    []string
	Type     Expr
	Include  Expr
	Location Location
}

// Predicate is one predicate line of a boxed block. Also marks a blank line
// before it in the source.
type Predicate struct {
	Expr Expr
	Also bool
}

// Box is an axdef, schema or gendef block.
type Box struct {
	Type         BoxType
	Name         string // schema name
	Generics     []string
	Declarations []Declaration
	Predicates   []Predicate
	Location     Location
}

// ZedLine is one line of a zed block: a declaration or a predicate.
type ZedLine struct {
	Decl *Declaration
	Expr Expr
	Also bool
}

// ZedBlock is a zed ... end block.
type ZedBlock struct {
	Lines    []ZedLine
	Location Location
}

// TextType is the flavour of a text block.
type TextType string

const (
	TextProse TextType = "prose"    // detected prose or TEXT:
	TextPure  TextType = "puretext" // PURETEXT:, no math
	TextLatex TextType = "latex"    // LATEX:, raw passthrough
)

// Segment is a run of prose or, when Math is set, an embedded expression.
type Segment struct {
	Text string
	Math Expr
}

// TextBlock is a paragraph of prose with embedded math.
type TextBlock struct {
	Type     TextType
	Segments []Segment
	Location Location
}

// ExprItem is a bare expression or predicate line.
type ExprItem struct {
	Expr     Expr
	Location Location
}

// PageBreak is PAGEBREAK:.
type PageBreak struct {
	Location Location
}

func (n *Section) Kind() NodeKind      { return KindSection }
func (n *Solution) Kind() NodeKind     { return KindSolution }
func (n *Part) Kind() NodeKind         { return KindPart }
func (n *TruthTable) Kind() NodeKind   { return KindTruthTable }
func (n *EquivChain) Kind() NodeKind   { return KindEquivChain }
func (n *ProofTree) Kind() NodeKind    { return KindProofTree }
func (n *GivenType) Kind() NodeKind    { return KindGivenType }
func (n *FreeType) Kind() NodeKind     { return KindFreeType }
func (n *Abbreviation) Kind() NodeKind { return KindAbbreviation }
func (n *Box) Kind() NodeKind          { return KindBox }
func (n *ZedBlock) Kind() NodeKind     { return KindZedBlock }
func (n *TextBlock) Kind() NodeKind    { return KindTextBlock }
func (n *ExprItem) Kind() NodeKind     { return KindExprItem }
func (n *PageBreak) Kind() NodeKind    { return KindPageBreak }

func (n *Section) Pos() Location      { return n.Location }
func (n *Solution) Pos() Location     { return n.Location }
func (n *Part) Pos() Location         { return n.Location }
func (n *TruthTable) Pos() Location   { return n.Location }
func (n *EquivChain) Pos() Location   { return n.Location }
func (n *ProofTree) Pos() Location    { return n.Location }
func (n *GivenType) Pos() Location    { return n.Location }
func (n *FreeType) Pos() Location     { return n.Location }
func (n *Abbreviation) Pos() Location { return n.Location }
func (n *Box) Pos() Location          { return n.Location }
func (n *ZedBlock) Pos() Location     { return n.Location }
func (n *TextBlock) Pos() Location    { return n.Location }
func (n *ExprItem) Pos() Location     { return n.Location }
func (n *PageBreak) Pos() Location    { return n.Location }

func (*Section) itemNode()      {}
func (*Solution) itemNode()     {}
func (*Part) itemNode()         {}
func (*TruthTable) itemNode()   {}
func (*EquivChain) itemNode()   {}
func (*ProofTree) itemNode()    {}
func (*GivenType) itemNode()    {}
func (*FreeType) itemNode()     {}
func (*Abbreviation) itemNode() {}
func (*Box) itemNode()          {}
func (*ZedBlock) itemNode()     {}
func (*TextBlock) itemNode()    {}
func (*ExprItem) itemNode()     {}
func (*PageBreak) itemNode()    {}
