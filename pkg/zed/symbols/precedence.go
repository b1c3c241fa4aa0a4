package symbols

// Precedence is the binding power of an operator. Higher binds tighter.
type Precedence int

// Precedence levels, loosest to tightest. The parser climbs this ladder and
// the generator uses the same values to decide where parentheses go.
const (
	PrecLowest         Precedence = 0
	PrecConditional    Precedence = 10
	PrecIff            Precedence = 20
	PrecImplies        Precedence = 30
	PrecOr             Precedence = 40
	PrecAnd            Precedence = 50
	PrecNot            Precedence = 60
	PrecRelation       Precedence = 70
	PrecFunctionType   Precedence = 80
	PrecCross          Precedence = 85
	PrecMaplet         Precedence = 90
	PrecRange          Precedence = 95
	PrecUnion          Precedence = 100
	PrecIntersect      Precedence = 105
	PrecAdditive       Precedence = 110
	PrecMultiplicative Precedence = 120
	PrecPrefix         Precedence = 130
	PrecPostfix        Precedence = 140
	PrecAtom           Precedence = 150
)

// Assoc is the associativity of an infix operator.
type Assoc int

const (
	AssocLeft Assoc = iota
	AssocRight
	AssocNone
)

// String returns the associativity name.
func (a Assoc) String() string {
	switch a {
	case AssocLeft:
		return "left"
	case AssocRight:
		return "right"
	default:
		return "none"
	}
}

// NeedsParens reports whether an operand of precedence child must be
// parenthesized under a parent operator with precedence parent and
// associativity assoc. rightSide is true for the right-hand operand.
//
// An operand is wrapped when it binds more loosely than its parent, or binds
// equally and sits on the side the parent does not associate towards.
func NeedsParens(child, parent Precedence, assoc Assoc, rightSide bool) bool {
	if child < parent {
		return true
	}
	if child > parent {
		return false
	}
	switch assoc {
	case AssocLeft:
		return rightSide
	case AssocRight:
		return !rightSide
	default:
		return true
	}
}
