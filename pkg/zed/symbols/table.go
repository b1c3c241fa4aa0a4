// Package symbols holds the reserved-word table: every operator, keyword and
// named constant of the whiteboard notation, with its surface spellings,
// binding power and the symbol it becomes in each output dialect.
//
// The lexer, the parser and the generator all read this one table.
package symbols

import (
	"sort"
	"unicode"
	"unicode/utf8"
)

// Role says how a reserved word behaves syntactically.
type Role int

const (
	RoleInfix Role = iota
	RoleRelation
	RolePrefix
	RolePostfix
	RoleQuantifier
	RoleKeyword
	RoleConstant
)

// Entry is one row of the reserved-word table.
type Entry struct {
	// Name is the canonical name. Tokens carry it as their value.
	Name string

	// Aliases are the accepted surface spellings, ASCII first.
	Aliases []string

	Role  Role
	Prec  Precedence
	Assoc Assoc

	// Fuzz is the output symbol in the strict dialect.
	Fuzz string

	// Zed is the output symbol in the conventional dialect. Empty means Fuzz.
	Zed string

	// Apply marks prefix functions rendered as an application ("head~s").
	Apply bool
}

// Symbol returns the output symbol for the strict (fuzz) or conventional dialect.
func (e *Entry) Symbol(conventional bool) string {
	if conventional && e.Zed != "" {
		return e.Zed
	}
	return e.Fuzz
}

// Canonical names referenced by the parser and generator.
const (
	Iff       = "iff"
	Implies   = "implies"
	Or        = "or"
	And       = "and"
	Not       = "not"
	Equals    = "eq"
	Less      = "lt"
	Greater   = "gt"
	Cross     = "cross"
	Maplet    = "mapsto"
	Upto      = "upto"
	Cat       = "cat"
	Plus      = "plus"
	Minus     = "minus"
	Times     = "times"
	Negate    = "neg"
	Card      = "card"
	Inverse   = "inv"
	TransClos = "tcl"
	ReflClos  = "rtcl"
	Forall    = "forall"
	Exists    = "exists"
	Exists1   = "exists1"
	Mu        = "mu"
	Lambda    = "lambda"
	If        = "if"
	Then      = "then"
	Else      = "else"
	Given     = "given"
	Axdef     = "axdef"
	Schema    = "schema"
	Gendef    = "gendef"
	Zed       = "zed"
	Where     = "where"
	End       = "end"
	Case      = "case"
	Naturals  = "N"
	Naturals1 = "N1"
	Integers  = "Z"
	EmptySet  = "emptyset"

	TextBlock     = "TEXT:"
	PureTextBlock = "PURETEXT:"
	LatexBlock    = "LATEX:"
	ProofBlock    = "PROOF:"
	EquivBlock    = "EQUIV:"
	TruthTable    = "TRUTH TABLE:"
	PageBreak     = "PAGEBREAK:"

	// Superscript is the value the lexer gives a "^" written tight against
	// its left operand. It has no table entry.
	Superscript = "sup"
)

var table = []Entry{
	// Logical connectives.
	{Name: Iff, Aliases: []string{"<=>", "⇔", "iff"}, Role: RoleInfix, Prec: PrecIff, Assoc: AssocLeft, Fuzz: `\iff`, Zed: `\Leftrightarrow`},
	{Name: Implies, Aliases: []string{"=>", "⇒", "implies"}, Role: RoleInfix, Prec: PrecImplies, Assoc: AssocRight, Fuzz: `\implies`, Zed: `\Rightarrow`},
	{Name: Or, Aliases: []string{"or", "∨"}, Role: RoleInfix, Prec: PrecOr, Assoc: AssocLeft, Fuzz: `\lor`},
	{Name: And, Aliases: []string{"and", "∧"}, Role: RoleInfix, Prec: PrecAnd, Assoc: AssocLeft, Fuzz: `\land`},
	{Name: Not, Aliases: []string{"not", "¬"}, Role: RolePrefix, Prec: PrecNot, Fuzz: `\lnot`},

	// Quantifiers and binders.
	{Name: Forall, Aliases: []string{"forall", "∀"}, Role: RoleQuantifier, Fuzz: `\forall`},
	{Name: Exists, Aliases: []string{"exists", "∃"}, Role: RoleQuantifier, Fuzz: `\exists`},
	{Name: Exists1, Aliases: []string{"exists1", "∃₁"}, Role: RoleQuantifier, Fuzz: `\exists_1`},
	{Name: Mu, Aliases: []string{"mu", "μ"}, Role: RoleQuantifier, Fuzz: `\mu`},
	{Name: Lambda, Aliases: []string{"lambda", "λ"}, Role: RoleQuantifier, Fuzz: `\lambda`},

	// Relations. Adjacent relations chain into an implicit conjunction.
	{Name: Equals, Aliases: []string{"="}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `=`},
	{Name: "neq", Aliases: []string{"/=", "!=", "≠"}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `\neq`},
	{Name: Less, Aliases: []string{"<"}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `<`},
	{Name: "leq", Aliases: []string{"<=", "≤"}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `\leq`},
	{Name: Greater, Aliases: []string{">"}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `>`},
	{Name: "geq", Aliases: []string{">=", "≥"}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `\geq`},
	{Name: "in", Aliases: []string{"in", "∈"}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `\in`},
	{Name: "notin", Aliases: []string{"notin", "not in", "∉"}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `\notin`},
	{Name: "subset", Aliases: []string{"subset", "⊂"}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `\subset`},
	{Name: "subseteq", Aliases: []string{"subseteq", "⊆"}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `\subseteq`},
	{Name: "prefix", Aliases: []string{"prefix"}, Role: RoleRelation, Prec: PrecRelation, Assoc: AssocNone, Fuzz: `\prefix`},

	// Relation and function types.
	{Name: "rel", Aliases: []string{"<->", "↔"}, Role: RoleInfix, Prec: PrecFunctionType, Assoc: AssocRight, Fuzz: `\rel`},
	{Name: "fun", Aliases: []string{"-->", "→"}, Role: RoleInfix, Prec: PrecFunctionType, Assoc: AssocRight, Fuzz: `\fun`},
	{Name: "pfun", Aliases: []string{"+->", "⇸"}, Role: RoleInfix, Prec: PrecFunctionType, Assoc: AssocRight, Fuzz: `\pfun`},
	{Name: "inj", Aliases: []string{">->", "↣"}, Role: RoleInfix, Prec: PrecFunctionType, Assoc: AssocRight, Fuzz: `\inj`},
	{Name: "pinj", Aliases: []string{">+>", "⤔"}, Role: RoleInfix, Prec: PrecFunctionType, Assoc: AssocRight, Fuzz: `\pinj`},
	{Name: "surj", Aliases: []string{"-->>", "↠"}, Role: RoleInfix, Prec: PrecFunctionType, Assoc: AssocRight, Fuzz: `\surj`},
	{Name: "psurj", Aliases: []string{"+->>", "⤀"}, Role: RoleInfix, Prec: PrecFunctionType, Assoc: AssocRight, Fuzz: `\psurj`},
	{Name: "bij", Aliases: []string{">->>", "⤖"}, Role: RoleInfix, Prec: PrecFunctionType, Assoc: AssocRight, Fuzz: `\bij`},
	{Name: "ffun", Aliases: []string{"++->", "⇻"}, Role: RoleInfix, Prec: PrecFunctionType, Assoc: AssocRight, Fuzz: `\ffun`},
	{Name: "finj", Aliases: []string{">++->", "⤕"}, Role: RoleInfix, Prec: PrecFunctionType, Assoc: AssocRight, Fuzz: `\finj`},

	{Name: Cross, Aliases: []string{"cross", "×"}, Role: RoleInfix, Prec: PrecCross, Assoc: AssocLeft, Fuzz: `\cross`},
	{Name: Maplet, Aliases: []string{"|->", "↦"}, Role: RoleInfix, Prec: PrecMaplet, Assoc: AssocLeft, Fuzz: `\mapsto`},
	{Name: Upto, Aliases: []string{".."}, Role: RoleInfix, Prec: PrecRange, Assoc: AssocNone, Fuzz: `\upto`},

	// Set, sequence and bag operators.
	{Name: "union", Aliases: []string{"union", "∪"}, Role: RoleInfix, Prec: PrecUnion, Assoc: AssocLeft, Fuzz: `\cup`},
	{Name: "setminus", Aliases: []string{`\`, "setminus", "∖"}, Role: RoleInfix, Prec: PrecUnion, Assoc: AssocLeft, Fuzz: `\setminus`},
	{Name: Cat, Aliases: []string{"^", "⁀"}, Role: RoleInfix, Prec: PrecUnion, Assoc: AssocLeft, Fuzz: `\cat`},
	{Name: "uplus", Aliases: []string{"uplus", "⊎"}, Role: RoleInfix, Prec: PrecUnion, Assoc: AssocLeft, Fuzz: `\uplus`},
	{Name: "oplus", Aliases: []string{"++", "⊕"}, Role: RoleInfix, Prec: PrecUnion, Assoc: AssocLeft, Fuzz: `\oplus`},
	{Name: "intersect", Aliases: []string{"intersect", "∩"}, Role: RoleInfix, Prec: PrecIntersect, Assoc: AssocLeft, Fuzz: `\cap`},
	{Name: "dres", Aliases: []string{"<|", "◁"}, Role: RoleInfix, Prec: PrecIntersect, Assoc: AssocLeft, Fuzz: `\dres`},
	{Name: "rres", Aliases: []string{"|>", "▷"}, Role: RoleInfix, Prec: PrecIntersect, Assoc: AssocLeft, Fuzz: `\rres`},
	{Name: "ndres", Aliases: []string{"<<|", "⩤"}, Role: RoleInfix, Prec: PrecIntersect, Assoc: AssocLeft, Fuzz: `\ndres`},
	{Name: "nrres", Aliases: []string{"|>>", "⩥"}, Role: RoleInfix, Prec: PrecIntersect, Assoc: AssocLeft, Fuzz: `\nrres`},
	{Name: "comp", Aliases: []string{"o9", "comp", "⨾"}, Role: RoleInfix, Prec: PrecIntersect, Assoc: AssocLeft, Fuzz: `\comp`},
	{Name: "circ", Aliases: []string{"circ", "∘"}, Role: RoleInfix, Prec: PrecIntersect, Assoc: AssocLeft, Fuzz: `\circ`},

	// Arithmetic.
	{Name: Plus, Aliases: []string{"+"}, Role: RoleInfix, Prec: PrecAdditive, Assoc: AssocLeft, Fuzz: `+`},
	{Name: Minus, Aliases: []string{"-"}, Role: RoleInfix, Prec: PrecAdditive, Assoc: AssocLeft, Fuzz: `-`},
	{Name: Times, Aliases: []string{"*"}, Role: RoleInfix, Prec: PrecMultiplicative, Assoc: AssocLeft, Fuzz: `*`},
	{Name: "div", Aliases: []string{"div"}, Role: RoleInfix, Prec: PrecMultiplicative, Assoc: AssocLeft, Fuzz: `\div`},
	{Name: "mod", Aliases: []string{"mod"}, Role: RoleInfix, Prec: PrecMultiplicative, Assoc: AssocLeft, Fuzz: `\mod`},

	// Prefix operators. The parser turns "-" in prefix position into neg.
	{Name: Negate, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `-`},
	{Name: Card, Aliases: []string{"#"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\#`},
	{Name: "power", Aliases: []string{"P", "ℙ"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\power`},
	{Name: "power1", Aliases: []string{"P1", "ℙ₁"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\power_1`},
	{Name: "finset", Aliases: []string{"F", "𝔽"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\finset`},
	{Name: "finset1", Aliases: []string{"F1", "𝔽₁"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\finset_1`},
	{Name: "dom", Aliases: []string{"dom"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\dom`},
	{Name: "ran", Aliases: []string{"ran"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\ran`},
	{Name: "seq", Aliases: []string{"seq"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\seq`},
	{Name: "seq1", Aliases: []string{"seq1"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\seq_1`},
	{Name: "iseq", Aliases: []string{"iseq"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\iseq`},
	{Name: "bag", Aliases: []string{"bag"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\bag`},
	{Name: "id", Aliases: []string{"id"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\id`},
	{Name: "bigcup", Aliases: []string{"bigcup", "⋃"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\bigcup`},
	{Name: "bigcap", Aliases: []string{"bigcap", "⋂"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\bigcap`},
	{Name: "head", Aliases: []string{"head"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `head`, Apply: true},
	{Name: "tail", Aliases: []string{"tail"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `tail`, Apply: true},
	{Name: "front", Aliases: []string{"front"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `front`, Apply: true},
	{Name: "last", Aliases: []string{"last"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `last`, Apply: true},
	{Name: "rev", Aliases: []string{"rev"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `rev`, Apply: true},
	{Name: "max", Aliases: []string{"max"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `max`, Apply: true},
	{Name: "min", Aliases: []string{"min"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `min`, Apply: true},
	{Name: "Delta", Aliases: []string{"Delta", "Δ"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\Delta`},
	{Name: "Xi", Aliases: []string{"Xi", "Ξ"}, Role: RolePrefix, Prec: PrecPrefix, Fuzz: `\Xi`},

	// Postfix operators. Closures come from "+" and "*" written tight.
	{Name: Inverse, Aliases: []string{"~", "∼"}, Role: RolePostfix, Prec: PrecPostfix, Fuzz: `\inv`, Zed: `^{\sim}`},
	{Name: TransClos, Role: RolePostfix, Prec: PrecPostfix, Fuzz: `\plus`, Zed: `^{+}`},
	{Name: ReflClos, Role: RolePostfix, Prec: PrecPostfix, Fuzz: `\star`, Zed: `^{*}`},

	// Named constants.
	{Name: Naturals, Aliases: []string{"N", "ℕ"}, Role: RoleConstant, Prec: PrecAtom, Fuzz: `\nat`, Zed: `\mathbb{N}`},
	{Name: Naturals1, Aliases: []string{"N1", "ℕ₁"}, Role: RoleConstant, Prec: PrecAtom, Fuzz: `\nat_1`, Zed: `\mathbb{N}_1`},
	{Name: Integers, Aliases: []string{"Z", "ℤ"}, Role: RoleConstant, Prec: PrecAtom, Fuzz: `\num`, Zed: `\mathbb{Z}`},
	{Name: EmptySet, Aliases: []string{"emptyset", "∅"}, Role: RoleConstant, Prec: PrecAtom, Fuzz: `\emptyset`},
	{Name: "true", Aliases: []string{"true"}, Role: RoleConstant, Prec: PrecAtom, Fuzz: `true`, Zed: `\mathit{true}`},
	{Name: "false", Aliases: []string{"false"}, Role: RoleConstant, Prec: PrecAtom, Fuzz: `false`, Zed: `\mathit{false}`},

	// Structural keywords.
	{Name: If, Aliases: []string{"if"}, Role: RoleKeyword, Prec: PrecConditional, Fuzz: `\IF`, Zed: `\mathbf{if}`},
	{Name: Then, Aliases: []string{"then"}, Role: RoleKeyword, Fuzz: `\THEN`, Zed: `\mathbf{then}`},
	{Name: Else, Aliases: []string{"else"}, Role: RoleKeyword, Fuzz: `\ELSE`, Zed: `\mathbf{else}`},
	{Name: Given, Aliases: []string{"given"}, Role: RoleKeyword},
	{Name: Axdef, Aliases: []string{"axdef"}, Role: RoleKeyword, Fuzz: "axdef"},
	{Name: Schema, Aliases: []string{"schema"}, Role: RoleKeyword, Fuzz: "schema"},
	{Name: Gendef, Aliases: []string{"gendef"}, Role: RoleKeyword, Fuzz: "gendef"},
	{Name: Zed, Aliases: []string{"zed"}, Role: RoleKeyword, Fuzz: "zed"},
	{Name: Where, Aliases: []string{"where"}, Role: RoleKeyword, Fuzz: `\where`},
	{Name: End, Aliases: []string{"end"}, Role: RoleKeyword},
	{Name: Case, Aliases: []string{"case"}, Role: RoleKeyword},

	// Block keywords. These are matched only at the start of a line.
	{Name: TextBlock, Aliases: []string{"TEXT:"}, Role: RoleKeyword},
	{Name: PureTextBlock, Aliases: []string{"PURETEXT:"}, Role: RoleKeyword},
	{Name: LatexBlock, Aliases: []string{"LATEX:"}, Role: RoleKeyword},
	{Name: ProofBlock, Aliases: []string{"PROOF:"}, Role: RoleKeyword},
	{Name: EquivBlock, Aliases: []string{"EQUIV:"}, Role: RoleKeyword},
	{Name: TruthTable, Aliases: []string{"TRUTH TABLE:"}, Role: RoleKeyword},
	{Name: PageBreak, Aliases: []string{"PAGEBREAK:"}, Role: RoleKeyword, Fuzz: `\newpage`},
}

var (
	byName          = make(map[string]*Entry, len(table))
	byWord          = make(map[string]*Entry)
	bySymbol        = make(map[string]*Entry)
	blockKeys       []string
	symbolsByLength [][]string
)

func init() {
	maxLen := 0
	for i := range table {
		e := &table[i]
		byName[e.Name] = e
		for _, alias := range e.Aliases {
			switch {
			case isBlockKeyword(alias):
				blockKeys = append(blockKeys, alias)
			case isWordAlias(alias):
				byWord[alias] = e
			default:
				bySymbol[alias] = e
				if n := utf8.RuneCountInString(alias); n > maxLen {
					maxLen = n
				}
			}
		}
	}

	symbolsByLength = make([][]string, maxLen+1)
	for alias := range bySymbol {
		n := utf8.RuneCountInString(alias)
		symbolsByLength[n] = append(symbolsByLength[n], alias)
	}
	for _, group := range symbolsByLength {
		sort.Strings(group)
	}
	sort.Slice(blockKeys, func(i, j int) bool { return len(blockKeys[i]) > len(blockKeys[j]) })
}

func isBlockKeyword(alias string) bool {
	return len(alias) > 1 && alias[len(alias)-1] == ':'
}

func isWordAlias(alias string) bool {
	r, _ := utf8.DecodeRuneInString(alias)
	return r < utf8.RuneSelf && unicode.IsLetter(r)
}

// Lookup returns the entry for a canonical name.
func Lookup(name string) (*Entry, bool) {
	e, ok := byName[name]
	return e, ok
}

// Word returns the entry spelled by an alphabetic word such as "and" or "P1".
func Word(word string) (*Entry, bool) {
	e, ok := byWord[word]
	return e, ok
}

// Symbol returns the entry spelled by a non-alphabetic surface string such as "|->".
func Symbol(surface string) (*Entry, bool) {
	e, ok := bySymbol[surface]
	return e, ok
}

// MaxSymbolLength is the length in runes of the longest symbolic spelling.
func MaxSymbolLength() int {
	return len(symbolsByLength) - 1
}

// SymbolsOfLength returns the symbolic spellings that are exactly n runes long.
func SymbolsOfLength(n int) []string {
	if n <= 0 || n >= len(symbolsByLength) {
		return nil
	}
	return symbolsByLength[n]
}

// BlockKeywords returns the colon-terminated block keywords, longest first.
func BlockKeywords() []string {
	return blockKeys
}

// Names returns every canonical name in table order.
func Names() []string {
	names := make([]string, len(table))
	for i := range table {
		names[i] = table[i].Name
	}
	return names
}

// Keywords returns the canonical names of the structural keywords.
func Keywords() []string {
	var names []string
	for i := range table {
		if table[i].Role == RoleKeyword && !isBlockKeyword(table[i].Name) {
			names = append(names, table[i].Name)
		}
	}
	return names
}

// Infix reports the binding power of an infix or relation operator.
func Infix(name string) (Precedence, Assoc, bool) {
	e, ok := byName[name]
	if !ok || (e.Role != RoleInfix && e.Role != RoleRelation) {
		return PrecLowest, AssocNone, false
	}
	return e.Prec, e.Assoc, true
}

// IsRelation reports whether name is a chainable relation.
func IsRelation(name string) bool {
	e, ok := byName[name]
	return ok && e.Role == RoleRelation
}
