// Package token defines the lexical vocabulary shared by the lexer and the parser.
package token

import "fmt"

// Kind identifies what a token is.
type Kind int

const (
	EOF Kind = iota
	Newline
	Identifier
	Number
	Operator
	Keyword
	Delimiter
	Text          // prose captured as one opaque run
	Justification // trailing "[rule name]" on a proof or equivalence line
	Label         // "[1]" assumption label at the start of a proof line
	PartLabel     // "(a)" or "(iv)" at the start of a line
	SectionHeader // "=== Title ==="
	SolutionHeader
)

var kindNames = [...]string{
	EOF:            "end of input",
	Newline:        "newline",
	Identifier:     "identifier",
	Number:         "number",
	Operator:       "operator",
	Keyword:        "keyword",
	Delimiter:      "delimiter",
	Text:           "text",
	Justification:  "justification",
	Label:          "label",
	PartLabel:      "part label",
	SectionHeader:  "section header",
	SolutionHeader: "solution header",
}

// String returns a human-readable name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Class is the coarse classification of a token kind.
type Class string

const (
	ClassOperator   Class = "operator"
	ClassKeyword    Class = "keyword"
	ClassIdentifier Class = "identifier"
	ClassNumber     Class = "number"
	ClassDelimiter  Class = "delimiter"
	ClassTextRun    Class = "text-run"
	ClassEOF        Class = "end-of-input"
)

// Class maps the fine-grained kind onto the coarse token classes.
func (k Kind) Class() Class {
	switch k {
	case EOF:
		return ClassEOF
	case Identifier:
		return ClassIdentifier
	case Number:
		return ClassNumber
	case Operator:
		return ClassOperator
	case Keyword:
		return ClassKeyword
	case Newline, Delimiter:
		return ClassDelimiter
	default:
		return ClassTextRun
	}
}

// Delimiter values.
const (
	LParen       = "("
	RParen       = ")"
	LBracket     = "["
	RBracket     = "]"
	LBrace       = "{"
	RBrace       = "}"
	LAngle       = "⟨"
	RAngle       = "⟩"
	LBag         = "[["
	RBag         = "]]"
	LImage       = "(|"
	RImage       = "|)"
	Comma        = ","
	Semicolon    = ";"
	Colon        = ":"
	Period       = "."
	Bar          = "|"
	At           = "@"
	Sibling      = "::"
	Defines      = "::="
	Abbrev       = "=="
	Continuation = "\\"
)

// Token is a single lexical unit with its source position.
//
// Value holds the canonical form: the canonical operator or keyword name from
// the symbols table, the delimiter string, the identifier or number text, or
// the content of a text run. Literal is the text exactly as written.
type Token struct {
	Kind    Kind
	Value   string
	Literal string

	Line      int // 1-based
	Column    int // 1-based
	EndColumn int // column just past the last character

	SpaceBefore bool // whitespace separates this token from the previous one on the line
	LineStart   bool // first token on its line
}

// Is reports whether the token has the given kind and canonical value.
func (t Token) Is(kind Kind, value string) bool {
	return t.Kind == kind && t.Value == value
}

// IsDelim reports whether the token is the given delimiter.
func (t Token) IsDelim(value string) bool {
	return t.Kind == Delimiter && t.Value == value
}

// IsOp reports whether the token is the operator with the given canonical name.
func (t Token) IsOp(name string) bool {
	return t.Kind == Operator && t.Value == name
}

// IsKeyword reports whether the token is the given keyword.
func (t Token) IsKeyword(name string) bool {
	return t.Kind == Keyword && t.Value == name
}

// Describe renders the token for error messages.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Newline:
		return "end of line"
	case Text:
		return "text"
	}
	if t.Literal != "" {
		return fmt.Sprintf("'%s'", t.Literal)
	}
	return fmt.Sprintf("'%s'", t.Value)
}

// String implements fmt.Stringer for debugging and token dumps.
func (t Token) String() string {
	return fmt.Sprintf("%d:%d %s %q", t.Line, t.Column, t.Kind, t.Literal)
}
