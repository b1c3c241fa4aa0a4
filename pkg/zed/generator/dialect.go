package generator

import (
	"fmt"
	"strings"

	"zedtex/zedtex/pkg/zed/ast"
	"zedtex/zedtex/pkg/zed/symbols"
)

// Dialect selects the LaTeX vocabulary of the output.
type Dialect int

const (
	// Fuzz is the strict dialect accepted by the fuzz typechecker.
	Fuzz Dialect = iota

	// Zed is the conventional typesetting dialect of zed-cm.
	Zed
)

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case Fuzz:
		return "fuzz"
	case Zed:
		return "zed"
	default:
		return fmt.Sprintf("dialect(%d)", int(d))
	}
}

// ParseDialect converts a dialect name such as "fuzz" or "zed".
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fuzz", "":
		return Fuzz, nil
	case "zed", "zed-cm":
		return Zed, nil
	}
	return Fuzz, fmt.Errorf("unknown dialect %q (want fuzz or zed)", name)
}

// profile holds every dialect-dependent decision. Handlers never test the
// dialect directly; they ask the profile.
type profile struct {
	conventional bool

	// spot separates a quantifier's constraint from its body
	spot string

	// keywordSep surrounds if/then/else
	keywordSep string

	// packages loaded by a standalone document
	packages []string

	// wrapApplications parenthesizes an application under a prefix operator
	wrapApplications bool

	// tailQuantifiers leaves a quantifier bare when nothing follows it
	tailQuantifiers bool
}

var profiles = map[Dialect]*profile{
	Fuzz: {
		spot:             "@",
		keywordSep:       " ",
		packages:         []string{"fuzz"},
		wrapApplications: true,
	},
	Zed: {
		conventional:    true,
		spot:            `\spot`,
		keywordSep:      "~",
		packages:        []string{"zed-cm", "amssymb"},
		tailQuantifiers: true,
	},
}

// symbol returns the output symbol of a table entry.
func (p *profile) symbol(e *symbols.Entry) string {
	return e.Symbol(p.conventional)
}

// typeSymbol renders a named constant such as N or Z.
func (p *profile) typeSymbol(e *symbols.Entry) string {
	return e.Symbol(p.conventional)
}

// connective renders a logical connective. In an equivalence chain the
// arrows are always the conventional ones.
func (p *profile) connective(e *symbols.Entry, chain bool) string {
	return e.Symbol(p.conventional || chain)
}

// closure renders a postfix closure or inverse applied to operand.
func (p *profile) closure(e *symbols.Entry, operand string) string {
	if p.conventional {
		return operand + e.Symbol(true)
	}
	return operand + " " + e.Symbol(false)
}

// wrapQuantifier reports whether a quantifier in ctx needs parentheses.
func (p *profile) wrapQuantifier(ctx exprContext) bool {
	if ctx.parent == nil {
		return false
	}
	if p.tailQuantifiers {
		return !ctx.tail
	}
	return !ctx.body
}

// wrapUnaryOperand reports whether the operand of a prefix operator needs
// parentheses beyond what precedence requires. A prefix word rendered as an
// application ("head~s") wraps every operand that is not an atom in both
// dialects, because application groups to the left.
func (p *profile) wrapUnaryOperand(e *symbols.Entry, operand ast.Expr) bool {
	if e.Apply {
		return precedence(operand) < symbols.PrecAtom || appliesFunction(operand)
	}
	return appliesFunction(operand) && p.wrapApplications
}

// identifier renders a name. Reserved constants and prefix words used as
// names get their symbol; names containing underscores are escaped.
func (p *profile) identifier(name string) string {
	if e, ok := symbols.Lookup(name); ok && e.Role == symbols.RoleConstant {
		return p.typeSymbol(e)
	}
	if e, ok := symbols.Word(name); ok && e.Role == symbols.RolePrefix && !e.Apply {
		return p.symbol(e)
	}
	if !strings.Contains(name, "_") {
		return name
	}
	escaped := strings.ReplaceAll(name, "_", `\_`)
	if p.conventional {
		return `\mathit{` + escaped + `}`
	}
	return escaped
}

// conditionalKeyword renders if, then or else.
func (p *profile) conditionalKeyword(name string) string {
	e, _ := symbols.Lookup(name)
	return e.Symbol(p.conventional)
}
