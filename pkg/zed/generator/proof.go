package generator

import (
	"strconv"
	"strings"
	"unicode"

	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
	"zedtex/zedtex/pkg/zed/symbols"
)

// genProofTree renders a natural deduction tree with the proof package's
// \infer and \deduce.
func genProofTree(r *run, item ast.Item) (string, error) {
	pt := item.(*ast.ProofTree)
	if pt.Root == nil {
		return "", zedErrors.NewGenerationError(pt.Kind().String(), pt.Location, "proof without a conclusion")
	}
	s, err := r.proofNode(pt.Root)
	if err != nil {
		return "", err
	}
	return "\\[\n" + s + "\n\\]", nil
}

func (r *run) proofNode(n *ast.ProofNode) (string, error) {
	concl, err := r.expr(n.Expr, topLevel())
	if err != nil {
		return "", err
	}
	if n.IsAssumption {
		concl = "[" + concl + "]^{" + strconv.Itoa(n.Label) + "}"
		if len(n.Children) == 0 && n.Justification == "" {
			return concl, nil
		}
	}
	if len(n.Children) == 0 && n.Justification == "" && len(n.Discharge) == 0 {
		return concl, nil
	}

	premises := make([]string, 0, len(n.Children))
	hasCase := false
	for _, c := range n.Children {
		var (
			s   string
			err error
		)
		if c.IsCase {
			hasCase = true
			s, err = r.caseBranch(c)
		} else {
			s, err = r.proofNode(c)
		}
		if err != nil {
			return "", err
		}
		premises = append(premises, s)
	}

	sep := " & "
	if hasCase {
		// Case branches are whole derivations side by side; deeper ones need more room.
		sep = " & \\hskip " + strconv.Itoa(n.Depth()) + "em "
	}
	return `\infer` + r.rule(n) + "{" + concl + "}{" + strings.Join(premises, sep) + "}", nil
}

// caseBranch renders "case p:" and its derivation, with the case hypothesis above.
func (r *run) caseBranch(n *ast.ProofNode) (string, error) {
	hyp, err := r.expr(n.Expr, topLevel())
	if err != nil {
		return "", err
	}
	hyp = `[\mbox{case}~` + hyp + "]"
	if len(n.Children) == 0 {
		return hyp, nil
	}
	steps := make([]string, len(n.Children))
	for i, c := range n.Children {
		s, err := r.proofNode(c)
		if err != nil {
			return "", err
		}
		steps[i] = s
	}
	return `\deduce{` + strings.Join(steps, ` \quad `) + "}{" + hyp + "}", nil
}

// rule renders the bracketed rule name of an inference, with discharged
// assumption labels as a superscript.
func (r *run) rule(n *ast.ProofNode) string {
	if n.Justification == "" && len(n.Discharge) == 0 {
		return ""
	}
	s := r.justification(n.Justification)
	if len(n.Discharge) > 0 {
		labels := make([]string, len(n.Discharge))
		for i, l := range n.Discharge {
			labels[i] = strconv.Itoa(l)
		}
		s += "^{" + strings.Join(labels, ",") + "}"
	}
	return "[" + s + "]"
}

// justification renders a rule name such as "=> intro" or "and elim":
// operator words become their symbols, other words run together in \mbox.
func (r *run) justification(text string) string {
	var parts, words []string
	flush := func() {
		if len(words) > 0 {
			parts = append(parts, `\mbox{`+escapeText(strings.Join(words, " "))+"}")
			words = nil
		}
	}
	for _, w := range strings.Fields(text) {
		if sym, ok := r.ruleSymbol(w); ok {
			flush()
			parts = append(parts, sym)
			continue
		}
		words = append(words, w)
	}
	flush()
	return strings.Join(parts, "~")
}

// ruleSymbol maps a word of a justification to a connective or quantifier symbol.
func (r *run) ruleSymbol(word string) (string, bool) {
	var (
		e  *symbols.Entry
		ok bool
	)
	if first := []rune(word)[0]; first < unicode.MaxASCII && unicode.IsLetter(first) {
		e, ok = symbols.Word(word)
	} else {
		e, ok = symbols.Symbol(word)
	}
	if !ok {
		return "", false
	}
	switch e.Name {
	case symbols.And, symbols.Or, symbols.Not, symbols.Implies, symbols.Iff,
		symbols.Forall, symbols.Exists, symbols.Exists1, symbols.Equals:
		return r.p.connective(e, true), true
	}
	return "", false
}

// genEquivChain renders an equivalence chain as an align* block.
func genEquivChain(r *run, item ast.Item) (string, error) {
	ec := item.(*ast.EquivChain)
	if len(ec.Steps) == 0 {
		return "", zedErrors.NewGenerationError(ec.Kind().String(), ec.Location, "equivalence chain without steps")
	}

	lines := make([]string, len(ec.Steps))
	for i, step := range ec.Steps {
		e, err := r.expr(step.Expr, topLevel())
		if err != nil {
			return "", err
		}
		line := "&" + e
		if step.Connective != "" {
			entry, ok := symbols.Lookup(step.Connective)
			if !ok {
				return "", zedErrors.NewGenerationError(ec.Kind().String(), step.Location, "unknown connective %q", step.Connective)
			}
			line = r.p.connective(entry, true) + "{} " + line
		}
		if step.Justification != "" {
			line += " && [" + r.justification(step.Justification) + "]"
		}
		lines[i] = line
	}
	return environment("align*", "", strings.Join(lines, " \\\\\n")), nil
}
