package generator

import (
	"strings"

	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
)

var textEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

// escapeText makes plain text safe for LaTeX paragraph mode.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func genTextBlock(r *run, item ast.Item) (string, error) {
	tb := item.(*ast.TextBlock)
	var sb strings.Builder
	for _, seg := range tb.Segments {
		switch {
		case seg.Math != nil:
			if tb.Type != ast.TextProse {
				return "", zedErrors.NewGenerationError(tb.Kind().String(), tb.Location, "math in a %s block", tb.Type)
			}
			math, err := r.expr(seg.Math, topLevel())
			if err != nil {
				return "", err
			}
			sb.WriteString("$" + math + "$")
		case tb.Type == ast.TextLatex:
			sb.WriteString(seg.Text)
		default:
			sb.WriteString(escapeText(seg.Text))
		}
	}
	return sb.String(), nil
}

func genSection(r *run, item ast.Item) (string, error) {
	s := item.(*ast.Section)
	return r.heading(`\section*`, s.Title, s.Items)
}

func genSolution(r *run, item ast.Item) (string, error) {
	s := item.(*ast.Solution)
	return r.heading(`\subsection*`, s.Label, s.Items)
}

func genPart(r *run, item ast.Item) (string, error) {
	p := item.(*ast.Part)
	return r.heading(`\subsubsection*`, "("+p.Label+")", p.Items)
}

func (r *run) heading(command, title string, items []ast.Item) (string, error) {
	head := command + "{" + escapeText(title) + "}"
	body, err := r.items(items)
	if err != nil {
		return "", err
	}
	if body == "" {
		return head, nil
	}
	return head + "\n\n" + body, nil
}

func genExprItem(r *run, item ast.Item) (string, error) {
	e := item.(*ast.ExprItem)
	if e.Expr == nil {
		return "", zedErrors.NewGenerationError(e.Kind().String(), e.Location, "missing expression")
	}
	s, err := r.expr(e.Expr, topLevel())
	if err != nil {
		return "", err
	}
	return `\[ ` + s + ` \]`, nil
}

func genPageBreak(_ *run, _ ast.Item) (string, error) {
	return `\newpage`, nil
}
