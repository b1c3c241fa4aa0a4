package generator

import (
	"strings"
	"unicode/utf8"

	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
)

// boxContext is the expression context inside zed, axdef, schema and gendef
// environments, where "\\" line breaks are allowed.
func boxContext() exprContext {
	ctx := topLevel()
	ctx.box = true
	return ctx
}

// environment wraps lines in \begin{name}...\end{name}. header follows the
// \begin, e.g. "{State}[X]".
func environment(name, header string, body string) string {
	return `\begin{` + name + `}` + header + "\n" + body + "\n" + `\end{` + name + `}`
}

// checkWidth warns about each line of text longer than the configured width.
func (r *run) checkWidth(text, what string, loc ast.Location) {
	if r.g.maxWidth <= 0 {
		return
	}
	for i, line := range strings.Split(text, "\n") {
		if n := utf8.RuneCountInString(line); n > r.g.maxWidth {
			r.warn(loc, "line %d of %s is %d characters long (limit %d)", i+1, what, n, r.g.maxWidth)
		}
	}
}

func genGivenType(r *run, item ast.Item) (string, error) {
	g := item.(*ast.GivenType)
	if len(g.Names) == 0 {
		return "", zedErrors.NewGenerationError(g.Kind().String(), g.Location, "given type without names")
	}
	out := environment("zed", "", "["+r.names(g.Names)+"]")
	r.checkWidth(out, "given type", g.Location)
	return out, nil
}

func (r *run) names(names []string) string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = r.p.identifier(n)
	}
	return strings.Join(out, ", ")
}

func genFreeType(r *run, item ast.Item) (string, error) {
	ft := item.(*ast.FreeType)
	if len(ft.Branches) == 0 {
		return "", zedErrors.NewGenerationError(ft.Kind().String(), ft.Location, "free type without branches")
	}

	branches := make([]string, len(ft.Branches))
	for i, b := range ft.Branches {
		s := r.p.identifier(b.Name)
		if b.Param != nil {
			param, err := r.expr(b.Param, boxContext())
			if err != nil {
				return "", err
			}
			s += ` \ldata ` + param + ` \rdata`
		}
		branches[i] = s
	}

	head := r.p.identifier(ft.Name) + " ::= "
	line := head + strings.Join(branches, " | ")
	if r.g.maxWidth > 0 && utf8.RuneCountInString(line) > r.g.maxWidth {
		line = head + strings.Join(branches, " \\\\\n"+tab(1)+"| ")
	}
	out := environment("zed", "", line)
	r.checkWidth(out, "free type "+ft.Name, ft.Location)
	return out, nil
}

func genAbbreviation(r *run, item ast.Item) (string, error) {
	a := item.(*ast.Abbreviation)
	body, err := r.expr(a.Body, boxContext())
	if err != nil {
		return "", err
	}
	name := r.p.identifier(a.Name)
	if len(a.Generics) > 0 {
		name += "[" + r.names(a.Generics) + "]"
	}
	out := environment("zed", "", name+" == "+body)
	r.checkWidth(out, "abbreviation "+a.Name, a.Location)
	return out, nil
}

func genBox(r *run, item ast.Item) (string, error) {
	b := item.(*ast.Box)

	var header, what string
	switch b.Type {
	case ast.BoxSchema:
		if b.Name == "" {
			return "", zedErrors.NewGenerationError(b.Kind().String(), b.Location, "schema without a name")
		}
		header = "{" + r.p.identifier(b.Name) + "}"
		what = "schema " + b.Name
	case ast.BoxAxdef, ast.BoxGendef:
		what = string(b.Type)
	default:
		return "", zedErrors.NewGenerationError(b.Kind().String(), b.Location, "unknown box type %q", b.Type)
	}
	if len(b.Generics) > 0 {
		header += "[" + r.names(b.Generics) + "]"
	}

	decls := make([]string, len(b.Declarations))
	for i, d := range b.Declarations {
		s, err := r.declaration(d)
		if err != nil {
			return "", err
		}
		decls[i] = s
	}
	body := strings.Join(decls, " \\\\\n")

	if len(b.Predicates) > 0 {
		var preds strings.Builder
		for i, p := range b.Predicates {
			s, err := r.expr(p.Expr, boxContext())
			if err != nil {
				return "", err
			}
			if i > 0 {
				preds.WriteString(lineSeparator(p.Also))
			}
			preds.WriteString(s)
		}
		body += "\n" + `\where` + "\n" + preds.String()
	}

	out := environment(string(b.Type), header, strings.TrimPrefix(body, "\n"))
	r.checkWidth(out, what, b.Location)
	return out, nil
}

// lineSeparator joins two lines of a box; also marks a blank source line.
func lineSeparator(also bool) string {
	if also {
		return "\n" + `\also` + "\n"
	}
	return " \\\\\n"
}

func (r *run) declaration(d ast.Declaration) (string, error) {
	if d.Include != nil {
		return r.expr(d.Include, boxContext())
	}
	if len(d.Names) == 0 || d.Type == nil {
		return "", zedErrors.NewGenerationError("declaration", d.Location, "declaration needs names and a type")
	}
	typ, err := r.expr(d.Type, boxContext())
	if err != nil {
		return "", err
	}
	return r.names(d.Names) + " : " + typ, nil
}

func genZedBlock(r *run, item ast.Item) (string, error) {
	z := item.(*ast.ZedBlock)
	var sb strings.Builder
	for i, line := range z.Lines {
		var (
			s   string
			err error
		)
		switch {
		case line.Decl != nil:
			s, err = r.declaration(*line.Decl)
		case line.Expr != nil:
			s, err = r.expr(line.Expr, boxContext())
		default:
			err = zedErrors.NewGenerationError(z.Kind().String(), z.Location, "empty line in zed block")
		}
		if err != nil {
			return "", err
		}
		if i > 0 {
			sb.WriteString(lineSeparator(line.Also))
		}
		sb.WriteString(s)
	}
	out := environment("zed", "", sb.String())
	r.checkWidth(out, "zed block", z.Location)
	return out, nil
}
