package parser

import (
	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
	"zedtex/zedtex/pkg/zed/symbols"
	"zedtex/zedtex/pkg/zed/token"
)

// parseBox parses an axdef, schema or gendef block:
//
//	schema Name[X]
//	  declarations
//	where
//	  predicates
//	end
func (s *state) parseBox() (ast.Item, error) {
	kw := s.next()
	box := &ast.Box{Type: ast.BoxType(kw.Value), Location: s.loc(kw)}

	if kw.Value == symbols.Schema {
		name := s.peek()
		if name.Kind != token.Identifier {
			return nil, s.errorExpected("schema name")
		}
		s.next()
		box.Name = name.Value
	}
	generics, err := s.parseGenerics()
	if err != nil {
		return nil, err
	}
	box.Generics = generics
	if err := s.expectLineEnd(); err != nil {
		return nil, err
	}

	inWhere := false
	for {
		blank := s.skipNewlines() > 0
		t := s.peek()
		switch {
		case t.Kind == token.EOF:
			err := s.errorExpected("'end'")
			err.Suggestion = zedErrors.SuggestClosing(kw.Value, symbols.End)
			return nil, err

		case t.IsKeyword(symbols.End):
			s.next()
			return box, s.expectLineEnd()

		case t.IsKeyword(symbols.Where):
			if inWhere {
				return nil, s.errorExpected("predicate or 'end'")
			}
			s.next()
			inWhere = true
			if err := s.expectLineEnd(); err != nil {
				return nil, err
			}

		case !inWhere:
			decls, err := s.parseDeclLine()
			if err != nil {
				return nil, err
			}
			box.Declarations = append(box.Declarations, decls...)

		default:
			pred, err := s.parseExpr()
			if err != nil {
				return nil, err
			}
			box.Predicates = append(box.Predicates, ast.Predicate{
				Expr: pred,
				Also: blank && len(box.Predicates) > 0,
			})
			if err := s.expectLineEnd(); err != nil {
				return nil, err
			}
		}
	}
}

// parseDeclLine parses one line of ";"-separated declarations.
func (s *state) parseDeclLine() ([]ast.Declaration, error) {
	var decls []ast.Declaration
	for {
		d, err := s.parseDeclaration()
		if err != nil {
			return nil, err
		}
		decls = append(decls, d)
		if !s.atDelim(token.Semicolon) {
			break
		}
		s.next()
		if s.atLineEnd() {
			break
		}
	}
	return decls, s.expectLineEnd()
}

// parseDeclaration parses "x, y : T" or a schema inclusion such as "Delta State".
func (s *state) parseDeclaration() (ast.Declaration, error) {
	first := s.peek()
	d := ast.Declaration{Location: s.loc(first)}

	if !s.bindingsAhead(0, false) {
		include, err := s.parseExpr()
		if err != nil {
			return ast.Declaration{}, err
		}
		d.Include = include
		return d, nil
	}

	names, err := s.parseNames()
	if err != nil {
		return ast.Declaration{}, err
	}
	if _, err := s.expectDelim(token.Colon); err != nil {
		return ast.Declaration{}, err
	}
	typ, err := s.parseType()
	if err != nil {
		return ast.Declaration{}, err
	}
	d.Names = names
	d.Type = typ
	return d, nil
}

// parseZedBlock parses "zed", lines of declarations or predicates, and "end".
func (s *state) parseZedBlock() (ast.Item, error) {
	kw := s.next()
	block := &ast.ZedBlock{Location: s.loc(kw)}
	if err := s.expectLineEnd(); err != nil {
		return nil, err
	}

	for {
		blank := s.skipNewlines() > 0
		t := s.peek()
		switch {
		case t.Kind == token.EOF:
			err := s.errorExpected("'end'")
			err.Suggestion = zedErrors.SuggestClosing(kw.Value, symbols.End)
			return nil, err

		case t.IsKeyword(symbols.End):
			s.next()
			return block, s.expectLineEnd()
		}

		line := ast.ZedLine{Also: blank && len(block.Lines) > 0}
		if s.bindingsAhead(0, false) {
			d, err := s.parseDeclaration()
			if err != nil {
				return nil, err
			}
			line.Decl = &d
		} else {
			e, err := s.parseExpr()
			if err != nil {
				return nil, err
			}
			line.Expr = e
		}
		block.Lines = append(block.Lines, line)
		if err := s.expectLineEnd(); err != nil {
			return nil, err
		}
	}
}
