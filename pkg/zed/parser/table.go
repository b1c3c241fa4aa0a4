package parser

import (
	"strconv"
	"strings"

	"zedtex/zedtex/pkg/zed/ast"
	"zedtex/zedtex/pkg/zed/symbols"
	"zedtex/zedtex/pkg/zed/token"
)

// parseTruthTable parses a TRUTH TABLE: block: a header line of
// "|"-separated expressions, then rows of "|"-separated cells up to a blank
// line. A row made only of dashes separates the header and is dropped.
func (s *state) parseTruthTable() (ast.Item, error) {
	kw := s.next()
	if err := s.expectLineEnd(); err != nil {
		return nil, err
	}

	table := &ast.TruthTable{Location: s.loc(kw)}
	if s.atLineEnd() {
		return nil, s.errorExpected("truth table header")
	}
	for {
		e, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		table.Header = append(table.Header, e)
		if !s.atDelim(token.Bar) {
			break
		}
		s.next()
	}
	if err := s.expectLineEnd(); err != nil {
		return nil, err
	}

	for !s.atLineEnd() {
		first := s.peek()
		cells, rule := s.parseRow()
		if err := s.expectLineEnd(); err != nil {
			return nil, err
		}
		if rule {
			continue
		}
		if len(cells) != len(table.Header) {
			return nil, s.errorAt(first,
				strconv.Itoa(len(table.Header))+" cells",
				strconv.Itoa(len(cells))+" cells")
		}
		table.Rows = append(table.Rows, cells)
	}
	return table, nil
}

// parseRow reads the cells of one row as text. rule is true for a separator
// row such as "--+--" or "---|---".
func (s *state) parseRow() (cells []string, rule bool) {
	var cell strings.Builder
	rule = true
	for !s.atLineEnd() {
		t := s.next()
		if t.IsDelim(token.Bar) {
			cells = append(cells, strings.TrimSpace(cell.String()))
			cell.Reset()
			continue
		}
		if !t.IsOp(symbols.Minus) && !t.IsOp(symbols.Plus) {
			rule = false
		}
		if t.SpaceBefore && cell.Len() > 0 {
			cell.WriteByte(' ')
		}
		cell.WriteString(t.Literal)
	}
	cells = append(cells, strings.TrimSpace(cell.String()))
	return cells, rule
}
