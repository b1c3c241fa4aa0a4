package parser

import (
	stderrors "errors"
	"strings"

	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
	"zedtex/zedtex/pkg/zed/lexer"
	"zedtex/zedtex/pkg/zed/token"
)

// parseTextBlock parses TEXT:, PURETEXT: or LATEX:. The text is either the
// rest of the keyword line or, when that is empty, the following lines up to
// a blank line.
func (s *state) parseTextBlock(typ ast.TextType) (ast.Item, error) {
	kw := s.next()

	var lines []token.Token
	if s.peek().Kind == token.Text {
		lines = append(lines, s.next())
		block, err := s.textBlockAt(typ, lines, kw)
		if err != nil {
			return nil, err
		}
		return block, s.expectLineEnd()
	}

	if err := s.expectLineEnd(); err != nil {
		return nil, err
	}
	for s.peek().Kind == token.Text {
		lines = append(lines, s.next())
		if err := s.expectLineEnd(); err != nil {
			return nil, err
		}
	}
	if len(lines) == 0 {
		return nil, s.errorExpected("text after " + kw.Value)
	}
	return s.textBlockAt(typ, lines, kw)
}

func (s *state) textBlockAt(typ ast.TextType, lines []token.Token, at token.Token) (ast.Item, error) {
	block, err := s.textBlock(typ, lines)
	if err != nil {
		return nil, err
	}
	block.Location = s.loc(at)
	return block, nil
}

// textBlock builds a text block from one Text token per line. Prose lines
// have their $...$ spans parsed as expressions; other types keep the text verbatim.
func (s *state) textBlock(typ ast.TextType, lines []token.Token) (*ast.TextBlock, error) {
	block := &ast.TextBlock{Type: typ, Location: s.loc(lines[0])}
	for i, line := range lines {
		if i > 0 {
			block.Segments = appendText(block.Segments, "\n")
		}
		if typ != ast.TextProse {
			block.Segments = appendText(block.Segments, line.Value)
			continue
		}
		segs, err := s.splitMath(line)
		if err != nil {
			return nil, err
		}
		for _, seg := range segs {
			if seg.Math != nil {
				block.Segments = append(block.Segments, seg)
			} else {
				block.Segments = appendText(block.Segments, seg.Text)
			}
		}
	}
	return block, nil
}

// appendText adds prose to segs, merging with a trailing prose segment.
func appendText(segs []ast.Segment, text string) []ast.Segment {
	if text == "" {
		return segs
	}
	if n := len(segs); n > 0 && segs[n-1].Math == nil {
		segs[n-1].Text += text
		return segs
	}
	return append(segs, ast.Segment{Text: text})
}

// splitMath separates the $...$ spans of a prose line and parses each one.
func (s *state) splitMath(line token.Token) ([]ast.Segment, error) {
	text := line.Value
	var segs []ast.Segment
	offset := 0 // runes consumed so far
	for {
		open := strings.IndexByte(text, '$')
		if open < 0 {
			return append(segs, ast.Segment{Text: text}), nil
		}
		rest := text[open+1:]
		closing := strings.IndexByte(rest, '$')
		openCol := offset + runeLen(text[:open])
		if closing < 0 {
			return nil, zedErrors.NewParseError(s.source, s.spanLoc(line, openCol), "closing '$'", "end of line")
		}

		if open > 0 {
			segs = append(segs, ast.Segment{Text: text[:open]})
		}
		span := rest[:closing]
		expr, err := s.parseSpan(line, openCol+1, span)
		if err != nil {
			return nil, err
		}
		segs = append(segs, ast.Segment{Math: expr})

		offset = openCol + 1 + runeLen(span) + 1
		text = rest[closing+1:]
	}
}

// parseSpan lexes and parses the math of a prose line. offset is the rune
// position of span within the line's text token.
func (s *state) parseSpan(line token.Token, offset int, span string) (ast.Expr, error) {
	toks, err := lexer.Tokenize(span)
	if err != nil {
		var lexErr *zedErrors.LexError
		if stderrors.As(err, &lexErr) {
			loc := s.spanLoc(line, offset+lexErr.Location.Column-1)
			return nil, zedErrors.NewLexError(s.source, loc, "%s", lexErr.Message)
		}
		return nil, err
	}

	base := line
	sub := newState(s.file, s.source, toks)
	sub.base = &base
	sub.offset = offset

	e, err := sub.parseExpr()
	if err != nil {
		return nil, err
	}
	sub.skipNewlines()
	if sub.peek().Kind != token.EOF {
		return nil, sub.errorExpected("closing '$'")
	}
	return e, nil
}

func (s *state) spanLoc(line token.Token, runeOffset int) ast.Location {
	return ast.Location{File: s.file, Line: line.Line, Column: line.Column + runeOffset}
}

func runeLen(text string) int {
	return len([]rune(text))
}
