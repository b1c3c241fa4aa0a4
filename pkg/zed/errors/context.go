package errors

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"zedtex/zedtex/pkg/zed/ast"
)

// Snippet returns the source line at loc followed by a caret under its column:
//
//	  3 | x : N +
//	    |       ^
//
// It returns an empty string when the line is not part of source.
func Snippet(source string, loc ast.Location) string {
	line, ok := sourceLine(source, loc.Line)
	if !ok {
		return ""
	}

	num := fmt.Sprintf("%d", loc.Line)
	gutter := strings.Repeat(" ", len(num))

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  %s | %s\n", num, line))
	sb.WriteString(fmt.Sprintf("  %s | %s^\n", gutter, caretPadding(line, loc.Column)))
	return sb.String()
}

// ExtractContext returns contextLines lines either side of loc, marking the
// error line with "->" and its column with a caret.
func ExtractContext(source string, loc ast.Location, contextLines int) string {
	if !loc.IsValid() {
		return ""
	}

	lines := strings.Split(source, "\n")
	errorLine := loc.Line - 1
	if errorLine >= len(lines) {
		return ""
	}

	startLine := errorLine - contextLines
	endLine := errorLine + contextLines
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	var sb strings.Builder
	width := len(fmt.Sprintf("%d", endLine+1))

	for i := startLine; i <= endLine; i++ {
		prefix := "  "
		if i == errorLine {
			prefix = "->"
		}
		text := strings.TrimRight(lines[i], "\r")
		sb.WriteString(fmt.Sprintf("%s %*d | %s\n", prefix, width, i+1, text))

		if i == errorLine && loc.Column > 0 {
			sb.WriteString(fmt.Sprintf("   %s | %s^\n", strings.Repeat(" ", width), caretPadding(text, loc.Column)))
		}
	}

	return sb.String()
}

func sourceLine(source string, n int) (string, bool) {
	if n <= 0 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[n-1], "\r"), true
}

// caretPadding returns the whitespace that puts a caret under column col,
// keeping tabs so the caret lines up with the echoed line.
func caretPadding(line string, col int) string {
	var sb strings.Builder
	c := 1
	for _, r := range line {
		if c >= col {
			break
		}
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteRune(' ')
		}
		c++
	}
	if n := col - 1 - utf8.RuneCountInString(line); n > 0 {
		sb.WriteString(strings.Repeat(" ", n))
	}
	return sb.String()
}
