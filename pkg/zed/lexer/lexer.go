// Package lexer turns whiteboard notation into a token stream.
//
// The input is processed line by line. Most context sensitivity is local to a
// line: whether "^" is concatenation or a superscript, whether "<" opens a
// sequence literal, whether a trailing "[...]" is a justification, and whether
// the whole line is prose.
package lexer

import (
	"strings"
	"unicode"

	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
	"zedtex/zedtex/pkg/zed/symbols"
	"zedtex/zedtex/pkg/zed/token"
)

// delimiters maps delimiter spellings to their canonical value.
var delimiters = map[string]string{
	"::=": token.Defines,
	"::":  token.Sibling,
	"==":  token.Abbrev,
	"(|":  token.LImage,
	"|)":  token.RImage,
	"[[":  token.LBag,
	"]]":  token.RBag,
	"⦇":   token.LImage,
	"⦈":   token.RImage,
	"⟦":   token.LBag,
	"⟧":   token.RBag,
	"⟨":   token.LAngle,
	"⟩":   token.RAngle,
	"(":   token.LParen,
	")":   token.RParen,
	"[":   token.LBracket,
	"]":   token.RBracket,
	"{":   token.LBrace,
	"}":   token.RBrace,
	",":   token.Comma,
	";":   token.Semicolon,
	":":   token.Colon,
	".":   token.Period,
	"|":   token.Bar,
	"@":   token.At,
	"•":   token.At,
	"⦁":   token.At,
}

// maxDelimiterLength is the longest delimiter spelling in runes.
const maxDelimiterLength = 3

// Lexer converts source text into tokens.
type Lexer struct {
	file  string
	prose *ProseDetector

	source string
	tokens []token.Token

	// current line
	line        []rune
	lineNo      int
	pos         int
	closers     map[int]bool // positions of '>' that close a sequence literal
	hasDefines  bool         // line contains "::=", so "name<" opens a parameter
	spaceBefore bool
	lineTokens  int

	bagDepth   int
	imageDepth int

	// block text capture after TEXT:, PURETEXT: or LATEX: with nothing on the line
	capturing bool
	captureRaw bool
}

// New creates a Lexer with the default prose rules.
func New() *Lexer {
	return &Lexer{
		prose: NewProseDetector(DefaultProseRules()),
	}
}

// WithProse sets the rules used to recognize prose lines.
func (l *Lexer) WithProse(rules ProseRules) *Lexer {
	l.prose = NewProseDetector(rules)
	return l
}

// WithFile sets the file name recorded in error locations.
func (l *Lexer) WithFile(name string) *Lexer {
	l.file = name
	return l
}

// Tokenize lexes source with the default configuration.
func Tokenize(source string) ([]token.Token, error) {
	return New().Tokenize(source)
}

// Tokenize converts source into tokens ending with an EOF token.
// Every line produces a Newline token, so a blank line shows up as two
// consecutive Newline tokens.
func (l *Lexer) Tokenize(source string) ([]token.Token, error) {
	l.source = source
	l.tokens = make([]token.Token, 0, len(source)/3+1)
	l.bagDepth, l.imageDepth = 0, 0
	l.capturing = false

	lines := strings.Split(source, "\n")
	for i, raw := range lines {
		l.startLine(i+1, strings.TrimRight(raw, "\r"))

		if l.capturing {
			l.captureLine()
		} else if err := l.lexLine(); err != nil {
			return nil, err
		}

		l.emitAt(token.Newline, "\n", "", len(l.line), len(l.line))
	}

	l.tokens = append(l.tokens, token.Token{
		Kind:      token.EOF,
		Line:      len(lines),
		Column:    len(l.line) + 1,
		EndColumn: len(l.line) + 1,
		LineStart: l.lineTokens == 0,
	})
	return l.tokens, nil
}

func (l *Lexer) startLine(n int, text string) {
	l.line = []rune(text)
	l.lineNo = n
	l.pos = 0
	l.closers = make(map[int]bool)
	l.hasDefines = strings.Contains(text, "::=")
	l.spaceBefore = false
	l.lineTokens = 0
}

func (l *Lexer) captureLine() {
	text := string(l.line)
	if strings.TrimSpace(text) == "" {
		l.capturing = false
		return
	}
	if l.captureRaw {
		l.emitAt(token.Text, text, text, 0, len(l.line))
		return
	}
	start := l.skipSpace(0)
	trimmed := strings.TrimSpace(text)
	l.emitAt(token.Text, trimmed, trimmed, start, start+len([]rune(trimmed)))
}

func (l *Lexer) lexLine() error {
	trimmed := strings.TrimSpace(string(l.line))
	if trimmed == "" || strings.HasPrefix(trimmed, "%") {
		return nil
	}
	start := l.skipSpace(0)

	switch {
	case strings.HasPrefix(trimmed, "==="):
		return l.lexDelimitedHeader(trimmed, start, "===", token.SectionHeader, "section header")
	case strings.HasPrefix(trimmed, "**"):
		return l.lexDelimitedHeader(trimmed, start, "**", token.SolutionHeader, "solution marker")
	}

	for _, kw := range symbols.BlockKeywords() {
		if strings.HasPrefix(trimmed, kw) {
			return l.lexBlockKeyword(kw, start)
		}
	}

	if l.prose.IsProse(trimmed, true) {
		l.emitAt(token.Text, trimmed, trimmed, start, start+len([]rune(trimmed)))
		return nil
	}

	l.pos = start
	if !l.lexLabel() {
		l.lexPartLabel()
	}
	return l.scan()
}

func (l *Lexer) lexDelimitedHeader(trimmed string, start int, mark string, kind token.Kind, what string) error {
	if len(trimmed) < 2*len(mark) || !strings.HasSuffix(trimmed, mark) {
		return zedErrors.NewLexError(l.source, l.loc(start), "unterminated %s: missing closing %q", what, mark)
	}
	title := strings.TrimSpace(trimmed[len(mark) : len(trimmed)-len(mark)])
	l.emitAt(kind, title, trimmed, start, start+len([]rune(trimmed)))
	return nil
}

func (l *Lexer) lexBlockKeyword(kw string, start int) error {
	n := len([]rune(kw))
	l.emitAt(token.Keyword, kw, kw, start, start+n)

	restStart := l.skipSpace(start + n)
	rest := string(l.line[restStart:])

	switch kw {
	case symbols.TextBlock, symbols.PureTextBlock, symbols.LatexBlock:
		raw := kw == symbols.LatexBlock
		if strings.TrimSpace(rest) == "" {
			l.capturing = true
			l.captureRaw = raw
			return nil
		}
		if !raw {
			rest = strings.TrimSpace(rest)
		}
		l.emitAt(token.Text, rest, rest, restStart, len(l.line))
		return nil
	}

	l.pos = restStart
	l.spaceBefore = true
	return l.scan()
}

// lexLabel recognizes "[12]" as the first token of a line.
func (l *Lexer) lexLabel() bool {
	if l.lineTokens != 0 || l.pos >= len(l.line) || l.line[l.pos] != '[' {
		return false
	}
	end := l.pos + 1
	for end < len(l.line) && unicode.IsDigit(l.line[end]) {
		end++
	}
	if end == l.pos+1 || end >= len(l.line) || l.line[end] != ']' {
		return false
	}
	digits := string(l.line[l.pos+1 : end])
	l.emitAt(token.Label, digits, string(l.line[l.pos:end+1]), l.pos, end+1)
	l.pos = end + 1
	return true
}

var partLabels = map[string]bool{
	"a": true, "b": true, "c": true, "d": true, "e": true, "f": true, "g": true, "h": true,
	"i": true, "ii": true, "iii": true, "iv": true, "v": true, "vi": true, "vii": true,
	"viii": true, "ix": true, "x": true,
}

// lexPartLabel recognizes "(a)" or "(iv)" at the start of a line followed by
// whitespace or the end of the line.
func (l *Lexer) lexPartLabel() bool {
	if l.lineTokens != 0 || l.pos >= len(l.line) || l.line[l.pos] != '(' {
		return false
	}
	end := l.pos + 1
	for end < len(l.line) && unicode.IsLower(l.line[end]) {
		end++
	}
	if end >= len(l.line) || l.line[end] != ')' {
		return false
	}
	label := string(l.line[l.pos+1 : end])
	if !partLabels[label] {
		return false
	}
	if end+1 < len(l.line) && !unicode.IsSpace(l.line[end+1]) {
		return false
	}
	l.emitAt(token.PartLabel, label, string(l.line[l.pos:end+1]), l.pos, end+1)
	l.pos = end + 1
	return true
}

// scan lexes ordinary tokens from l.pos to the end of the line.
func (l *Lexer) scan() error {
	for l.pos < len(l.line) {
		r := l.line[l.pos]

		if unicode.IsSpace(r) {
			l.pos++
			l.spaceBefore = true
			continue
		}
		if r == '%' {
			return nil
		}

		var err error
		switch {
		case l.closers[l.pos]:
			l.emit(token.Delimiter, token.RAngle, 1)
		case r == '\\' && l.restIsBlank(l.pos+1):
			l.emit(token.Delimiter, token.Continuation, 1)
		case r == '[' && l.lexJustification():
		case unicode.IsDigit(r):
			l.lexNumber()
		case isIdentStart(r) && !l.symbolAhead():
			l.lexWord()
		default:
			err = l.lexSymbol()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (l *Lexer) lexNumber() {
	end := l.pos
	for end < len(l.line) && unicode.IsDigit(l.line[end]) {
		end++
	}
	if end+1 < len(l.line) && l.line[end] == '.' && unicode.IsDigit(l.line[end+1]) {
		end++
		for end < len(l.line) && unicode.IsDigit(l.line[end]) {
			end++
		}
	}
	text := string(l.line[l.pos:end])
	l.emit(token.Number, text, end-l.pos)
}

// symbolAhead reports whether a non-ASCII symbol such as ℕ or λ starts at
// l.pos. Those are letters to unicode but spell reserved words.
func (l *Lexer) symbolAhead() bool {
	if l.line[l.pos] < unicode.MaxASCII {
		return false
	}
	_, kind, _ := l.matchSymbol(l.pos)
	return kind != token.EOF
}

func (l *Lexer) lexWord() {
	end := l.pos
	for end < len(l.line) && isIdentPart(l.line[end]) {
		end++
	}
	word := string(l.line[l.pos:end])

	if word == "not" {
		if n := l.followingWord(end, "in"); n > 0 {
			l.emit(token.Operator, "notin", n-l.pos)
			return
		}
	}

	if entry, ok := symbols.Word(word); ok {
		l.emit(kindOf(entry), entry.Name, end-l.pos)
		return
	}

	if l.lineTokens > 0 && l.prose.IsStarter(word) {
		rest := string(l.line[l.pos:])
		if l.prose.IsProse(rest, false) {
			trimmed := strings.TrimSpace(rest)
			l.emit(token.Text, trimmed, len(l.line)-l.pos)
			return
		}
	}

	// decorations: x', in?, out!
	for end < len(l.line) {
		c := l.line[end]
		if c == '\'' || c == '?' || (c == '!' && !(end+1 < len(l.line) && l.line[end+1] == '=')) {
			end++
			continue
		}
		break
	}
	text := string(l.line[l.pos:end])
	l.emit(token.Identifier, text, end-l.pos)
}

// followingWord returns the end of word if it follows position from after
// whitespace and is not part of a longer identifier, or zero.
func (l *Lexer) followingWord(from int, word string) int {
	i := from
	for i < len(l.line) && (l.line[i] == ' ' || l.line[i] == '\t') {
		i++
	}
	if i == from {
		return 0
	}
	w := []rune(word)
	if i+len(w) > len(l.line) || string(l.line[i:i+len(w)]) != word {
		return 0
	}
	end := i + len(w)
	if end < len(l.line) && isIdentPart(l.line[end]) {
		return 0
	}
	return end
}

func (l *Lexer) lexSymbol() error {
	text, kind, value := l.matchSymbol(l.pos)
	if kind == token.EOF {
		return zedErrors.NewLexError(l.source, l.loc(l.pos), "unexpected character %q", l.line[l.pos])
	}
	n := len([]rune(text))

	switch {
	case kind == token.Operator && value == symbols.Less && l.opensSequence():
		kind, value = token.Delimiter, token.LAngle
	case kind == token.Operator && value == symbols.Cat && text == "^" && l.tightAfterOperand():
		value = symbols.Superscript
	case kind == token.Delimiter:
		l.trackDepth(value)
	}

	l.emit(kind, value, n)
	return nil
}

// matchSymbol finds the longest operator or delimiter at pos. kind is EOF
// when nothing matches.
func (l *Lexer) matchSymbol(pos int) (text string, kind token.Kind, value string) {
	maxLen := symbols.MaxSymbolLength()
	if maxLen < maxDelimiterLength {
		maxLen = maxDelimiterLength
	}
	for n := maxLen; n >= 1; n-- {
		if pos+n > len(l.line) {
			continue
		}
		s := string(l.line[pos : pos+n])
		if v, ok := delimiters[s]; ok && l.delimiterAllowed(v, s) {
			return s, token.Delimiter, v
		}
		if e, ok := symbols.Symbol(s); ok {
			return s, kindOf(e), e.Name
		}
	}
	return "", token.EOF, ""
}

// kindOf returns the token kind for a reserved word.
func kindOf(e *symbols.Entry) token.Kind {
	switch e.Role {
	case symbols.RoleConstant:
		return token.Identifier
	case symbols.RoleKeyword, symbols.RoleQuantifier:
		return token.Keyword
	default:
		return token.Operator
	}
}

// delimiterAllowed keeps "]]" and "|)" as two tokens unless a bag or image is open.
func (l *Lexer) delimiterAllowed(value, spelling string) bool {
	switch {
	case value == token.RBag && spelling == "]]":
		return l.bagDepth > 0
	case value == token.RImage && spelling == "|)":
		return l.imageDepth > 0
	}
	return true
}

func (l *Lexer) trackDepth(value string) {
	switch value {
	case token.LBag:
		l.bagDepth++
	case token.RBag:
		l.bagDepth--
	case token.LImage:
		l.imageDepth++
	case token.RImage:
		l.imageDepth--
	}
}

// lastToken returns the previous token on the current line, or nil.
func (l *Lexer) lastToken() *token.Token {
	if l.lineTokens == 0 {
		return nil
	}
	return &l.tokens[len(l.tokens)-1]
}

// tightAfterOperand reports whether the symbol at l.pos touches the end of an operand.
func (l *Lexer) tightAfterOperand() bool {
	prev := l.lastToken()
	return prev != nil && !l.spaceBefore && endsOperand(*prev)
}

func endsOperand(t token.Token) bool {
	switch t.Kind {
	case token.Identifier, token.Number:
		return true
	case token.Delimiter:
		switch t.Value {
		case token.RParen, token.RBracket, token.RBrace, token.RAngle, token.RBag:
			return true
		}
	}
	return false
}

// opensSequence decides whether the "<" at l.pos opens a sequence literal.
// It does when a matching ">" follows on the same line with no comparison
// boundary in between. A "<" written tight after an operand is a comparison,
// except on a free type line where it opens a constructor parameter.
func (l *Lexer) opensSequence() bool {
	pos := l.pos
	if pos+1 < len(l.line) && l.line[pos+1] == '>' {
		l.closers[pos+1] = true
		return true
	}
	if pos+1 >= len(l.line) || unicode.IsSpace(l.line[pos+1]) {
		return false
	}
	if l.tightAfterOperand() && !l.hasDefines {
		return false
	}

	depth := 1
	for j := pos + 1; j < len(l.line); {
		text, _, _ := l.matchSymbol(j)
		if n := len([]rune(text)); n > 1 {
			j += n
			continue
		}

		switch l.line[j] {
		case '<':
			if j+1 < len(l.line) && l.line[j+1] == '>' {
				j += 2
				continue
			}
			if j+1 >= len(l.line) || unicode.IsSpace(l.line[j+1]) {
				return false
			}
			depth++
		case '>':
			if unicode.IsSpace(l.line[j-1]) {
				return false
			}
			depth--
			if depth == 0 {
				l.closers[j] = true
				return true
			}
		}
		j++
	}
	return false
}

// lexJustification recognizes a trailing "[rule name]" after whitespace.
// Generic parameter lists after schema or gendef are never justifications.
func (l *Lexer) lexJustification() bool {
	if !l.spaceBefore || l.lineTokens == 0 {
		return false
	}
	if prev := l.lastToken(); prev != nil && l.introducesGenerics(*prev) {
		return false
	}

	end := l.pos + 1
	for end < len(l.line) && l.line[end] != ']' {
		if l.line[end] == '[' {
			return false
		}
		end++
	}
	if end >= len(l.line) || !l.restIsBlank(end+1) {
		return false
	}

	content := strings.TrimSpace(string(l.line[l.pos+1 : end]))
	if !looksLikeRuleName(content) {
		return false
	}
	l.emit(token.Justification, content, end+1-l.pos)
	return true
}

func (l *Lexer) introducesGenerics(prev token.Token) bool {
	if prev.IsKeyword(symbols.Gendef) {
		return true
	}
	if prev.Kind != token.Identifier || len(l.tokens) < 2 || l.lineTokens < 2 {
		return false
	}
	return l.tokens[len(l.tokens)-2].IsKeyword(symbols.Schema)
}

// looksLikeRuleName separates "[and intro]" from a type argument such as "[N]".
func looksLikeRuleName(content string) bool {
	if content == "" {
		return false
	}
	if strings.ContainsAny(content, " \t") {
		return true
	}
	run := 0
	for _, r := range content {
		if unicode.IsLower(r) {
			run++
			if run >= 2 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

func (l *Lexer) restIsBlank(from int) bool {
	for i := from; i < len(l.line); i++ {
		if l.line[i] == '%' {
			return true
		}
		if !unicode.IsSpace(l.line[i]) {
			return false
		}
	}
	return true
}

func (l *Lexer) skipSpace(from int) int {
	for from < len(l.line) && unicode.IsSpace(l.line[from]) {
		from++
	}
	return from
}

// emit appends a token of n runes starting at l.pos and advances past it.
func (l *Lexer) emit(kind token.Kind, value string, n int) {
	literal := string(l.line[l.pos : l.pos+n])
	l.emitAt(kind, value, literal, l.pos, l.pos+n)
	l.pos += n
}

func (l *Lexer) emitAt(kind token.Kind, value, literal string, start, end int) {
	tok := token.Token{
		Kind:        kind,
		Value:       value,
		Literal:     literal,
		Line:        l.lineNo,
		Column:      start + 1,
		EndColumn:   end + 1,
		SpaceBefore: l.spaceBefore || (l.lineTokens == 0 && start > 0),
		LineStart:   l.lineTokens == 0,
	}
	if kind == token.Newline {
		tok.LineStart = false
	}
	l.tokens = append(l.tokens, tok)
	l.lineTokens++
	l.spaceBefore = false
}

func (l *Lexer) loc(pos int) ast.Location {
	return ast.Location{File: l.file, Line: l.lineNo, Column: pos + 1}
}

func isIdentStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
