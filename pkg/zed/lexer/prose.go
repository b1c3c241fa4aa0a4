package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"zedtex/zedtex/pkg/zed/symbols"
)

// DefaultLookahead is how many words after the first are searched for an indicator.
const DefaultLookahead = 6

// DefaultStarters are words that commonly open an English sentence.
var DefaultStarters = []string{
	"The", "A", "An", "This", "That", "These", "Those", "We", "It", "Let",
	"Note", "Hence", "Thus", "Therefore", "Since", "Suppose", "Consider",
	"Here", "There", "Then", "When", "If", "For", "In", "Show", "Prove",
}

// DefaultIndicators are words that rarely occur in a formula but often in a sentence.
var DefaultIndicators = []string{
	"is", "are", "was", "were", "be", "been", "by", "has", "have", "can",
	"will", "must", "should", "may", "means", "denotes", "holds", "follows",
	"gives", "shows", "that", "which", "the", "of", "we", "it", "its",
	"this", "because", "therefore",
}

// ProseRules configures prose detection.
type ProseRules struct {
	Starters   []string
	Indicators []string
	Lookahead  int
}

// DefaultProseRules returns the built-in word lists.
func DefaultProseRules() ProseRules {
	return ProseRules{
		Starters:   DefaultStarters,
		Indicators: DefaultIndicators,
		Lookahead:  DefaultLookahead,
	}
}

// ProseDetector decides whether a line, or the rest of one, is English prose
// rather than an expression. It looks for a sentence-like first word and then
// for an indicator word within a bounded window. The heuristic has false
// positives and negatives; the word lists are configurable for that reason.
type ProseDetector struct {
	starters   map[string]bool
	indicators map[string]bool
	lookahead  int
}

// NewProseDetector builds a detector from rules. Empty lists fall back to the defaults.
func NewProseDetector(rules ProseRules) *ProseDetector {
	if len(rules.Starters) == 0 {
		rules.Starters = DefaultStarters
	}
	if len(rules.Indicators) == 0 {
		rules.Indicators = DefaultIndicators
	}
	if rules.Lookahead <= 0 {
		rules.Lookahead = DefaultLookahead
	}

	d := &ProseDetector{
		starters:   make(map[string]bool, len(rules.Starters)),
		indicators: make(map[string]bool, len(rules.Indicators)),
		lookahead:  rules.Lookahead,
	}
	for _, w := range rules.Starters {
		d.starters[w] = true
	}
	for _, w := range rules.Indicators {
		d.indicators[strings.ToLower(w)] = true
	}
	return d
}

// IsStarter reports whether word is a configured sentence starter.
func (d *ProseDetector) IsStarter(word string) bool {
	return d.starters[word]
}

// IsProse reports whether text reads as a sentence. lineStart is true when
// text begins at the first token of its line; there any capitalized,
// non-reserved word may open a sentence, elsewhere only a starter word can.
func (d *ProseDetector) IsProse(text string, lineStart bool) bool {
	words := strings.Fields(text)
	if len(words) < 2 {
		return false
	}

	first := trimPunct(words[0])
	if first != words[0] && !strings.HasSuffix(words[0], ",") {
		// "(a)", "x'" and similar are not sentence openers
		return false
	}
	if !isWord(first) {
		return false
	}
	if _, reserved := symbols.Word(first); reserved {
		return false
	}

	if !d.starters[first] {
		r, _ := utf8.DecodeRuneInString(first)
		if !lineStart || !unicode.IsUpper(r) || utf8.RuneCountInString(first) < 2 {
			return false
		}
	}

	limit := len(words)
	if limit > d.lookahead+1 {
		limit = d.lookahead + 1
	}
	for _, w := range words[1:limit] {
		if d.indicators[strings.ToLower(trimPunct(w))] {
			return true
		}
	}
	return false
}

func trimPunct(w string) string {
	return strings.TrimFunc(w, func(r rune) bool {
		return unicode.IsPunct(r) && r != '\''
	})
}

func isWord(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
