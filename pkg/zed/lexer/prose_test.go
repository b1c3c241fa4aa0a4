package lexer

import (
	"testing"

	"zedtex/zedtex/pkg/zed/token"
)

func TestIsProse(t *testing.T) {
	d := NewProseDetector(DefaultProseRules())

	tests := []struct {
		text      string
		lineStart bool
		want      bool
	}{
		{"The value is 5.", true, true},
		{"We show that f is total.", true, true},
		{"Clearly, this follows from (1).", true, true},
		{"Clearly, this follows from (1).", false, false},
		{"forall x : N | x > 0", true, false},
		{"x = y", true, false},
		{"A union B", true, false},
		{"Hence", true, false},
		{"(a) The value is 5.", true, false},
		{"dom R is finite", true, false},
		{"The a b c d e f g is", true, false},
	}

	for _, tt := range tests {
		if got := d.IsProse(tt.text, tt.lineStart); got != tt.want {
			t.Errorf("IsProse(%q, %v) = %v, want %v", tt.text, tt.lineStart, got, tt.want)
		}
	}
}

func TestCustomProseRules(t *testing.T) {
	d := NewProseDetector(ProseRules{
		Starters:   []string{"Also"},
		Indicators: []string{"obviously"},
		Lookahead:  2,
	})

	if !d.IsProse("Also obviously true", false) {
		t.Error("custom starter and indicator not recognized")
	}
	if d.IsProse("The value is 5.", false) {
		t.Error("default starter used despite custom list")
	}
	if !d.IsStarter("Also") || d.IsStarter("The") {
		t.Error("IsStarter() does not reflect custom rules")
	}
}

func TestWithProseChangesLexing(t *testing.T) {
	toks, err := New().WithProse(ProseRules{Indicators: []string{"holds"}}).Tokenize("The invariant is kept")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	// "is" is no longer an indicator, so the line lexes as identifiers
	if toks[0].Kind != token.Identifier {
		t.Errorf("first token = %v, want an identifier", toks[0])
	}
}
