package symbols

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestLookupAliases(t *testing.T) {
	tests := []struct {
		surface string
		want    string
	}{
		{"<=>", Iff},
		{"⇔", Iff},
		{"=>", Implies},
		{"∧", And},
		{"|->", Maplet},
		{"++->", "ffun"},
		{">++->", "finj"},
		{"++", "oplus"},
		{">+>", "pinj"},
		{"-->>", "surj"},
		{"ℕ", Naturals},
		{"ℕ₁", Naturals1},
		{"λ", Lambda},
		{"~", Inverse},
	}

	for _, tt := range tests {
		t.Run(tt.surface, func(t *testing.T) {
			e, ok := Symbol(tt.surface)
			if !ok {
				t.Fatalf("Symbol(%q) not found", tt.surface)
			}
			if e.Name != tt.want {
				t.Errorf("Symbol(%q).Name = %q, want %q", tt.surface, e.Name, tt.want)
			}
		})
	}
}

func TestWordAliases(t *testing.T) {
	for _, w := range []string{"and", "or", "forall", "dom", "P", "P1", "seq1", "o9", "N", "Delta", "where"} {
		if _, ok := Word(w); !ok {
			t.Errorf("Word(%q) not found", w)
		}
	}
	if _, ok := Word("android"); ok {
		t.Error("Word(android) found, want not found")
	}
}

func TestNamesAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, name := range Names() {
		if seen[name] {
			t.Errorf("duplicate canonical name %q", name)
		}
		seen[name] = true
	}
}

func TestSurfacesAreUnique(t *testing.T) {
	owner := make(map[string]string)
	for i := range table {
		for _, alias := range table[i].Aliases {
			if prev, ok := owner[alias]; ok {
				t.Errorf("alias %q used by both %q and %q", alias, prev, table[i].Name)
			}
			owner[alias] = table[i].Name
		}
	}
}

func TestSymbolsOfLength(t *testing.T) {
	if got := MaxSymbolLength(); got != 5 {
		t.Errorf("MaxSymbolLength() = %d, want 5", got)
	}
	for n := 1; n <= MaxSymbolLength(); n++ {
		for _, s := range SymbolsOfLength(n) {
			if utf8.RuneCountInString(s) != n {
				t.Errorf("SymbolsOfLength(%d) contains %q", n, s)
			}
		}
	}
	if SymbolsOfLength(0) != nil || SymbolsOfLength(99) != nil {
		t.Error("SymbolsOfLength out of range should be nil")
	}
}

func TestLongOperatorsHaveOperatorPrefixes(t *testing.T) {
	// Every long operator whose prefix is itself an operator is the case
	// the lexer's longest-match rule exists for; make sure the table has some.
	found := 0
	for n := 4; n <= MaxSymbolLength(); n++ {
		for _, long := range SymbolsOfLength(n) {
			for k := 2; k < n; k++ {
				if _, ok := Symbol(string([]rune(long)[:k])); ok {
					found++
				}
			}
		}
	}
	if found == 0 {
		t.Error("no long operator shares a prefix with a shorter operator")
	}
}

func TestInfix(t *testing.T) {
	tests := []struct {
		name      string
		wantPrec  Precedence
		wantAssoc Assoc
		wantOK    bool
	}{
		{And, PrecAnd, AssocLeft, true},
		{Implies, PrecImplies, AssocRight, true},
		{"fun", PrecFunctionType, AssocRight, true},
		{Less, PrecRelation, AssocNone, true},
		{Not, PrecLowest, AssocNone, false},
		{"nope", PrecLowest, AssocNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prec, assoc, ok := Infix(tt.name)
			if prec != tt.wantPrec || assoc != tt.wantAssoc || ok != tt.wantOK {
				t.Errorf("Infix(%q) = (%d, %s, %v), want (%d, %s, %v)",
					tt.name, prec, assoc, ok, tt.wantPrec, tt.wantAssoc, tt.wantOK)
			}
		})
	}
}

func TestPrecedenceLadder(t *testing.T) {
	ladder := []Precedence{
		PrecConditional, PrecIff, PrecImplies, PrecOr, PrecAnd, PrecNot,
		PrecRelation, PrecFunctionType, PrecCross, PrecMaplet, PrecRange,
		PrecUnion, PrecIntersect, PrecAdditive, PrecMultiplicative,
		PrecPrefix, PrecPostfix, PrecAtom,
	}
	for i := 1; i < len(ladder); i++ {
		if ladder[i] <= ladder[i-1] {
			t.Errorf("level %d (%d) is not tighter than level %d (%d)", i, ladder[i], i-1, ladder[i-1])
		}
	}
}

func TestNeedsParens(t *testing.T) {
	tests := []struct {
		name      string
		child     Precedence
		parent    Precedence
		assoc     Assoc
		rightSide bool
		want      bool
	}{
		{"looser child", PrecOr, PrecAnd, AssocLeft, false, true},
		{"tighter child", PrecAnd, PrecOr, AssocLeft, true, false},
		{"left assoc left side", PrecAdditive, PrecAdditive, AssocLeft, false, false},
		{"left assoc right side", PrecAdditive, PrecAdditive, AssocLeft, true, true},
		{"right assoc right side", PrecImplies, PrecImplies, AssocRight, true, false},
		{"right assoc left side", PrecImplies, PrecImplies, AssocRight, false, true},
		{"non assoc", PrecRange, PrecRange, AssocNone, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NeedsParens(tt.child, tt.parent, tt.assoc, tt.rightSide); got != tt.want {
				t.Errorf("NeedsParens() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDialectSymbols(t *testing.T) {
	e, _ := Lookup(Naturals)
	if got := e.Symbol(false); got != `\nat` {
		t.Errorf("Symbol(false) = %q, want %q", got, `\nat`)
	}
	if got := e.Symbol(true); got != `\mathbb{N}` {
		t.Errorf("Symbol(true) = %q, want %q", got, `\mathbb{N}`)
	}

	and, _ := Lookup(And)
	if and.Symbol(true) != and.Symbol(false) {
		t.Error("and should render the same in both dialects")
	}
}

func TestBlockKeywords(t *testing.T) {
	keys := BlockKeywords()
	if len(keys) == 0 || keys[0] != TruthTable {
		t.Errorf("BlockKeywords()[0] = %v, want %q first", keys, TruthTable)
	}
	for _, k := range keys {
		if !strings.HasSuffix(k, ":") {
			t.Errorf("block keyword %q does not end in a colon", k)
		}
	}
}
