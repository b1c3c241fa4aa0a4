package ast

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestLocationString(t *testing.T) {
	tests := []struct {
		loc  Location
		want string
	}{
		{Location{}, "<unknown>"},
		{Location{Line: 3, Column: 7}, "3:7"},
		{Location{File: "ex1.txt", Line: 3, Column: 7}, "ex1.txt:3:7"},
	}
	for _, tt := range tests {
		if got := tt.loc.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestKindNames(t *testing.T) {
	for _, k := range append(ExprKinds(), ItemKinds()...) {
		if k.String() == "unknown" {
			t.Errorf("kind %d has no name", int(k))
		}
	}
	if got := NodeKind(-1).String(); got != "unknown" {
		t.Errorf("NodeKind(-1).String() = %q, want unknown", got)
	}
	if len(ExprKinds()) != 14 {
		t.Errorf("len(ExprKinds()) = %d, want 14", len(ExprKinds()))
	}
}

func TestFlatten(t *testing.T) {
	n := Ident("N", Location{})
	tree := Ident("Tree", Location{})
	product := &Binary{
		Op:    "cross",
		Left:  &Binary{Op: "cross", Left: n, Right: tree},
		Right: tree,
	}

	parts := Flatten(product, "cross")
	if len(parts) != 3 {
		t.Fatalf("len(Flatten()) = %d, want 3", len(parts))
	}
	if !IsIdent(parts[0], "N") || !IsIdent(parts[2], "Tree") {
		t.Errorf("Flatten() = %v", parts)
	}

	if got := Flatten(n, "cross"); len(got) != 1 {
		t.Errorf("Flatten(leaf) = %d operands, want 1", len(got))
	}
}

func sampleDocument() *Document {
	x := Ident("x", Location{Line: 1, Column: 8})
	body := &Binary{Op: "gt", Surface: ">", Left: x, Right: &Literal{Type: LiteralNumber, Value: "0"}}
	q := &Quantifier{
		Quant:    "forall",
		Bindings: []Binding{{Names: []string{"x"}, Domain: Ident("N", Location{})}},
		Body:     body,
	}
	return &Document{Items: []Item{
		&Section{Title: "Intro", Items: []Item{
			&ExprItem{Expr: q},
			&ProofTree{Root: &ProofNode{
				Expr:     Ident("q", Location{}),
				Children: []*ProofNode{{Expr: Ident("p", Location{})}},
			}},
		}},
	}}
}

func TestWalkCountsNodes(t *testing.T) {
	counter := NewCountingVisitor()
	if err := Walk(sampleDocument(), counter); err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	want := map[NodeKind]int{
		KindSection:    1,
		KindExprItem:   1,
		KindProofTree:  1,
		KindQuantifier: 1,
		KindBinary:     1,
		KindLiteral:    5, // N, x, 0, q, p
	}
	for kind, n := range want {
		if counter.Counts[kind] != n {
			t.Errorf("Counts[%s] = %d, want %d", kind, counter.Counts[kind], n)
		}
	}
	if counter.Total() != 10 {
		t.Errorf("Total() = %d, want 10", counter.Total())
	}
}

type stopVisitor struct{ seen int }

func (v *stopVisitor) VisitItem(Item) error { return nil }
func (v *stopVisitor) VisitExpr(Expr) error {
	v.seen++
	return errStop
}

type stopErr struct{}

func (stopErr) Error() string { return "stop" }

var errStop = stopErr{}

func TestWalkStopsOnError(t *testing.T) {
	v := &stopVisitor{}
	if err := Walk(sampleDocument(), v); err != errStop {
		t.Fatalf("Walk() error = %v, want stop", err)
	}
	if v.seen != 1 {
		t.Errorf("visited %d expressions after error, want 1", v.seen)
	}
}

func TestProofNodeDepth(t *testing.T) {
	leaf := &ProofNode{}
	mid := &ProofNode{Children: []*ProofNode{leaf}}
	root := &ProofNode{Children: []*ProofNode{mid, {}}}
	if got := root.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
}

func TestDump(t *testing.T) {
	data, err := json.Marshal(Dump(sampleDocument()))
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	got := string(data)
	for _, want := range []string{`"kind":"section"`, `"kind":"quantifier"`, `"quant":"forall"`, `"title":"Intro"`} {
		if !strings.Contains(got, want) {
			t.Errorf("Dump() missing %s in %s", want, got)
		}
	}
	if strings.Contains(got, "location") {
		t.Errorf("Dump() should omit locations: %s", got)
	}
}
