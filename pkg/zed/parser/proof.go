package parser

import (
	"strconv"
	"strings"

	"zedtex/zedtex/pkg/zed/ast"
	"zedtex/zedtex/pkg/zed/symbols"
	"zedtex/zedtex/pkg/zed/token"
)

// parseProof parses a PROOF: block. Lines run until a blank line or the end
// of input; the column of a line's first token gives its depth.
//
//	PROOF:
//	p => q [=> intro from 1]
//	  :: q [and elim]
//	    [1] p and q
//	  :: r [lemma]
//	  q and r [and intro]
func (s *state) parseProof() (ast.Item, error) {
	kw := s.next()
	if err := s.expectLineEnd(); err != nil {
		return nil, err
	}

	b := &proofBuilder{s: s}
	for !s.atLineEnd() {
		first := s.peek()
		node, err := s.parseProofLine()
		if err != nil {
			return nil, err
		}
		if err := b.add(node, first); err != nil {
			return nil, err
		}
	}
	root, err := b.finish(s.peek())
	if err != nil {
		return nil, err
	}
	return &ast.ProofTree{Root: root, Location: s.loc(kw)}, nil
}

// parseProofLine parses "[n] :: case expr : [justification from n]".
func (s *state) parseProofLine() (*ast.ProofNode, error) {
	first := s.peek()
	n := &ast.ProofNode{Location: s.loc(first)}

	if first.Kind == token.Label {
		s.next()
		label, err := strconv.Atoi(first.Value)
		if err != nil {
			return nil, s.errorAt(first, "assumption label", "")
		}
		n.IsAssumption = true
		n.Label = label
	}
	if s.atDelim(token.Sibling) {
		s.next()
		n.IsSibling = true
	}
	if s.atKeyword(symbols.Case) {
		s.next()
		n.IsCase = true
	}

	e, err := s.parseExpr()
	if err != nil {
		return nil, err
	}
	n.Expr = e

	if n.IsCase && s.atDelim(token.Colon) {
		s.next()
	}
	if t := s.peek(); t.Kind == token.Justification {
		s.next()
		n.Justification, n.Discharge = splitDischarge(t.Value)
	}
	return n, s.expectLineEnd()
}

// splitDischarge separates a trailing "from 1, 2" from a justification.
func splitDischarge(just string) (string, []int) {
	i := strings.LastIndex(just, "from ")
	if i < 0 || (i > 0 && just[i-1] != ' ') {
		return just, nil
	}
	var labels []int
	for _, f := range strings.FieldsFunc(just[i+len("from "):], func(r rune) bool { return r == ',' || r == ' ' }) {
		n, err := strconv.Atoi(f)
		if err != nil {
			return just, nil
		}
		labels = append(labels, n)
	}
	if len(labels) == 0 {
		return just, nil
	}
	return strings.TrimSpace(just[:i]), labels
}

type proofFrame struct {
	indent int
	node   *ast.ProofNode
}

// siblingGroup holds "::" premises waiting for the step that adopts them.
type siblingGroup struct {
	indent int
	nodes  []*ast.ProofNode
	first  token.Token
}

// proofBuilder assembles proof lines into a tree with an explicit stack of
// open steps. A deeper line becomes a child of the nearest shallower step.
// Sibling lines are held until the next non-sibling line at the same depth,
// which takes them as its first premises.
type proofBuilder struct {
	s       *state
	stack   []proofFrame
	pending []siblingGroup
	root    *ast.ProofNode
}

func (b *proofBuilder) add(n *ast.ProofNode, first token.Token) error {
	indent := first.Column
	dedented, matched := false, false
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].indent >= indent {
		top := b.stack[len(b.stack)-1].indent
		dedented = dedented || top > indent
		matched = matched || top == indent
		b.stack = b.stack[:len(b.stack)-1]
	}
	// A dedent must land on the depth of an enclosing step.
	if dedented && !matched {
		return b.s.errorAt(first, "indentation matching an enclosing step", "inconsistent indentation")
	}
	for _, g := range b.pending {
		if g.indent > indent {
			return b.s.errorAt(first, "a step after the sibling premises on line "+strconv.Itoa(g.first.Line), "")
		}
	}

	if n.IsSibling {
		if k := len(b.pending); k > 0 && b.pending[k-1].indent == indent {
			b.pending[k-1].nodes = append(b.pending[k-1].nodes, n)
		} else {
			b.pending = append(b.pending, siblingGroup{indent: indent, nodes: []*ast.ProofNode{n}, first: first})
		}
		b.stack = append(b.stack, proofFrame{indent: indent, node: n})
		return nil
	}

	if k := len(b.pending); k > 0 && b.pending[k-1].indent == indent {
		n.Children = append(b.pending[k-1].nodes, n.Children...)
		b.pending = b.pending[:k-1]
	}

	if len(b.stack) == 0 {
		if b.root != nil {
			return b.s.errorAt(first, "a single conclusion", "a second step at the outermost depth")
		}
		b.root = n
	} else {
		parent := b.stack[len(b.stack)-1].node
		parent.Children = append(parent.Children, n)
	}
	b.stack = append(b.stack, proofFrame{indent: indent, node: n})
	return nil
}

// finish returns the root. end is the token that closed the block.
func (b *proofBuilder) finish(end token.Token) (*ast.ProofNode, error) {
	if len(b.pending) > 0 {
		g := b.pending[len(b.pending)-1]
		return nil, b.s.errorAt(end, "a step after the sibling premises on line "+strconv.Itoa(g.first.Line), "")
	}
	if b.root == nil {
		return nil, b.s.errorAt(end, "proof step", "")
	}
	return b.root, nil
}

// parseEquiv parses an EQUIV: block. Each line is an optional leading
// connective, an expression and an optional justification.
func (s *state) parseEquiv() (ast.Item, error) {
	kw := s.next()
	if err := s.expectLineEnd(); err != nil {
		return nil, err
	}

	chain := &ast.EquivChain{Location: s.loc(kw)}
	for !s.atLineEnd() {
		t := s.peek()
		step := ast.EquivStep{Location: s.loc(t)}
		if t.IsOp(symbols.Iff) || t.IsOp(symbols.Implies) {
			s.next()
			step.Connective = t.Value
		} else {
			step.Connective = symbols.Iff
		}
		if len(chain.Steps) == 0 {
			step.Connective = ""
		}

		e, err := s.parseExpr()
		if err != nil {
			return nil, err
		}
		step.Expr = e
		if j := s.peek(); j.Kind == token.Justification {
			s.next()
			step.Justification = j.Value
		}
		if err := s.expectLineEnd(); err != nil {
			return nil, err
		}
		chain.Steps = append(chain.Steps, step)
	}
	if len(chain.Steps) == 0 {
		return nil, s.errorExpected("equivalence step")
	}
	return chain, nil
}
