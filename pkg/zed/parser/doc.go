// Package parser builds the abstract syntax tree from the lexer's tokens.
//
// Expressions are parsed by precedence climbing over the binding powers in
// package symbols, the same values the generator uses to place parentheses.
// Relations chain into an implicit conjunction (a < b <= c). Prefix words
// such as dom or P are operators only when an operand follows, and the same
// operand-start test decides whether "f x" is an application.
//
// Document structure is line oriented: each item ends at a line end, blocks
// such as schema boxes end with "end", and proofs, equivalence chains and
// truth tables end at a blank line. Proof nesting comes from indentation.
//
// Parsing stops at the first error, which is always a *errors.ParseError
// located at a token of the input (or a *errors.LexError from a $...$ span).
//
// # Usage
//
//	toks, err := lexer.Tokenize(src)
//	if err != nil {
//	    return err
//	}
//	doc, err := parser.NewParser().WithSource(src).WithFile("ex1.txt").Parse(toks)
package parser
