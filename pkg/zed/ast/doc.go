// Package ast defines the abstract syntax tree produced by the parser and
// consumed by the generator.
//
// Nodes are plain data. They are built once by the parser and never mutated
// afterwards, so a document may be shared between goroutines and generated
// in several dialects. Nodes hold no parent pointers; code that needs the
// syntactic parent of a node passes it down explicitly while recursing.
//
// # Core Types
//
// Expr: the closed family of expression nodes (Literal, Unary, Binary,
// Quantifier, Comprehension, Collection, Tuple, Projection, Range,
// Conditional, Application, Instantiation, RelImage, Script)
//
// Item: the closed family of document nodes (Section, Solution, Part,
// TruthTable, EquivChain, ProofTree, GivenType, FreeType, Abbreviation, Box,
// ZedBlock, TextBlock, ExprItem, PageBreak)
//
// NodeKind: the tag of every node, used by the generator's dispatch table
//
// Location: source position (file, line, column)
//
// # Traversal
//
//	counter := ast.NewCountingVisitor()
//	if err := ast.Walk(doc, counter); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(counter.Counts[ast.KindQuantifier], "quantifiers")
package ast
