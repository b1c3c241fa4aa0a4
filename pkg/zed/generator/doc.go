// Package generator renders documents as LaTeX for one of two dialects:
// Fuzz, the strict vocabulary accepted by the fuzz typechecker, and Zed, the
// conventional zed-cm typesetting.
//
// Rendering dispatches on the node kind through one handler table per node
// family. Every dialect difference is answered by the dialect profile, so the
// handlers themselves never branch on the dialect.
//
// # Parentheses
//
// Operands are parenthesized by precedence, using the same table the parser
// climbs. Quantifiers are parenthesized by position instead: each handler
// passes its children an exprContext naming the parent and whether the child
// is in tail position. In the Fuzz dialect a quantifier nested in another
// expression is wrapped unless it is a quantifier body; in the Zed dialect
// only when something of the parent follows it.
//
// # Warnings
//
// Lines of boxed environments longer than the configured width produce
// warnings in Output.Warnings. Warnings never change the generated text.
//
// # Usage
//
//	out, err := generator.NewGenerator(generator.Zed).
//	    WithStandalone(true).
//	    Generate(doc)
//	if err != nil {
//	    return err
//	}
//	fmt.Print(out.Text)
package generator
