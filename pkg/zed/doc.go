// Package zed translates whiteboard-style mathematical notation into LaTeX
// for the fuzz and zed-cm Z notation packages.
//
// The pipeline has three stages, each in its own package: lexer produces
// tokens, parser builds an ast.Document, and generator renders it. This
// package chains them for the common cases. The stages do no I/O and keep no
// state between calls, so they are safe for concurrent use.
//
// # Usage
//
//	out, err := zed.Compile("forall x : N | x >= 0", generator.Zed)
//	if err != nil {
//	    var perr *errors.ParseError
//	    if stderrors.As(err, &perr) {
//	        fmt.Println(perr.Location)
//	    }
//	    return err
//	}
//	fmt.Print(out.Text)
//
// Use CompileWithOptions to set the file name shown in errors, the prose
// word lists, the line width limit or standalone output.
package zed
