// Package errors defines the error values returned by the translation pipeline.
//
// There are three kinds, one per stage:
//
//   - LexError: a character sequence that cannot be tokenized, such as an
//     unknown character or an unterminated bracket.
//   - ParseError: the first token that does not fit the grammar, with what the
//     parser expected and what it found.
//   - GenerationError: a node the generator has no rendering for.
//
// Every error carries its source location and, for lex and parse errors, a
// one-line snippet with a caret, so callers can report it without re-reading
// the input:
//
//	doc, err := zed.Parse(src)
//	var perr *errors.ParseError
//	if stderrors.As(err, &perr) {
//	    fmt.Println(perr.Location, perr.Snippet)
//	}
//
// The pipeline is fail-fast: the first error aborts the run and no partial
// output is produced.
package errors
