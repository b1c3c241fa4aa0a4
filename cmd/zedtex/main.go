// zedtex translates whiteboard-style mathematical notation into LaTeX for
// the fuzz and zed-cm Z notation packages.
//
// Usage:
//
//	# Compile a file to stdout
//	zedtex compile homework.txt
//
//	# Compile several files, writing hw1.tex and hw2.tex alongside them
//	zedtex compile --dialect zed hw1.txt hw2.txt
//
//	# Recompile on save
//	zedtex watch notes/
//
//	# Serve the compiler over HTTP
//	zedtex serve --config zedtex.yaml
//
//	# Inspect the lexer and parser
//	zedtex tokens homework.txt
//	zedtex ast homework.txt --format yaml
package main

func main() {
	Execute()
}
