package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"sync"

	zedErrors "zedtex/zedtex/pkg/zed/errors"
	"zedtex/zedtex/pkg/zed/generator"
)

// Reporter prints compile diagnostics:
//
//	error[parse]: expected expression, found end of input
//	  --> hw1.txt:3:7
//	  3 | x : N +
//	    |       ^
//
// It is safe for concurrent use.
type Reporter struct {
	mu     sync.Mutex
	w      io.Writer
	styles *Styles
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer, color bool) *Reporter {
	return &Reporter{w: w, styles: NewStyles(color)}
}

// Error prints err. Lex, parse and generation errors get their location and
// source snippet; anything else is a single line.
func (r *Reporter) Error(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var diag zedErrors.Diagnostic
	if !stderrors.As(err, &diag) {
		fmt.Fprintf(r.w, "%s %s\n", r.styles.render(r.styles.Error, "error:"), err)
		return
	}

	header := fmt.Sprintf("error[%s]:", diag.Type())
	fmt.Fprintf(r.w, "%s %s\n", r.styles.render(r.styles.Error, header), diagnosticMessage(diag))

	if loc := diag.Position(); loc.IsValid() {
		fmt.Fprintf(r.w, "  %s %s\n",
			r.styles.render(r.styles.Gutter, "-->"),
			r.styles.render(r.styles.Location, loc.String()))
	}
	r.snippet(diag.Context())

	var perr *zedErrors.ParseError
	if stderrors.As(err, &perr) && perr.Suggestion != "" {
		fmt.Fprintf(r.w, "  %s suggestion: %s\n", r.styles.render(r.styles.Gutter, "="), perr.Suggestion)
	}
}

// Warning prints a generator warning.
func (r *Reporter) Warning(w generator.Warning) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.w, "%s %s\n", r.styles.render(r.styles.Warning, "warning:"), w.Message)
	if w.Location.IsValid() {
		fmt.Fprintf(r.w, "  %s %s\n",
			r.styles.render(r.styles.Gutter, "-->"),
			r.styles.render(r.styles.Location, w.Location.String()))
	}
}

// Success prints a one-line status message.
func (r *Reporter) Success(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintln(r.w, r.styles.render(r.styles.Success, fmt.Sprintf(format, args...)))
}

// snippet prints the source line and caret line, styling the gutter and the
// caret separately.
func (r *Reporter) snippet(snippet string) {
	if snippet == "" {
		return
	}
	lines := strings.Split(strings.TrimRight(snippet, "\n"), "\n")
	for i, line := range lines {
		gutter, text, ok := strings.Cut(line, "|")
		if !ok {
			fmt.Fprintln(r.w, line)
			continue
		}
		if i == len(lines)-1 && strings.HasSuffix(text, "^") {
			pad := strings.TrimSuffix(text, "^")
			text = pad + r.styles.render(r.styles.Caret, "^")
		}
		fmt.Fprintf(r.w, "%s%s\n", r.styles.render(r.styles.Gutter, gutter+"|"), text)
	}
}

// diagnosticMessage is the first line of a diagnostic's message without the
// "[type] " prefix the error string carries.
func diagnosticMessage(diag zedErrors.Diagnostic) string {
	msg := diag.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimPrefix(msg, fmt.Sprintf("[%s] ", diag.Type()))
}
