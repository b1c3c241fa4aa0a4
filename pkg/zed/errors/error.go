package errors

import (
	"fmt"
	"strings"

	"zedtex/zedtex/pkg/zed/ast"
)

// ErrorType categorizes the pipeline stage an error came from.
type ErrorType string

const (
	ErrorTypeLex        ErrorType = "lex"        // Malformed token
	ErrorTypeParse      ErrorType = "parse"      // Grammar violation
	ErrorTypeGeneration ErrorType = "generation" // Node with no rendering in the chosen dialect
)

// Diagnostic is implemented by every error the pipeline returns.
// Callers print Position and Context without re-scanning the source.
type Diagnostic interface {
	error
	Type() ErrorType
	Position() ast.Location
	Context() string
}

// LexError reports a character sequence the lexer cannot turn into a token.
type LexError struct {
	Location ast.Location
	Message  string
	Snippet  string // source line with a caret under the column
}

// NewLexError creates a LexError with a snippet taken from source.
func NewLexError(source string, loc ast.Location, format string, args ...any) *LexError {
	return &LexError{
		Location: loc,
		Message:  fmt.Sprintf(format, args...),
		Snippet:  Snippet(source, loc),
	}
}

func (e *LexError) Error() string {
	return render(ErrorTypeLex, e.Message, e.Location, e.Snippet, "")
}

func (e *LexError) Type() ErrorType        { return ErrorTypeLex }
func (e *LexError) Position() ast.Location { return e.Location }
func (e *LexError) Context() string        { return e.Snippet }

// ParseError reports the first token that does not fit the grammar.
type ParseError struct {
	Location   ast.Location
	Expected   string // what the parser was looking for
	Found      string // the token actually present
	Snippet    string
	Suggestion string // optional "Did you mean ...?" hint
}

// NewParseError creates a ParseError with a snippet taken from source.
func NewParseError(source string, loc ast.Location, expected, found string) *ParseError {
	return &ParseError{
		Location: loc,
		Expected: expected,
		Found:    found,
		Snippet:  Snippet(source, loc),
	}
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
	return render(ErrorTypeParse, msg, e.Location, e.Snippet, e.Suggestion)
}

func (e *ParseError) Type() ErrorType        { return ErrorTypeParse }
func (e *ParseError) Position() ast.Location { return e.Location }
func (e *ParseError) Context() string        { return e.Snippet }

// GenerationError reports a node the generator has no rendering for.
type GenerationError struct {
	Message  string
	Node     string // node kind, e.g. "quantifier"
	Location ast.Location
}

// NewGenerationError creates a GenerationError for the given node kind.
func NewGenerationError(node string, loc ast.Location, format string, args ...any) *GenerationError {
	return &GenerationError{
		Message:  fmt.Sprintf(format, args...),
		Node:     node,
		Location: loc,
	}
}

func (e *GenerationError) Error() string {
	msg := e.Message
	if e.Node != "" {
		msg = fmt.Sprintf("%s (node: %s)", msg, e.Node)
	}
	return render(ErrorTypeGeneration, msg, e.Location, "", "")
}

func (e *GenerationError) Type() ErrorType        { return ErrorTypeGeneration }
func (e *GenerationError) Position() ast.Location { return e.Location }
func (e *GenerationError) Context() string        { return "" }

// render formats an error message with location and context.
func render(errType ErrorType, message string, loc ast.Location, snippet, suggestion string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", errType, message))

	if loc.IsValid() {
		sb.WriteString(fmt.Sprintf("\n  --> %s", loc.String()))
	}

	if snippet != "" {
		sb.WriteString("\n")
		sb.WriteString(strings.TrimRight(snippet, "\n"))
	}

	if suggestion != "" {
		sb.WriteString(fmt.Sprintf("\n  = suggestion: %s", suggestion))
	}

	return sb.String()
}

// ErrorList collects the errors of a multi-file run.
type ErrorList struct {
	Errors []error
}

// NewErrorList creates a new empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{
		Errors: make([]error, 0),
	}
}

// Add appends an error to the list. Nil errors are ignored.
func (el *ErrorList) Add(err error) {
	if err != nil {
		el.Errors = append(el.Errors, err)
	}
}

// HasErrors returns true if the error list contains any errors.
func (el *ErrorList) HasErrors() bool {
	return len(el.Errors) > 0
}

// Count returns the number of errors in the list.
func (el *ErrorList) Count() int {
	return len(el.Errors)
}

// Error implements the error interface.
func (el *ErrorList) Error() string {
	if !el.HasErrors() {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d error(s):\n\n", el.Count()))

	for i, err := range el.Errors {
		sb.WriteString(fmt.Sprintf("Error %d:\n", i+1))
		sb.WriteString(err.Error())
		sb.WriteString("\n")
	}

	return sb.String()
}

// ToError returns nil if the error list is empty, otherwise the list itself.
func (el *ErrorList) ToError() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// ByType returns the diagnostics of the given type.
func (el *ErrorList) ByType(errType ErrorType) []Diagnostic {
	var result []Diagnostic
	for _, err := range el.Errors {
		if d, ok := err.(Diagnostic); ok && d.Type() == errType {
			result = append(result, d)
		}
	}
	return result
}
