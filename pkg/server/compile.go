package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"zedtex/zedtex/pkg/compiler"
	"zedtex/zedtex/pkg/telemetry/logging"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
	"zedtex/zedtex/pkg/zed/generator"
)

// Error types in ErrorBody besides the compiler's lex, parse and generation.
const (
	ErrorTypeRequest  = "request"
	ErrorTypeInternal = "internal"
)

// CompileRequest is the body of POST /v1/compile. An empty Dialect uses the
// server's configured dialect.
type CompileRequest struct {
	Source  string `json:"source"`
	Dialect string `json:"dialect,omitempty"`
	Name    string `json:"name,omitempty"`
}

// CompileResponse carries either Output and Warnings, or Error.
type CompileResponse struct {
	Output   string        `json:"output"`
	Warnings []WarningBody `json:"warnings"`
	Error    *ErrorBody    `json:"error"`

	RunID  string `json:"run_id,omitempty"`
	Cached bool   `json:"cached,omitempty"`
}

// WarningBody is a line width warning.
type WarningBody struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// ErrorBody describes why a request produced no output.
type ErrorBody struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Snippet string `json:"snippet,omitempty"`
}

type compileHandler struct {
	compiler     *compiler.Compiler
	maxBodyBytes int64
	logger       *logging.Logger
}

func newCompileHandler(comp *compiler.Compiler, maxBodyBytes int64, logger *logging.Logger) *compileHandler {
	return &compileHandler{compiler: comp, maxBodyBytes: maxBodyBytes, logger: logger}
}

// ServeHTTP answers 200 with output, 400 for a malformed request, 413 for an
// oversized body and 422 when the source does not compile.
func (h *compileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeRequestError(w, http.StatusMethodNotAllowed, "method not allowed, use POST")
		return
	}

	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}

	var req CompileRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			writeRequestError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit))
			return
		}
		writeRequestError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	dialect := h.compiler.Options().Dialect
	if req.Dialect != "" {
		d, err := generator.ParseDialect(req.Dialect)
		if err != nil {
			writeRequestError(w, http.StatusBadRequest, err.Error())
			return
		}
		dialect = d
	}

	result, err := h.compiler.Compile(r.Context(), compiler.Request{
		Name:    req.Name,
		Source:  req.Source,
		Dialect: dialect,
	})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, CompileResponse{Error: DescribeError(err)})
		return
	}

	writeJSON(w, http.StatusOK, CompileResponse{
		Output:   result.Output,
		Warnings: DescribeWarnings(result.Warnings),
		RunID:    result.RunID,
		Cached:   result.Cached,
	})
}

// DescribeError converts a compile error to its JSON form. Errors that are
// not diagnostics get type "internal".
func DescribeError(err error) *ErrorBody {
	var diag zedErrors.Diagnostic
	if !stderrors.As(err, &diag) {
		return &ErrorBody{Type: ErrorTypeInternal, Message: err.Error()}
	}
	loc := diag.Position()
	return &ErrorBody{
		Type:    string(diag.Type()),
		Message: firstLine(err.Error()),
		Line:    loc.Line,
		Column:  loc.Column,
		Snippet: diag.Context(),
	}
}

// firstLine drops the location and snippet lines a diagnostic renders;
// they have their own fields.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// DescribeWarnings converts generator warnings to their JSON form; never nil.
func DescribeWarnings(warnings []generator.Warning) []WarningBody {
	out := make([]WarningBody, 0, len(warnings))
	for _, w := range warnings {
		out = append(out, WarningBody{
			Line:    w.Location.Line,
			Column:  w.Location.Column,
			Message: w.Message,
		})
	}
	return out
}

func writeRequestError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, CompileResponse{Error: &ErrorBody{Type: ErrorTypeRequest, Message: message}})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
