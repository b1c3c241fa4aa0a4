package generator

import (
	"strings"

	"zedtex/zedtex/pkg/zed/ast"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
)

// genTruthTable renders a truth table as a centered tabular with one
// column per header expression.
func genTruthTable(r *run, item ast.Item) (string, error) {
	tt := item.(*ast.TruthTable)
	if len(tt.Header) == 0 {
		return "", zedErrors.NewGenerationError(tt.Kind().String(), tt.Location, "truth table without columns")
	}

	header := make([]string, len(tt.Header))
	for i, h := range tt.Header {
		s, err := r.expr(h, topLevel())
		if err != nil {
			return "", err
		}
		header[i] = "$" + s + "$"
	}

	var sb strings.Builder
	sb.WriteString(`\begin{tabular}{|` + strings.Repeat("c|", len(header)) + "}\n")
	sb.WriteString("\\hline\n")
	sb.WriteString(strings.Join(header, " & ") + " \\\\\n")
	sb.WriteString("\\hline\n")
	for i, row := range tt.Rows {
		if len(row) != len(header) {
			return "", zedErrors.NewGenerationError(tt.Kind().String(), tt.Location,
				"row %d has %d cells, want %d", i+1, len(row), len(header))
		}
		cells := make([]string, len(row))
		for j, c := range row {
			cells[j] = escapeText(c)
		}
		sb.WriteString(strings.Join(cells, " & ") + " \\\\\n")
	}
	sb.WriteString("\\hline\n")
	sb.WriteString(`\end{tabular}`)

	return environment("center", "", sb.String()), nil
}
