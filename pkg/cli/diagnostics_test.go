package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"zedtex/zedtex/pkg/zed"
	"zedtex/zedtex/pkg/zed/ast"
	"zedtex/zedtex/pkg/zed/generator"
)

func compileErr(t *testing.T, file, src string) error {
	t.Helper()
	opts := zed.DefaultOptions()
	opts.File = file
	_, err := zed.CompileWithOptions(src, opts)
	if err == nil {
		t.Fatalf("CompileWithOptions(%q) succeeded, want an error", src)
	}
	return err
}

func TestReporter_Error(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantLines []string
	}{
		{
			name: "lex error",
			src:  "p and q\nx $ y",
			wantLines: []string{
				"error[lex]: unexpected character",
				"  --> hw.txt:2:3",
				"  2 | x $ y",
				"    |   ^",
			},
		},
		{
			name: "parse error",
			src:  "p and",
			wantLines: []string{
				"error[parse]: expected",
				"  --> hw.txt:1:",
				"  1 | p and",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewReporter(&buf, false).Error(compileErr(t, "hw.txt", tt.src))

			got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
			if len(got) < len(tt.wantLines) {
				t.Fatalf("output has %d lines, want at least %d:\n%s", len(got), len(tt.wantLines), buf.String())
			}
			for i, want := range tt.wantLines {
				if !strings.HasPrefix(got[i], want) {
					t.Errorf("line %d = %q, want prefix %q", i, got[i], want)
				}
			}
		})
	}
}

func TestReporter_WrappedDiagnostic(t *testing.T) {
	var buf bytes.Buffer
	err := NewCommandError("compile", compileErr(t, "a.zed", "x $ y"))
	NewReporter(&buf, false).Error(err)

	if !strings.HasPrefix(buf.String(), "error[lex]:") {
		t.Errorf("output = %q, want the wrapped diagnostic reported", buf.String())
	}
}

func TestReporter_PlainError(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, false).Error(errors.New("open hw.txt: no such file or directory"))

	if want := "error: open hw.txt: no such file or directory\n"; buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestReporter_Warning(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, false).Warning(generator.Warning{
		Location: ast.Location{File: "hw.txt", Line: 4, Column: 1},
		Message:  "line exceeds 80 characters",
	})

	want := "warning: line exceeds 80 characters\n  --> hw.txt:4:1\n"
	if buf.String() != want {
		t.Errorf("output = %q, want %q", buf.String(), want)
	}
}

func TestReporter_Success(t *testing.T) {
	var buf bytes.Buffer
	NewReporter(&buf, false).Success("wrote %s", "hw.tex")

	if buf.String() != "wrote hw.tex\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestStyles_PlainLeavesTextAlone(t *testing.T) {
	s := NewStyles(false)
	if got := s.render(s.Error, "\terror:"); got != "\terror:" {
		t.Errorf("render() = %q, want the input unchanged", got)
	}
	if got := NewStyles(true).render(s.Error, ""); got != "" {
		t.Errorf("render(\"\") = %q, want empty", got)
	}
}
