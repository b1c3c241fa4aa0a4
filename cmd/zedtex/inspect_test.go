package main

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"zedtex/zedtex/pkg/cli"
	zedErrors "zedtex/zedtex/pkg/zed/errors"
)

func TestTokensCommand(t *testing.T) {
	useConfig(t, nil)

	t.Run("text", func(t *testing.T) {
		tokensFlags.format = "text"
		cmd, stdout, _ := newTestCommand()
		if err := runTokens(cmd, []string{"testdata/valid.txt"}); err != nil {
			t.Fatalf("runTokens() error = %v", err)
		}
		lines := strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n")
		if !strings.HasPrefix(lines[0], "1:1") || !strings.Contains(lines[0], "identifier") {
			t.Errorf("first line = %q, want identifier p at 1:1", lines[0])
		}
		if !strings.Contains(lines[len(lines)-1], "end of input") {
			t.Errorf("last line = %q, want end of input", lines[len(lines)-1])
		}
	})

	t.Run("json", func(t *testing.T) {
		tokensFlags.format = "json"
		cmd, stdout, _ := newTestCommand()
		if err := runTokens(cmd, []string{"testdata/valid.txt"}); err != nil {
			t.Fatalf("runTokens() error = %v", err)
		}
		var records []tokenRecord
		if err := json.Unmarshal(stdout.Bytes(), &records); err != nil {
			t.Fatalf("stdout is not JSON: %v", err)
		}
		if len(records) < 5 {
			t.Fatalf("got %d tokens, want at least 5", len(records))
		}
		if records[1].Kind != "operator" || records[1].Literal != "and" {
			t.Errorf("second token = %+v, want the and operator", records[1])
		}
	})

	t.Run("lex error", func(t *testing.T) {
		tokensFlags.format = "text"
		cmd, _, _ := newTestCommand()
		cmd.SetIn(strings.NewReader("x $ y"))
		err := runTokens(cmd, []string{"-"})
		var lexErr *zedErrors.LexError
		if !errors.As(err, &lexErr) {
			t.Errorf("error = %v, want *errors.LexError", err)
		}
	})
}

func TestASTCommand(t *testing.T) {
	useConfig(t, nil)

	tests := []struct {
		format string
		want   []string
	}{
		{"json", []string{`"kind": "given type"`, `"NAME"`}},
		{"yaml", []string{"kind: given type", "- NAME"}},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			astFlags.format = tt.format
			cmd, stdout, _ := newTestCommand()
			if err := runAST(cmd, []string{"testdata/schema.zed"}); err != nil {
				t.Fatalf("runAST() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("output missing %q:\n%s", want, stdout.String())
				}
			}
		})
	}

	t.Run("text rejected", func(t *testing.T) {
		astFlags.format = "text"
		cmd, _, _ := newTestCommand()
		var flagErr *cli.FlagError
		if err := runAST(cmd, []string{"testdata/schema.zed"}); !errors.As(err, &flagErr) {
			t.Errorf("error = %v, want *cli.FlagError", err)
		}
	})
}
