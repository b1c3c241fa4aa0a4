package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		allowed []OutputFormat
		want    OutputFormat
		wantErr bool
	}{
		{"text", "text", []OutputFormat{FormatText, FormatJSON}, FormatText, false},
		{"case insensitive", "JSON", []OutputFormat{FormatText, FormatJSON}, FormatJSON, false},
		{"empty picks first", "", []OutputFormat{FormatJSON, FormatYAML}, FormatJSON, false},
		{"not allowed", "yaml", []OutputFormat{FormatText, FormatJSON}, "", true},
		{"unknown", "csv", []OutputFormat{FormatText}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input, tt.allowed...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat() = %q, want %q", got, tt.want)
			}
			var flagErr *FlagError
			if tt.wantErr && !errors.As(err, &flagErr) {
				t.Errorf("error = %T, want *FlagError", err)
			}
		})
	}
}

func TestTextFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, "already terminated\n"); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "already terminated\n" {
		t.Errorf("FormatTo() = %q, want a single newline", buf.String())
	}

	out, _ := (&TextFormatter{}).Format(42)
	if string(out) != "42\n" {
		t.Errorf("Format() = %q, want %q", out, "42\n")
	}
}

func TestFormatters(t *testing.T) {
	data := sample{Name: "schema", Count: 3}

	tests := []struct {
		format OutputFormat
		want   []string
	}{
		{FormatJSON, []string{`"name": "schema"`, `"count": 3`}},
		{FormatYAML, []string{"name: schema", "count: 3"}},
		{FormatText, []string{"{schema 3}"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewFormatter(tt.format).FormatTo(&buf, data); err != nil {
				t.Fatalf("FormatTo() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output = %q, want it to contain %q", buf.String(), want)
				}
			}
		})
	}
}

func TestJSONFormatter_Compact(t *testing.T) {
	out, err := (&JSONFormatter{}).Format(sample{Name: "a", Count: 1})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"name":"a","count":1}` {
		t.Errorf("Format() = %s", out)
	}
}
