package cli

import (
	"errors"
	"testing"
)

func TestFlagError(t *testing.T) {
	err := NewFlagError("dialect", "latex", "must be fuzz or zed")
	want := `invalid --dialect "latex": must be fuzz or zed`
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCompileFailure(t *testing.T) {
	tests := []struct {
		err  *CompileFailure
		want string
	}{
		{&CompileFailure{Failed: 1, Total: 1}, "compilation failed"},
		{&CompileFailure{Failed: 2, Total: 5}, "2 of 5 files failed to compile"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("boom")
	err := NewCommandError("serve", inner)

	if err.Error() != "serve: boom" {
		t.Errorf("Error() = %q, want %q", err.Error(), "serve: boom")
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is() = false, want the wrapped error")
	}
}
