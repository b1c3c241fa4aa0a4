package cli

import "fmt"

// FlagError reports an invalid flag value.
type FlagError struct {
	Flag    string
	Value   string
	Message string
}

func (e *FlagError) Error() string {
	return fmt.Sprintf("invalid --%s %q: %s", e.Flag, e.Value, e.Message)
}

// NewFlagError creates a FlagError.
func NewFlagError(flag, value, message string) *FlagError {
	return &FlagError{Flag: flag, Value: value, Message: message}
}

// CompileFailure is returned when some inputs did not compile. Each failure
// has already been printed by a Reporter, so callers only set the exit code.
type CompileFailure struct {
	Failed int
	Total  int
}

func (e *CompileFailure) Error() string {
	if e.Total == 1 {
		return "compilation failed"
	}
	return fmt.Sprintf("%d of %d files failed to compile", e.Failed, e.Total)
}

// CommandError wraps an error from a command.
type CommandError struct {
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a CommandError.
func NewCommandError(command string, err error) *CommandError {
	return &CommandError{Command: command, Err: err}
}
