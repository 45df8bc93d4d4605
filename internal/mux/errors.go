package mux

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoNeighbor reports that no pane exists in the requested direction.
// It is an absence signal: callers usually react by splitting.
var ErrNoNeighbor = errors.New("no neighboring pane")

// ErrUnexpectedOutput reports a multiplexer response that could not be parsed.
var ErrUnexpectedOutput = errors.New("unexpected multiplexer output")

// CommandError is returned when a multiplexer command exits non-zero or
// produces output that cannot be interpreted.
type CommandError struct {
	Bin      string
	Args     []string
	ExitCode int    // -1 when the process did not exit normally
	Stderr   string // trimmed stderr, if any
	Err      error
}

func (e *CommandError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s", e.Bin, strings.Join(e.Args, " "))
	if e.ExitCode > 0 {
		fmt.Fprintf(&b, ": exit status %d", e.ExitCode)
	} else if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	if e.Stderr != "" {
		fmt.Fprintf(&b, ": %s", e.Stderr)
	}
	return b.String()
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// EnvError is returned when the variable naming the invoking pane is
// missing or does not hold a valid pane id.
type EnvError struct {
	Var   string
	Value string
	Err   error
}

func (e *EnvError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("environment variable %s is not set (run from inside a multiplexer pane)", e.Var)
	}
	return fmt.Sprintf("environment variable %s=%q is not a valid pane id: %v", e.Var, e.Value, e.Err)
}

func (e *EnvError) Unwrap() error {
	return e.Err
}

func unexpectedOutput(bin string, args []string, out string) error {
	return &CommandError{
		Bin:      bin,
		Args:     args,
		ExitCode: 0,
		Stderr:   fmt.Sprintf("unparseable output %q", strings.TrimSpace(out)),
		Err:      ErrUnexpectedOutput,
	}
}
