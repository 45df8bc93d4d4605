package mux

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// scriptedRunner records invocations and answers from a queue of replies.
type scriptedRunner struct {
	calls   [][]string
	replies []reply
}

type reply struct {
	out string
	err error
}

func (r *scriptedRunner) Run(ctx context.Context, bin string, args ...string) (string, error) {
	r.calls = append(r.calls, append([]string{bin}, args...))
	if len(r.replies) == 0 {
		return "", nil
	}
	next := r.replies[0]
	r.replies = r.replies[1:]
	return next.out, next.err
}

func (r *scriptedRunner) call(t *testing.T, i int) string {
	t.Helper()
	if i >= len(r.calls) {
		t.Fatalf("expected at least %d calls, got %d", i+1, len(r.calls))
	}
	return strings.Join(r.calls[i], " ")
}

func TestCommander_WrapsPlainErrors(t *testing.T) {
	boom := errors.New("binary not found")
	c := newCommander("wezterm", "wezterm", Options{
		Runner: RunnerFunc(func(ctx context.Context, bin string, args ...string) (string, error) {
			return "", boom
		}),
	})

	_, err := c.run(context.Background(), "list", "cli", "list")
	var cerr *CommandError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CommandError, got %T: %v", err, err)
	}
	if cerr.Bin != "wezterm" || strings.Join(cerr.Args, " ") != "cli list" {
		t.Errorf("CommandError: got bin=%q args=%q", cerr.Bin, cerr.Args)
	}
	if !errors.Is(err, boom) {
		t.Error("expected the runner error to stay in the chain")
	}
}

func TestCommander_KeepsCommandErrors(t *testing.T) {
	orig := &CommandError{Bin: "tmux", Args: []string{"select-pane"}, ExitCode: 1, Stderr: "can't find pane: %9"}
	c := newCommander("tmux", "tmux", Options{
		Bin: "/opt/tmux",
		Runner: RunnerFunc(func(ctx context.Context, bin string, args ...string) (string, error) {
			if bin != "/opt/tmux" {
				t.Errorf("bin: got %q, want %q", bin, "/opt/tmux")
			}
			return "", orig
		}),
	})

	_, err := c.run(context.Background(), "select-pane", "select-pane", "-t", "%9")
	var cerr *CommandError
	if !errors.As(err, &cerr) || cerr != orig {
		t.Fatalf("expected the original *CommandError, got %v", err)
	}
	if !strings.Contains(err.Error(), "exit status 1: can't find pane: %9") {
		t.Errorf("Error(): got %q", err.Error())
	}
}

func TestCommandError_UnexpectedOutput(t *testing.T) {
	err := unexpectedOutput("wezterm", []string{"cli", "split-pane"}, "oops\n")
	if !errors.Is(err, ErrUnexpectedOutput) {
		t.Errorf("expected ErrUnexpectedOutput, got %v", err)
	}
	if !strings.Contains(err.Error(), `unparseable output "oops"`) {
		t.Errorf("Error(): got %q", err.Error())
	}
}
