package mux

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	telem "github.com/timvw/helix-panes/internal/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Runner executes an external command and returns its stdout.
// Tests substitute a fake to avoid spawning processes.
type Runner interface {
	Run(ctx context.Context, bin string, args ...string) (string, error)
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, bin string, args ...string) (string, error)

func (f RunnerFunc) Run(ctx context.Context, bin string, args ...string) (string, error) {
	return f(ctx, bin, args...)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes bin with args. A non-zero exit becomes a *CommandError
// carrying the exit code and stderr.
func (ExecRunner) Run(ctx context.Context, bin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		cerr := &CommandError{
			Bin:      bin,
			Args:     args,
			ExitCode: -1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cerr.ExitCode = exitErr.ExitCode()
		}
		return "", cerr
	}
	return string(out), nil
}

// Options configures a multiplexer backend.
type Options struct {
	// Bin overrides the multiplexer binary. Empty uses the default name
	// resolved through PATH.
	Bin     string
	Runner  Runner
	Metrics *telem.Metrics
}

// commander is shared plumbing for backends: it traces, counts and logs
// each command before handing it to the Runner.
type commander struct {
	backend string
	bin     string
	runner  Runner
	metrics *telem.Metrics
}

func newCommander(backend, defaultBin string, opts Options) commander {
	c := commander{
		backend: backend,
		bin:     opts.Bin,
		runner:  opts.Runner,
		metrics: opts.Metrics,
	}
	if c.bin == "" {
		c.bin = defaultBin
	}
	if c.runner == nil {
		c.runner = ExecRunner{}
	}
	return c
}

func (c commander) run(ctx context.Context, op string, args ...string) (string, error) {
	ctx, span := telem.Tracer().Start(ctx, "mux."+op)
	defer span.End()
	span.SetAttributes(
		attribute.String("mux.backend", c.backend),
		attribute.StringSlice("mux.args", args),
	)
	c.metrics.RecordMuxCommand(ctx, c.backend, op)
	slog.Debug("mux command", "backend", c.backend, "op", op, "args", args)

	out, err := c.runner.Run(ctx, c.bin, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.Debug("mux command failed", "backend", c.backend, "op", op, "err", err)
		var cerr *CommandError
		if !errors.As(err, &cerr) {
			err = &CommandError{Bin: c.bin, Args: args, ExitCode: -1, Err: err}
		}
		return "", err
	}
	return out, nil
}
