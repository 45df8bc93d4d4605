// Package action implements the user-facing actions: each one reads the
// editor's context if it needs it, finds or creates the pane it works in,
// types a command line there and focuses it.
//
// The reference pane (the pane helix-panes was invoked from) is always an
// explicit argument.
package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/timvw/helix-panes/internal/config"
	"github.com/timvw/helix-panes/internal/layout"
	"github.com/timvw/helix-panes/internal/locator"
	"github.com/timvw/helix-panes/internal/model"
	"github.com/timvw/helix-panes/internal/mux"
	telem "github.com/timvw/helix-panes/internal/otel"
	"github.com/timvw/helix-panes/internal/parser"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Orchestrator runs actions against one multiplexer.
type Orchestrator struct {
	Mux     mux.Multiplexer
	Locator *locator.Locator
	Engine  *layout.Engine
	Config  *config.Config
	Metrics *telem.Metrics

	// Exec runs commands that are not typed into a pane (browse).
	Exec mux.Runner

	// Cwd and Self fill the {cwd} and {self} placeholders.
	Cwd  string
	Self string
}

// New wires an Orchestrator. cwd and self are usually os.Getwd and
// os.Executable.
func New(m mux.Multiplexer, cfg *config.Config, metrics *telem.Metrics, cwd, self string) *Orchestrator {
	return &Orchestrator{
		Mux:     m,
		Locator: locator.New(m, metrics),
		Engine:  layout.New(m, metrics),
		Config:  cfg,
		Metrics: metrics,
		Exec:    mux.ExecRunner{},
		Cwd:     cwd,
		Self:    self,
	}
}

// EditorContext reads the reference pane's screen and parses the editor
// status line from it.
func (o *Orchestrator) EditorContext(ctx context.Context, ref string) (model.EditorContext, error) {
	screen, err := o.Mux.ReadScreenText(ctx, ref)
	if err != nil {
		return model.EditorContext{}, fmt.Errorf("read screen of pane %s: %w", ref, err)
	}
	ec, err := parser.ParseStatus(screen)
	if err != nil {
		o.Metrics.RecordStatusParseFailure(ctx)
		return model.EditorContext{}, fmt.Errorf("parse editor status of pane %s: %w", ref, err)
	}
	slog.Debug("editor context", "ref", ref, "file", ec.Filename, "line", ec.Line)
	return ec, nil
}

// Status returns the editor context of the reference pane.
func (o *Orchestrator) Status(ctx context.Context, ref string) (model.EditorContext, error) {
	var ec model.EditorContext
	err := o.run(ctx, "status", ref, func(ctx context.Context) error {
		var err error
		ec, err = o.EditorContext(ctx, ref)
		return err
	})
	return ec, err
}

// Blame shows the history of the current line in the pane to the right.
func (o *Orchestrator) Blame(ctx context.Context, ref string) error {
	return o.run(ctx, "blame", ref, func(ctx context.Context) error {
		ec, err := o.EditorContext(ctx, ref)
		if err != nil {
			return err
		}
		return o.injectInto(ctx, ref, model.Right, o.Config.SplitPercent,
			Render(o.Config.Commands.Blame, o.vars(ec), true))
	})
}

// Check runs the checker configured for the current file's extension in
// the pane to the right. Files without a configured checker are skipped.
func (o *Orchestrator) Check(ctx context.Context, ref string) error {
	return o.run(ctx, "check", ref, func(ctx context.Context) error {
		ec, err := o.EditorContext(ctx, ref)
		if err != nil {
			return err
		}
		tpl, ok := o.Config.CheckCommand(ec.Extension)
		if !ok {
			slog.Info("no check command for extension", "file", ec.Filename, "ext", ec.Extension)
			return nil
		}
		return o.injectInto(ctx, ref, model.Right, o.Config.SplitPercent, Render(tpl, o.vars(ec), true))
	})
}

// Explorer opens the file explorer in the pane to the left, unless it is
// already running there, and focuses it.
func (o *Orchestrator) Explorer(ctx context.Context, ref string) error {
	return o.run(ctx, "explorer", ref, func(ctx context.Context) error {
		left, err := o.Locator.Locate(ctx, ref, model.Left, o.Config.ExplorerPercent)
		if err != nil {
			return err
		}
		running, err := o.isRunning(ctx, left, o.Config.Commands.ExplorerProgram)
		if err != nil {
			return err
		}
		if running {
			slog.Info("explorer already running", "pane", left)
		} else {
			cmd := Render(o.Config.Commands.Explorer, o.baseVars(), true)
			if err := o.Mux.InjectText(ctx, left, cmd); err != nil {
				return fmt.Errorf("start explorer in pane %s: %w", left, err)
			}
		}
		return o.focus(ctx, left)
	})
}

// Fzf starts the live-grep picker in the pane to the right. Its selection
// calls back into FzfOpen from that pane.
func (o *Orchestrator) Fzf(ctx context.Context, ref string) error {
	return o.run(ctx, "fzf", ref, func(ctx context.Context) error {
		return o.injectInto(ctx, ref, model.Right, o.Config.SplitPercent,
			Render(o.Config.Commands.Fzf, o.baseVars(), true))
	})
}

// FzfOpen opens a picked match in the editor, which is the pane to the
// left of the picker pane ref. The editor pane must already exist.
func (o *Orchestrator) FzfOpen(ctx context.Context, ref, token string) error {
	return o.run(ctx, "fzf-open", ref, func(ctx context.Context) error {
		m, err := model.ParseMatch(token)
		if err != nil {
			return err
		}
		editor, err := o.Mux.Neighbor(ctx, ref, model.Left)
		if errors.Is(err, mux.ErrNoNeighbor) {
			return fmt.Errorf("no editor pane left of pane %s: %w", ref, err)
		}
		if err != nil {
			return fmt.Errorf("find editor pane left of pane %s: %w", ref, err)
		}

		vars := o.vars(model.NewEditorContext(m.Path, m.Line))
		vars["column"] = m.Column
		cmd := Render(o.Config.Commands.Open, vars, false)
		if err := o.Mux.InjectText(ctx, editor, cmd); err != nil {
			return fmt.Errorf("open %s in pane %s: %w", m.Path, editor, err)
		}
		return o.focus(ctx, editor)
	})
}

// Open runs the browse command for the current file and line.
func (o *Orchestrator) Open(ctx context.Context, ref string) error {
	return o.run(ctx, "open", ref, func(ctx context.Context) error {
		ec, err := o.EditorContext(ctx, ref)
		if err != nil {
			return err
		}
		argv, err := SplitCommand(o.Config.Commands.Browse, o.vars(ec))
		if err != nil {
			return fmt.Errorf("browse command %q: %w", o.Config.Commands.Browse, err)
		}
		if len(argv) == 0 {
			return fmt.Errorf("browse command is empty")
		}
		slog.Info("browse", "argv", argv)
		if _, err := o.Exec.Run(ctx, argv[0], argv[1:]...); err != nil {
			return fmt.Errorf("run %s: %w", argv[0], err)
		}
		return nil
	})
}

// Layout arranges the left, reference and right panes to a named preset,
// creating the side panes if needed, and focuses the reference pane again.
func (o *Orchestrator) Layout(ctx context.Context, ref, name string) error {
	return o.run(ctx, "layout", ref, func(ctx context.Context) error {
		preset, err := layout.Lookup(o.Config.Presets, name)
		if err != nil {
			return err
		}
		trace.SpanFromContext(ctx).SetAttributes(attribute.String("layout.preset", preset.Name))

		left, err := o.Locator.Locate(ctx, ref, model.Left, preset.Percents[0])
		if err != nil {
			return err
		}
		right, err := o.Locator.Locate(ctx, ref, model.Right, preset.Percents[2])
		if err != nil {
			return err
		}
		if err := o.Engine.Apply(ctx, []string{left, ref, right}, preset.Percents[:]); err != nil {
			return fmt.Errorf("apply layout %s: %w", preset.Name, err)
		}
		return o.focus(ctx, ref)
	})
}

func (o *Orchestrator) injectInto(ctx context.Context, ref string, dir model.Direction, percent int, cmd string) error {
	target, err := o.Locator.Locate(ctx, ref, dir, percent)
	if err != nil {
		return err
	}
	if err := o.Mux.InjectText(ctx, target, cmd); err != nil {
		return fmt.Errorf("send command to pane %s: %w", target, err)
	}
	return o.focus(ctx, target)
}

func (o *Orchestrator) focus(ctx context.Context, paneID string) error {
	if err := o.Mux.FocusPane(ctx, paneID); err != nil {
		return fmt.Errorf("focus pane %s: %w", paneID, err)
	}
	return nil
}

// isRunning reports whether paneID's foreground program is program.
// Titles may carry a path or arguments, so only the first word's base
// name is compared.
func (o *Orchestrator) isRunning(ctx context.Context, paneID, program string) (bool, error) {
	if program == "" {
		return false, nil
	}
	panes, err := o.Mux.ListPanes(ctx)
	if err != nil {
		return false, fmt.Errorf("list panes: %w", err)
	}
	p, ok := mux.FindPane(panes, paneID)
	if !ok {
		return false, nil
	}
	fields := strings.Fields(p.Command)
	if len(fields) == 0 {
		return false, nil
	}
	return filepath.Base(fields[0]) == program, nil
}

func (o *Orchestrator) baseVars() Vars {
	return Vars{"cwd": o.Cwd, "self": o.Self}
}

func (o *Orchestrator) vars(ec model.EditorContext) Vars {
	v := EditorVars(ec, o.Cwd)
	for k, val := range o.baseVars() {
		v[k] = val
	}
	return v
}

func (o *Orchestrator) run(ctx context.Context, name, ref string, fn func(context.Context) error) (err error) {
	ctx, span := telem.Tracer().Start(ctx, "action."+name,
		trace.WithAttributes(
			attribute.String("action", name),
			attribute.String("pane.ref", ref),
			attribute.String("mux.backend", o.Mux.Name()),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			slog.Warn("action failed", "action", name, "ref", ref, "err", err)
		}
		span.End()
		o.Metrics.RecordAction(ctx, name, err)
	}()

	slog.Info("action", "action", name, "ref", ref, "mux", o.Mux.Name())
	return fn(ctx)
}
