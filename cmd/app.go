package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/timvw/helix-panes/internal/action"
	"github.com/timvw/helix-panes/internal/config"
	"github.com/timvw/helix-panes/internal/logging"
	"github.com/timvw/helix-panes/internal/mux"
	telem "github.com/timvw/helix-panes/internal/otel"
)

// app is everything one invocation needs, built from config.
type app struct {
	cfg  *config.Config
	mux  mux.Multiplexer
	orch *action.Orchestrator

	tel      *telem.Telemetry
	closeLog func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagMux != "" {
		cfg.Mux = flagMux
	}

	closeLog, err := logging.Init(cfg.Log, logging.Options{Version: Version})
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	if cfg.ConfigFile != "" {
		slog.Debug("loaded config", "file", cfg.ConfigFile)
	}

	telem.Version = Version
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		slog.Warn("otel init failed", "err", err)
	}
	var metrics *telem.Metrics
	if tel != nil {
		metrics = tel.Metrics
	}

	m, err := newMultiplexer(cfg, metrics)
	if err != nil {
		tel.Shutdown(ctx)
		_ = closeLog()
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	self, err := os.Executable()
	if err != nil {
		self = os.Args[0]
	}

	return &app{
		cfg:      cfg,
		mux:      m,
		orch:     action.New(m, cfg, metrics, cwd, self),
		tel:      tel,
		closeLog: closeLog,
	}, nil
}

// newMultiplexer returns the configured or auto-detected multiplexer.
func newMultiplexer(cfg *config.Config, metrics *telem.Metrics) (mux.Multiplexer, error) {
	name := cfg.Mux
	if name == "" {
		var err error
		name, err = mux.DetectName(os.Getenv)
		if err != nil {
			return nil, err
		}
	}
	return mux.FromName(name, mux.Options{Bin: cfg.Bin(name), Metrics: metrics})
}

func (a *app) Close(ctx context.Context) {
	a.tel.Shutdown(ctx)
	_ = a.closeLog()
}

// referencePane reads the invoking pane's id from the environment.
func (a *app) referencePane() (string, error) {
	return mux.ReferencePane(a.mux, os.Getenv)
}

// runWithApp adapts a command body that needs an app.
func runWithApp(fn func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close(cmd.Context())
		return fn(cmd, a, args)
	}
}

// runAction adapts an action that works relative to the invoking pane.
func runAction(fn func(ctx context.Context, a *app, ref string, args []string) error) func(*cobra.Command, []string) error {
	return runWithApp(func(cmd *cobra.Command, a *app, args []string) error {
		ref, err := a.referencePane()
		if err != nil {
			return err
		}
		return fn(cmd.Context(), a, ref, args)
	})
}
