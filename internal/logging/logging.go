// Package logging configures the process-wide slog logger.
//
// helix-panes runs as a short-lived child of the editor, whose command
// prompt shows anything written to stderr, so the default sink is a
// rotating file and the default level is warn.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

// Config selects the handler, sink and rotation policy.
type Config struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Sink   string `yaml:"sink"`
	File   string `yaml:"file"`

	MaxSizeMB  int   `yaml:"max_size_mb"`
	MaxBackups int   `yaml:"max_backups"`
	MaxAgeDays int   `yaml:"max_age_days"`
	Compress   *bool `yaml:"compress"`
}

// DefaultConfig returns the built-in logging settings.
func DefaultConfig() Config {
	return Config{
		Level:      "warn",
		Format:     string(FormatText),
		Sink:       string(SinkFile),
		MaxSizeMB:  5,
		MaxBackups: 3,
		MaxAgeDays: 14,
	}
}

// Options carries process metadata attached to every record.
type Options struct {
	App     string
	Version string
	// Stderr replaces os.Stderr for the stderr sink.
	Stderr io.Writer
}

// Init installs a logger built from cfg as the slog default and returns a
// function that flushes and closes the sink.
func Init(cfg Config, opts Options) (func() error, error) {
	logger, closeFn, err := New(cfg, opts)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return closeFn, nil
}

// New builds a logger without installing it.
func New(cfg Config, opts Options) (*slog.Logger, func() error, error) {
	if opts.App == "" {
		opts.App = "helix-panes"
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	writer, closeFn, err := resolveWriter(cfg, opts)
	if err != nil {
		return nil, nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	switch Format(strings.ToLower(cfg.Format)) {
	case FormatJSON:
		handler = slog.NewJSONHandler(writer, handlerOpts)
	case FormatText, "":
		handler = slog.NewTextHandler(writer, handlerOpts)
	default:
		_ = closeFn()
		return nil, nil, fmt.Errorf("logging: unknown format %q (supported: text, json)", cfg.Format)
	}

	logger := slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
	)
	return logger, closeFn, nil
}

// ParseLevel maps a level name to a slog level. Empty means warn.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("logging: unknown level %q (supported: debug, info, warn, error)", s)
	}
}

func resolveWriter(cfg Config, opts Options) (io.Writer, func() error, error) {
	noop := func() error { return nil }
	switch Sink(strings.ToLower(cfg.Sink)) {
	case SinkNone:
		return io.Discard, noop, nil
	case SinkStderr:
		if opts.Stderr != nil {
			return opts.Stderr, noop, nil
		}
		return os.Stderr, noop, nil
	case SinkFile, "":
		path := strings.TrimSpace(cfg.File)
		if path == "" {
			dir, err := StateDir(opts.App)
			if err != nil {
				return nil, nil, err
			}
			path = filepath.Join(dir, opts.App+".log")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, nil, fmt.Errorf("logging: create log dir: %w", err)
		}
		compress := true
		if cfg.Compress != nil {
			compress = *cfg.Compress
		}
		rot := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    orDefault(cfg.MaxSizeMB, 5),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAgeDays, 14),
			Compress:   compress,
		}
		return rot, rot.Close, nil
	default:
		return nil, nil, fmt.Errorf("logging: unknown sink %q (supported: stderr, file, none)", cfg.Sink)
	}
}

// StateDir returns $XDG_STATE_HOME/<app>, falling back to
// ~/.local/state/<app>.
func StateDir(app string) (string, error) {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, app), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging: resolve state dir: %w", err)
	}
	return filepath.Join(home, ".local", "state", app), nil
}

func orDefault(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}
