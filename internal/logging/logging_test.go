package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if err != nil {
			t.Errorf("ParseLevel(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestNew_StderrJSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := Config{Level: "info", Format: "json", Sink: "stderr"}
	logger, closeFn, err := New(cfg, Options{App: "helix-panes", Version: "test", Stderr: &buf})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer closeFn()

	logger.Debug("hidden")
	logger.Info("shown", "pane", "3")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 record, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("record is not JSON: %v", err)
	}
	if rec["msg"] != "shown" || rec["pane"] != "3" || rec["app"] != "helix-panes" || rec["version"] != "test" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestNew_FileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "hp.log")
	cfg := Config{Level: "debug", Sink: "file", File: path}
	logger, closeFn, err := New(cfg, Options{})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Debug("to file")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "msg=\"to file\"") {
		t.Errorf("log file missing record: %q", data)
	}
}

func TestNew_DefaultFileUsesStateDir(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	logger, closeFn, err := New(Config{Level: "warn"}, Options{App: "helix-panes"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	logger.Warn("hello")
	closeFn()

	if _, err := os.Stat(filepath.Join(state, "helix-panes", "helix-panes.log")); err != nil {
		t.Errorf("expected default log file: %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	if _, _, err := New(Config{Sink: "syslog"}, Options{}); err == nil {
		t.Error("expected error for unknown sink")
	}
	if _, _, err := New(Config{Sink: "none", Format: "xml"}, Options{}); err == nil {
		t.Error("expected error for unknown format")
	}
}
