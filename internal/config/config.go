// Package config loads helix-panes configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (HELIX_PANES_*, OTEL_EXPORTER_OTLP_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .helix-panes.yaml in current directory
//  2. $XDG_CONFIG_HOME/helix-panes/config.yaml (default ~/.config)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/timvw/helix-panes/internal/layout"
	"github.com/timvw/helix-panes/internal/logging"
	"gopkg.in/yaml.v3"
)

// Commands are the command-line templates injected into panes. See the
// action package for the placeholders they may use.
type Commands struct {
	Blame string `yaml:"blame"`
	// Explorer starts the file explorer in the left pane.
	Explorer string `yaml:"explorer"`
	// ExplorerProgram is the pane title the explorer shows while running;
	// the explorer is not started again when the left pane already runs it.
	ExplorerProgram string `yaml:"explorer_program"`
	Fzf             string `yaml:"fzf"`
	// Open is typed into the editor pane to open a search match.
	Open string `yaml:"open"`
	// Browse is executed directly to open the file in a browser.
	Browse string `yaml:"browse"`
}

// Config holds all helix-panes configuration.
type Config struct {
	// Multiplexer selection: "wezterm", "tmux" or empty to auto-detect.
	Mux        string `yaml:"mux"`
	WezTermBin string `yaml:"wezterm_bin"`
	TmuxBin    string `yaml:"tmux_bin"`

	Commands Commands `yaml:"commands"`
	// Checks maps a file extension (without dot) to its check command.
	Checks map[string]string `yaml:"checks"`
	// Layouts maps a preset name to left/center/right percents.
	Layouts map[string][]int `yaml:"layouts"`

	// ExplorerPercent sizes a newly split explorer pane.
	ExplorerPercent int `yaml:"explorer_percent"`
	// SplitPercent sizes other newly split panes; 0 leaves it to the
	// multiplexer.
	SplitPercent int `yaml:"split_percent"`

	Log logging.Config `yaml:"log"`

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// Presets are the validated layouts (built-ins merged with Layouts).
	Presets map[string]layout.Preset `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Commands: Commands{
			Blame:           "cd {cwd} && tig blame +{line} -- {file}",
			Explorer:        "br",
			ExplorerProgram: "br",
			Fzf: "cd {cwd}; {self} fzf-open $(rg --line-number --column --no-heading --smart-case . " +
				"| fzf --delimiter : --preview 'bat --style=full --color=always --highlight-line {2} {1}' " +
				"--preview-window '~3,+{2}+3/2' | cut -d: -f1,2,3)",
			Open:   ":open {file}:{line}",
			Browse: "gh browse {file}:{line}",
		},
		Checks: map[string]string{
			"rs": "cd {root} && cargo check",
			"go": "cd {cwd} && go vet ./{dir}",
			"py": "ruff check {file}",
		},
		ExplorerPercent: 20,
		Log:             logging.DefaultConfig(),
		Presets:         layout.DefaultPresets(),
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	if err := cfg.resolvePresets(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late, mid-action.
func (c *Config) Validate() error {
	switch c.Mux {
	case "", "wezterm", "tmux":
	default:
		return fmt.Errorf("invalid mux %q (supported: wezterm, tmux)", c.Mux)
	}
	if c.ExplorerPercent < 0 || c.ExplorerPercent > 100 {
		return fmt.Errorf("explorer_percent %d out of range 0-100", c.ExplorerPercent)
	}
	if c.SplitPercent < 0 || c.SplitPercent > 100 {
		return fmt.Errorf("split_percent %d out of range 0-100", c.SplitPercent)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// Bin returns the binary override for the named multiplexer.
func (c *Config) Bin(muxName string) string {
	switch muxName {
	case "wezterm":
		return c.WezTermBin
	case "tmux":
		return c.TmuxBin
	}
	return ""
}

// CheckCommand returns the check template for a file extension.
func (c *Config) CheckCommand(ext string) (string, bool) {
	cmd, ok := c.Checks[strings.ToLower(ext)]
	return cmd, ok && cmd != ""
}

func (c *Config) resolvePresets() error {
	presets := layout.DefaultPresets()
	for name, percents := range c.Layouts {
		p, err := layout.NewPreset(name, percents)
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		presets[name] = p
	}
	c.Presets = presets
	return nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	if data, err := os.ReadFile(".helix-panes.yaml"); err == nil {
		return ".helix-panes.yaml", data, nil
	}

	if dir, err := configDir(); err == nil {
		path := filepath.Join(dir, "helix-panes", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.Mux != "" {
		cfg.Mux = file.Mux
	}
	if file.WezTermBin != "" {
		cfg.WezTermBin = file.WezTermBin
	}
	if file.TmuxBin != "" {
		cfg.TmuxBin = file.TmuxBin
	}

	mergeString(&cfg.Commands.Blame, file.Commands.Blame)
	mergeString(&cfg.Commands.Explorer, file.Commands.Explorer)
	mergeString(&cfg.Commands.ExplorerProgram, file.Commands.ExplorerProgram)
	mergeString(&cfg.Commands.Fzf, file.Commands.Fzf)
	mergeString(&cfg.Commands.Open, file.Commands.Open)
	mergeString(&cfg.Commands.Browse, file.Commands.Browse)

	// An empty check command in the file disables the built-in one.
	for ext, cmd := range file.Checks {
		cfg.Checks[strings.ToLower(ext)] = cmd
	}
	if len(file.Layouts) > 0 {
		cfg.Layouts = file.Layouts
	}

	if file.ExplorerPercent > 0 {
		cfg.ExplorerPercent = file.ExplorerPercent
	}
	if file.SplitPercent > 0 {
		cfg.SplitPercent = file.SplitPercent
	}

	mergeString(&cfg.Log.Level, file.Log.Level)
	mergeString(&cfg.Log.Format, file.Log.Format)
	mergeString(&cfg.Log.Sink, file.Log.Sink)
	mergeString(&cfg.Log.File, file.Log.File)
	if file.Log.MaxSizeMB > 0 {
		cfg.Log.MaxSizeMB = file.Log.MaxSizeMB
	}
	if file.Log.MaxBackups > 0 {
		cfg.Log.MaxBackups = file.Log.MaxBackups
	}
	if file.Log.MaxAgeDays > 0 {
		cfg.Log.MaxAgeDays = file.Log.MaxAgeDays
	}
	if file.Log.Compress != nil {
		cfg.Log.Compress = file.Log.Compress
	}

	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("HELIX_PANES_MUX"); v != "" {
		cfg.Mux = v
	}
	if v := os.Getenv("HELIX_PANES_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HELIX_PANES_LOG_SINK"); v != "" {
		cfg.Log.Sink = v
	}
	if v := os.Getenv("HELIX_PANES_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("HELIX_PANES_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}
