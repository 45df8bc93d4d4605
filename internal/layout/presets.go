package layout

import (
	"fmt"
	"sort"
	"strings"
)

// Preset is a named left/center/right width split, in percent.
type Preset struct {
	Name     string
	Percents [3]int
}

// DefaultPresets are the built-in presets. Config may override or extend them.
func DefaultPresets() map[string]Preset {
	return map[string]Preset{
		"default":        {Name: "default", Percents: [3]int{20, 55, 25}},
		"large-terminal": {Name: "large-terminal", Percents: [3]int{15, 40, 45}},
		"small-terminal": {Name: "small-terminal", Percents: [3]int{15, 70, 15}},
	}
}

// NewPreset validates a percent triple.
func NewPreset(name string, percents []int) (Preset, error) {
	if len(percents) != 3 {
		return Preset{}, fmt.Errorf("layout %q: want 3 percents (left, center, right), got %d", name, len(percents))
	}
	sum := 0
	for _, p := range percents {
		if p < 0 || p > 100 {
			return Preset{}, fmt.Errorf("layout %q: percent %d out of range 0-100", name, p)
		}
		sum += p
	}
	if sum > 100 {
		return Preset{}, fmt.Errorf("layout %q: percents sum to %d, more than 100", name, sum)
	}
	return Preset{Name: name, Percents: [3]int{percents[0], percents[1], percents[2]}}, nil
}

// Lookup finds a preset by name. "large" and "small" are accepted for the
// terminal presets.
func Lookup(presets map[string]Preset, name string) (Preset, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "", "reset":
		key = "default"
	case "large", "large_terminal":
		key = "large-terminal"
	case "small", "small_terminal":
		key = "small-terminal"
	}
	if p, ok := presets[key]; ok {
		return p, nil
	}
	return Preset{}, fmt.Errorf("unknown layout %q (available: %s)", name, strings.Join(Names(presets), ", "))
}

// Names returns the preset names, sorted.
func Names(presets map[string]Preset) []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
