package config

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownPreset is returned for a preset name that is not defined.
var ErrUnknownPreset = errors.New("unknown preset")

// Preset is a named starting offset for the explorer.
type Preset struct {
	X           int64
	Y           int64
	Description string
}

var Presets = map[string]Preset{
	"origin": {
		X: 0, Y: 0,
		Description: "Cell (0, 0), where every session starts by default",
	},
	"seam": {
		X: 65520, Y: 0,
		Description: "The x wrap boundary; the field repeats every 65536 cells",
	},
	"far-side": {
		X: -32768, Y: 0,
		Description: "Half a period west, where star names turn negative",
	},
	"deep": {
		X: 1_000_000_000, Y: -1_000_000_000,
		Description: "A billion cells out, identical to its wrapped twin",
	},
}

func GetPreset(name string) (Preset, error) {
	p, ok := Presets[name]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return p, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
