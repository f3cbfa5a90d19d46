// Package preset loads named gauge presets from a TOML file, so a knitter
// can keep the swatch numbers for their usual yarns next to their
// patterns instead of retyping them per run.
//
// The file format is one table per preset:
//
//	[preset.dk]
//	stitches = 22
//	gauge-stitches = "22"
//	gauge-rows = "30"
//
//	[preset.sock]
//	stitches = 64
//	gauge-stitches = "30/4in"
//	gauge-rows = "42/4in"
//	garter = true
package preset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Preset is one named set of chart defaults. Zero or empty fields are
// "not set" and leave the corresponding flag alone.
type Preset struct {
	Stitches      int    `toml:"stitches"`
	GaugeStitches string `toml:"gauge-stitches"`
	GaugeRows     string `toml:"gauge-rows"`
	Garter        bool   `toml:"garter"`
}

// File is a parsed preset file.
type File struct {
	Presets map[string]Preset `toml:"preset"`
}

// Load reads and decodes a preset file.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("loading presets %q: %w", path, err)
	}
	return &f, nil
}

// Resolve looks up a preset by name. An unknown name is an error that
// lists the names the file does define.
func (f *File) Resolve(name string) (Preset, error) {
	if p, ok := f.Presets[name]; ok {
		return p, nil
	}

	names := make([]string, 0, len(f.Presets))
	for n := range f.Presets {
		names = append(names, n)
	}
	sort.Strings(names)

	if len(names) == 0 {
		return Preset{}, fmt.Errorf("unknown preset %q: the file defines no presets", name)
	}
	return Preset{}, fmt.Errorf("unknown preset %q: available presets are %s", name, strings.Join(names, ", "))
}
