package config

import (
	"sort"
	"time"
)

var Presets = map[string]*Config{
	"classic": {
		Width: 400, Height: 400, Radius: 10,
		Interval: 5 * time.Second, Transition: 4500 * time.Millisecond,
	},
	"wide": {
		Width: 800, Height: 400, Radius: 10,
		Interval: 5 * time.Second, Transition: 4500 * time.Millisecond,
	},
	"bubbles": {
		Width: 600, Height: 600, Radius: 25,
		Interval: 6 * time.Second, Transition: 5 * time.Second,
	},
	"confetti": {
		Width: 400, Height: 400, Radius: 1,
		Interval: 2 * time.Second, Transition: 1500 * time.Millisecond,
	},
}

// GetPreset returns a copy of the named preset layered over the defaults.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	cfg.fillDefaults()
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
