package config

import "sort"

// Presets are named starting points for common runs.
var Presets = map[string]*Config{
	"quick": {
		Dimensions: 20, Sweeps: 120, Mode: "full",
		Schedule: ScheduleConfig{TMin: 1.0, TMax: 3.0, TStep: 0.2},
	},
	"paper": {
		Dimensions: 50, Sweeps: 150, Mode: "full",
		Schedule: ScheduleConfig{TMin: 1.0, TMax: 3.0, TStep: 0.1},
	},
	"critical": {
		Dimensions: 50, Sweeps: 300, Mode: "full",
		Schedule: ScheduleConfig{TMin: 2.0, TMax: 2.6, TStep: 0.05},
	},
	"cold": {
		Dimensions: 50, Sweeps: 150, Mode: "full",
		Schedule: ScheduleConfig{TMin: 1.0, TMax: 1.5, TStep: 0.1},
	},
	"hot": {
		Dimensions: 50, Sweeps: 150, Mode: "full",
		Schedule: ScheduleConfig{TMin: 2.6, TMax: 3.0, TStep: 0.1},
	},
	"watch": {
		Dimensions: 40, Sweeps: 150, Mode: "visual", Temperature: 2.27,
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
