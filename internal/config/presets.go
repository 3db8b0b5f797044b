package config

import "sort"

// SolarBodies returns the eight planets with approximate radii (AU) and
// periods (years).
func SolarBodies() []BodyConfig {
	return []BodyConfig{
		{Name: "Mercury", Radius: 0.4, Period: 0.241},
		{Name: "Venus", Radius: 0.7, Period: 0.615},
		{Name: "Earth", Radius: 1, Period: 1.000},
		{Name: "Mars", Radius: 1.3, Period: 1.881},
		{Name: "Jupiter", Radius: 1.6, Period: 11.86},
		{Name: "Saturn", Radius: 1.8, Period: 29.46},
		{Name: "Uranus", Radius: 2.1, Period: 84.02},
		{Name: "Neptune", Radius: 2.7, Period: 164.8},
	}
}

var Presets = map[string]func() *SimulationConfig{
	"solar": DefaultConfig,
	"inner": func() *SimulationConfig {
		cfg := DefaultConfig()
		cfg.Bodies = SolarBodies()[:4]
		cfg.Canvas = CanvasConfig{XMin: -25, XMax: 25, YMin: -25, YMax: 25, Background: DefaultBackground}
		return cfg
	},
	"outer": func() *SimulationConfig {
		cfg := DefaultConfig()
		cfg.Bodies = SolarBodies()[4:]
		cfg.Slowdown = 9
		return cfg
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *SimulationConfig {
	build, ok := Presets[name]
	if !ok {
		return nil
	}
	return build()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
