package config

import "sort"

// Presets are the animation profiles. Orbit and drift are alternative motion
// models and are never combined.
var Presets = map[string]func() NetworkConfig{
	"orbit": DefaultNetwork,
	"drift": func() NetworkConfig {
		n := DefaultNetwork()
		n.Motion = "drift"
		n.Spawn = "staggered"
		n.SpawnInterval = 6
		n.LinkFade = true
		n.ParticleColors = []string{"#aaa", "#bbb", "#ccc"}
		return n
	},
	"staggered": func() NetworkConfig {
		n := DefaultNetwork()
		n.Spawn = "staggered"
		n.SpawnInterval = 3
		n.LinkFade = true
		return n
	},
	"frozen": func() NetworkConfig {
		n := DefaultNetwork()
		n.VelocityScale = 0
		n.FadeStep = 1
		return n
	},
	"dense": func() NetworkConfig {
		n := DefaultNetwork()
		n.Density = 12000
		n.LineDistance = 90
		return n
	},
}

func GetPreset(name string) *NetworkConfig {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	n := fn()
	return &n
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
