package particle

import (
	"fmt"
	"strings"
)

// Motion selects how simulated particles move. A network runs exactly one
// motion model.
type Motion int

const (
	// MotionOrbit moves each particle on a circle around a fixed center.
	MotionOrbit Motion = iota
	// MotionDrift integrates a constant velocity and bounces off the bounds.
	MotionDrift
)

func (m Motion) String() string {
	switch m {
	case MotionOrbit:
		return "orbit"
	case MotionDrift:
		return "drift"
	}
	return fmt.Sprintf("motion(%d)", int(m))
}

// ParseMotion maps a config name to a Motion.
func ParseMotion(s string) (Motion, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "orbit":
		return MotionOrbit, nil
	case "drift":
		return MotionDrift, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMotion, s)
}

// Spawn selects how the particle set is populated.
type Spawn int

const (
	// SpawnBatch creates the whole set at once.
	SpawnBatch Spawn = iota
	// SpawnStaggered adds one particle every SpawnInterval frames.
	SpawnStaggered
)

func (s Spawn) String() string {
	switch s {
	case SpawnBatch:
		return "batch"
	case SpawnStaggered:
		return "staggered"
	}
	return fmt.Sprintf("spawn(%d)", int(s))
}

// ParseSpawn maps a config name to a Spawn policy.
func ParseSpawn(s string) (Spawn, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "batch":
		return SpawnBatch, nil
	case "staggered":
		return SpawnStaggered, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSpawn, s)
}

// Range is a closed interval sampled uniformly.
type Range struct {
	Min, Max float64
}

// Options configures a Network.
type Options struct {
	LineDistance   float64
	LineColor      string
	LineWidth      float64
	ParticleColors []string
	Density        float64
	VelocityScale  float64
	Motion         Motion
	Spawn          Spawn
	SpawnInterval  int
	FadeStep       float64
	Margin         float64
	LinkFade       bool

	Radius       Range
	OrbitRadius  Range
	AngularSpeed Range
	DriftSpeed   Range
}

// DefaultOptions mirrors the stock page animation.
func DefaultOptions() Options {
	return Options{
		LineDistance:   120,
		LineColor:      "#929292",
		LineWidth:      0.7,
		ParticleColors: []string{"#aaa"},
		Density:        30000,
		VelocityScale:  1,
		Motion:         MotionOrbit,
		Spawn:          SpawnBatch,
		SpawnInterval:  1,
		FadeStep:       0.01,
		Margin:         10,
		Radius:         Range{1.5, 2.5},
		OrbitRadius:    Range{20, 60},
		AngularSpeed:   Range{0.005, 0.02},
		DriftSpeed:     Range{-0.5, 0.5},
	}
}

// Validate reports the first option outside its valid range.
func (o Options) Validate() error {
	switch {
	case o.Density <= 0:
		return &OptionError{Option: "density", Value: o.Density, Wrapped: ErrParameterBounds}
	case o.LineDistance < 0:
		return &OptionError{Option: "line_distance", Value: o.LineDistance, Wrapped: ErrParameterBounds}
	case o.FadeStep < 0:
		return &OptionError{Option: "fade_step", Value: o.FadeStep, Wrapped: ErrParameterBounds}
	case o.Margin < 0:
		return &OptionError{Option: "margin", Value: o.Margin, Wrapped: ErrParameterBounds}
	case o.Spawn == SpawnStaggered && o.SpawnInterval < 1:
		return &OptionError{Option: "spawn_interval", Value: float64(o.SpawnInterval), Wrapped: ErrParameterBounds}
	case len(o.ParticleColors) == 0:
		return &OptionError{Option: "particle_colors", Wrapped: ErrParameterBounds}
	}
	for name, r := range map[string]Range{
		"radius":        o.Radius,
		"orbit_radius":  o.OrbitRadius,
		"angular_speed": o.AngularSpeed,
		"drift_speed":   o.DriftSpeed,
	} {
		if r.Max < r.Min {
			return &OptionError{Option: name, Value: r.Max, Wrapped: ErrParameterBounds}
		}
	}
	return nil
}

// Quantity is the particle count for a surface of w×h at the given density.
func Quantity(w, h int, density float64) int {
	if density <= 0 || w <= 0 || h <= 0 {
		return 0
	}
	return int(float64(w) * float64(h) / density)
}
