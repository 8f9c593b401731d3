package scenario

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pagefx/internal/config"
	"github.com/san-kum/pagefx/internal/metrics"
	"github.com/san-kum/pagefx/internal/particle"
	"github.com/san-kum/pagefx/internal/sim"
)

// Scenario defines a scripted sequence of frames and interactions.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Profile     string `yaml:"profile"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Seed        int64  `yaml:"seed"`
	Steps       []Step `yaml:"steps"`
}

// Step applies its interactions, in field order, and then runs Frames frames.
type Step struct {
	Resize  *Size  `yaml:"resize"`
	Pointer *Point `yaml:"pointer"`
	Leave   bool   `yaml:"leave"`
	Frames  int    `yaml:"frames"`
}

type Size struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// StepResult summarizes the network after a step.
type StepResult struct {
	Index     int
	Frames    int
	Frozen    bool
	Particles int
	Links     int
	Pointer   bool
	Metrics   map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Profile == "" {
		sc.Profile = "orbit"
	}
	if sc.Width == 0 {
		sc.Width = config.DefaultWidth
	}
	if sc.Height == 0 {
		sc.Height = config.DefaultHeight
	}
	for i, st := range sc.Steps {
		if st.Frames < 0 {
			return nil, fmt.Errorf("step %d: frames must be non-negative", i+1)
		}
		if st.Resize != nil && (st.Resize.W <= 0 || st.Resize.H <= 0) {
			return nil, fmt.Errorf("step %d: resize needs a positive size", i+1)
		}
	}
	return &sc, nil
}

// Field attaches a field of the scenario's size to s, or to a blank
// surface when s is nil.
func (sc *Scenario) Field(s particle.Surface) (*particle.Field, error) {
	preset := config.GetPreset(sc.Profile)
	if preset == nil {
		return nil, fmt.Errorf("unknown profile: %s", sc.Profile)
	}
	opts, err := preset.Options()
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &particle.Blank{W: sc.Width, H: sc.Height}
	}
	s.Resize(sc.Width, sc.Height)
	return particle.Attach(s, opts, rand.New(rand.NewSource(sc.Seed)))
}

// Run executes every step against f. Observers see all frames.
func Run(ctx context.Context, sc *Scenario, f *particle.Field, observers ...sim.Observer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))
	loop := sim.New(f)
	for _, m := range metrics.Defaults() {
		loop.AddMetric(m)
	}
	for _, o := range observers {
		loop.AddObserver(o)
	}

	for i, st := range sc.Steps {
		net := f.Network()
		if st.Resize != nil {
			f.Resize(st.Resize.W, st.Resize.H)
		}
		if st.Pointer != nil {
			net.PointerMove(st.Pointer.X, st.Pointer.Y)
		}
		if st.Leave {
			net.PointerLeave()
		}

		res := StepResult{Index: i + 1, Metrics: map[string]float64{}}
		if st.Frames > 0 {
			out, err := loop.Run(ctx, sim.Config{Frames: st.Frames})
			if err != nil {
				return results, fmt.Errorf("step %d: %w", i+1, err)
			}
			res.Frames = out.Frames
			res.Frozen = out.Frozen
			res.Metrics = out.Metrics
		}
		res.Particles = net.Len()
		res.Links = len(net.Links())
		res.Pointer = net.Pointer() != nil
		results = append(results, res)
	}

	return results, nil
}
