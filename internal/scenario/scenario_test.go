package scenario

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pagefx/internal/metrics"
	"github.com/san-kum/pagefx/internal/particle"
)

const script = `
name: hover
profile: orbit
width: 400
height: 300
seed: 7
steps:
  - frames: 5
  - pointer: {x: 100, y: 100}
    frames: 3
  - leave: true
    frames: 2
  - resize: {w: 600, h: 500}
    frames: 1
`

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hover.yaml")
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if sc.Name != "hover" || sc.Width != 400 || sc.Seed != 7 {
		t.Errorf("unexpected header: %+v", sc)
	}
	if len(sc.Steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(sc.Steps))
	}
	if sc.Steps[1].Pointer == nil || sc.Steps[1].Pointer.X != 100 {
		t.Errorf("pointer step not parsed: %+v", sc.Steps[1])
	}
	if !sc.Steps[2].Leave {
		t.Error("leave step not parsed")
	}
}

func TestParseDefaultsAndErrors(t *testing.T) {
	sc, err := Parse([]byte("steps: [{frames: 1}]"))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Profile != "orbit" || sc.Width != 800 || sc.Height != 600 {
		t.Errorf("defaults not applied: %+v", sc)
	}

	tests := []struct {
		name string
		data string
	}{
		{"negative frames", "steps: [{frames: -1}]"},
		{"empty resize", "steps: [{resize: {w: 0, h: 10}}]"},
		{"bad yaml", "steps: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRun(t *testing.T) {
	sc, err := Parse([]byte(script))
	if err != nil {
		t.Fatal(err)
	}
	f, err := sc.Field(nil)
	if err != nil {
		t.Fatalf("field failed: %v", err)
	}

	trace := metrics.NewTrace(0)
	results, err := Run(context.Background(), sc, f, trace)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}

	base := particle.Quantity(400, 300, particle.DefaultOptions().Density)
	if results[0].Particles != base || results[0].Pointer {
		t.Errorf("step 1: %+v", results[0])
	}
	if results[1].Particles != base+1 || !results[1].Pointer {
		t.Errorf("step 2 should carry the pointer: %+v", results[1])
	}
	if results[2].Particles != base || results[2].Pointer {
		t.Errorf("step 3 should drop the pointer: %+v", results[2])
	}
	if want := particle.Quantity(600, 500, particle.DefaultOptions().Density); results[3].Particles != want {
		t.Errorf("step 4 particles = %d, want %d", results[3].Particles, want)
	}
	if w, h := f.Size(); w != 600 || h != 500 {
		t.Errorf("field size = %dx%d", w, h)
	}
	if got := len(trace.Samples()); got != 11 {
		t.Errorf("trace saw %d frames, want 11", got)
	}
	if results[0].Metrics["particles"] != float64(base) {
		t.Errorf("metrics = %v", results[0].Metrics)
	}
}

func TestRunUnknownProfile(t *testing.T) {
	sc := &Scenario{Profile: "nope", Width: 10, Height: 10}
	if _, err := sc.Field(nil); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestRunFrozenProfile(t *testing.T) {
	sc, err := Parse([]byte("profile: frozen\nsteps: [{frames: 10}]"))
	if err != nil {
		t.Fatal(err)
	}
	f, err := sc.Field(nil)
	if err != nil {
		t.Fatal(err)
	}
	results, err := Run(context.Background(), sc, f)
	if err != nil {
		t.Fatal(err)
	}
	if !results[0].Frozen || results[0].Frames != 1 {
		t.Errorf("frozen profile should stop after one frame: %+v", results[0])
	}
}
