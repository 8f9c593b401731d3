package metrics

import (
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/pagefx/internal/particle"
)

func linkedNetwork(t *testing.T) *particle.Network {
	t.Helper()
	opts := particle.DefaultOptions()
	opts.Density = 1e12
	f, err := particle.Attach(&particle.Blank{W: 10, H: 10}, opts, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	net := f.Network()
	net.PointerMove(0, 0)
	return net
}

func TestMetricsOnEmptyNetwork(t *testing.T) {
	net := linkedNetwork(t)
	net.PointerLeave()
	net.Step()

	for _, m := range Defaults() {
		m.OnFrame(0, net)
		if m.Value() != 0 {
			t.Errorf("%s: expected 0 on empty network, got %v", m.Name(), m.Value())
		}
	}
}

func TestParticleCountAndOpacity(t *testing.T) {
	net := linkedNetwork(t)
	net.Step()

	pc := NewParticleCount()
	pc.OnFrame(0, net)
	if pc.Value() != 1 {
		t.Errorf("particles = %v, want 1", pc.Value())
	}

	mo := NewMeanOpacity()
	mo.OnFrame(0, net)
	if mo.Value() != 1 {
		t.Errorf("opacity = %v, want 1 for the pointer particle", mo.Value())
	}

	pc.Reset()
	mo.Reset()
	if pc.Value() != 0 || mo.Value() != 0 {
		t.Error("reset did not clear")
	}
}

func TestTraceCapacity(t *testing.T) {
	net := linkedNetwork(t)
	tr := NewTrace(3)
	for i := 0; i < 10; i++ {
		net.Step()
		tr.OnFrame(i, net)
	}
	samples := tr.Samples()
	if len(samples) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(samples))
	}
	if samples[0].Frame != 7 || samples[2].Frame != 9 {
		t.Errorf("trace kept wrong frames: %+v", samples)
	}
	if len(tr.Links()) != 3 {
		t.Errorf("series length = %d", len(tr.Links()))
	}
}

func TestLinkMetrics(t *testing.T) {
	opts := particle.DefaultOptions()
	opts.LineDistance = 200
	f, err := particle.Attach(&particle.Blank{W: 800, H: 600}, opts, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	net := f.Network()

	lc, la := NewLinkCount(), NewMeanLinkAlpha()
	total, sum, n := 0, 0.0, 0
	for frame := 0; frame < 5; frame++ {
		net.Step()
		lc.OnFrame(frame, net)
		la.OnFrame(frame, net)
		total += len(net.Links())
		for _, l := range net.Links() {
			sum += l.Alpha
			n++
		}
	}
	if want := float64(total) / 5; math.Abs(lc.Value()-want) > 1e-12 {
		t.Errorf("links = %v, want %v", lc.Value(), want)
	}
	if n > 0 {
		if want := sum / float64(n); math.Abs(la.Value()-want) > 1e-12 {
			t.Errorf("link alpha = %v, want %v", la.Value(), want)
		}
		if la.Value() <= 0 || la.Value() >= 1 {
			t.Errorf("link alpha out of range: %v", la.Value())
		}
	}
}
