package metrics

import "github.com/san-kum/pagefx/internal/particle"

// Metric matches sim.Metric without importing the loop.
type Metric interface {
	Name() string
	OnFrame(frame int, net *particle.Network)
	Value() float64
	Reset()
}

// Sample is one frame's summary.
type Sample struct {
	Frame       int
	Particles   int
	Links       int
	MeanAlpha   float64
	MeanOpacity float64
}

// Trace records a Sample per frame, keeping at most Capacity of the newest.
type Trace struct {
	Capacity int
	samples  []Sample
}

func NewTrace(capacity int) *Trace {
	return &Trace{Capacity: capacity, samples: make([]Sample, 0, capacity)}
}

func (t *Trace) OnFrame(frame int, net *particle.Network) {
	s := Sample{
		Frame:       frame,
		Particles:   net.Len(),
		Links:       len(net.Links()),
		MeanOpacity: meanOpacity(net.Particles()),
	}
	if s.Links > 0 {
		sum := 0.0
		for _, l := range net.Links() {
			sum += l.Alpha
		}
		s.MeanAlpha = sum / float64(s.Links)
	}
	t.samples = append(t.samples, s)
	if t.Capacity > 0 && len(t.samples) > t.Capacity {
		t.samples = t.samples[1:]
	}
}

func (t *Trace) Samples() []Sample { return t.samples }

// Links returns the link counts as a series for plotting.
func (t *Trace) Links() []float64 {
	out := make([]float64, len(t.samples))
	for i, s := range t.samples {
		out[i] = float64(s.Links)
	}
	return out
}

func (t *Trace) Reset() { t.samples = t.samples[:0] }
