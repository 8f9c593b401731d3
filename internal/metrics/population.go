package metrics

import "github.com/san-kum/pagefx/internal/particle"

// ParticleCount reports the live set size seen on the last frame.
type ParticleCount struct {
	last int
}

func NewParticleCount() *ParticleCount { return &ParticleCount{} }

func (p *ParticleCount) Name() string { return "particles" }

func (p *ParticleCount) OnFrame(frame int, net *particle.Network) {
	p.last = net.Len()
}

func (p *ParticleCount) Value() float64 { return float64(p.last) }
func (p *ParticleCount) Reset()         { p.last = 0 }

// MeanOpacity reports the mean particle opacity on the last frame.
type MeanOpacity struct {
	last float64
}

func NewMeanOpacity() *MeanOpacity { return &MeanOpacity{} }

func (m *MeanOpacity) Name() string { return "opacity" }

func (m *MeanOpacity) OnFrame(frame int, net *particle.Network) {
	m.last = meanOpacity(net.Particles())
}

func (m *MeanOpacity) Value() float64 { return m.last }
func (m *MeanOpacity) Reset()         { m.last = 0 }

func meanOpacity(ps []*particle.Particle) float64 {
	if len(ps) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range ps {
		sum += p.Opacity
	}
	return sum / float64(len(ps))
}

// Defaults is the metric set every recorded run carries.
func Defaults() []Metric {
	return []Metric{NewLinkCount(), NewMeanLinkAlpha(), NewParticleCount(), NewMeanOpacity()}
}
