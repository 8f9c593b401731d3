package particle

import (
	"math"
	"math/rand"
)

// Particle is a single point mass of the network.
type Particle struct {
	X, Y   float64
	VX, VY float64

	// Orbit state, used by MotionOrbit only.
	CX, CY       float64
	OrbitRadius  float64
	Angle        float64
	AngularSpeed float64

	Radius  float64
	Color   string
	Opacity float64

	// Pointer marks the interaction particle; it is positioned by input and
	// never advanced by the simulation.
	Pointer bool
}

func (r Range) sample(rng *rand.Rand) float64 {
	return rng.Float64()*(r.Max-r.Min) + r.Min
}

func pick(rng *rand.Rand, colors []string) string {
	return colors[rng.Intn(len(colors))]
}

func newParticle(rng *rand.Rand, w, h float64, o Options) *Particle {
	p := &Particle{
		Color:  pick(rng, o.ParticleColors),
		Radius: o.Radius.sample(rng),
	}
	switch o.Motion {
	case MotionDrift:
		p.X = rng.Float64() * w
		p.Y = rng.Float64() * h
		p.VX = o.DriftSpeed.sample(rng) * o.VelocityScale
		p.VY = o.DriftSpeed.sample(rng) * o.VelocityScale
	default:
		p.Angle = rng.Float64() * math.Pi * 2
		p.OrbitRadius = o.OrbitRadius.sample(rng)
		p.CX = rng.Float64() * w
		p.CY = rng.Float64() * h
		p.AngularSpeed = o.AngularSpeed.sample(rng) * o.VelocityScale
		p.place()
	}
	return p
}

func newPointer(x, y float64, o Options) *Particle {
	return &Particle{
		X:       x,
		Y:       y,
		Radius:  o.Radius.Max,
		Color:   o.ParticleColors[0],
		Opacity: 1,
		Pointer: true,
	}
}

func (p *Particle) place() {
	p.X = p.CX + math.Cos(p.Angle)*p.OrbitRadius
	p.Y = p.CY + math.Sin(p.Angle)*p.OrbitRadius
}

// advance moves the particle one frame inside a w×h surface.
func (p *Particle) advance(m Motion, w, h, margin float64) {
	if p.Pointer {
		return
	}
	if m == MotionOrbit {
		p.Angle += p.AngularSpeed
		p.place()
		return
	}
	p.X += p.VX
	p.Y += p.VY
	p.VX = reflect(p.X, p.VX, w, margin)
	p.VY = reflect(p.Y, p.VY, h, margin)
}

// reflect flips v only while pos is outside [-margin, size+margin] and still
// heading outward, so one crossing yields one flip.
func reflect(pos, v, size, margin float64) float64 {
	if (pos > size+margin && v > 0) || (pos < -margin && v < 0) {
		return -v
	}
	return v
}

func (p *Particle) fadeIn(step float64) {
	p.Opacity = math.Min(1, p.Opacity+step)
}

// Distance is the Euclidean distance between two particles.
func Distance(a, b *Particle) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// LinkAlpha is the link opacity at distance d for a threshold. It is 0 at or
// beyond the threshold and approaches 1 as d goes to 0.
func LinkAlpha(d, threshold float64) float64 {
	if threshold <= 0 || d >= threshold {
		return 0
	}
	return (threshold - d) / threshold
}
