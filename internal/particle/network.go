package particle

import "math/rand"

// Link is a pair of particles closer than the line distance.
type Link struct {
	A, B     *Particle
	Distance float64
	Alpha    float64
}

// Network owns the live particle set and runs the per-frame simulation.
type Network struct {
	opts    Options
	surface Surface
	rng     *rand.Rand

	particles []*Particle
	pointer   *Particle
	links     []Link

	target  int
	spawned int
	frame   int
}

func newNetwork(s Surface, opts Options, rng *rand.Rand) *Network {
	return &Network{opts: opts, surface: s, rng: rng}
}

// Options returns the network configuration.
func (n *Network) Options() Options { return n.opts }

// Particles returns the live set in draw order. The slice is shared.
func (n *Network) Particles() []*Particle { return n.particles }

// Len is the number of live particles, including the interaction particle.
func (n *Network) Len() int { return len(n.particles) }

// Target is the simulated particle count the network populates to.
func (n *Network) Target() int { return n.target }

// Frame is the number of frames stepped since the last Populate.
func (n *Network) Frame() int { return n.frame }

// Links returns the pairs linked on the last frame.
func (n *Network) Links() []Link { return n.links }

// Pointer returns the interaction particle, or nil.
func (n *Network) Pointer() *Particle { return n.pointer }

// Populate discards every particle and rebuilds the set for the current
// surface size.
func (n *Network) Populate() {
	w, h := n.surface.Size()
	n.particles = n.particles[:0]
	n.pointer = nil
	n.links = n.links[:0]
	n.frame = 0
	n.spawned = 0
	n.target = Quantity(w, h, n.opts.Density)
	if n.opts.Spawn == SpawnBatch {
		for n.spawned < n.target {
			n.add()
		}
	}
}

func (n *Network) add() {
	w, h := n.surface.Size()
	p := newParticle(n.rng, float64(w), float64(h), n.opts)
	n.particles = append(n.particles, p)
	n.spawned++
}

func (n *Network) spawn() {
	if n.opts.Spawn != SpawnStaggered || n.spawned >= n.target {
		return
	}
	if n.frame%n.opts.SpawnInterval == 0 {
		n.add()
	}
}

// Step runs one frame: clear, draw links, advance and draw particles. It
// returns false when the velocity scale is zero, meaning the animation is
// frozen and the caller should not schedule another frame.
func (n *Network) Step() bool {
	n.spawn()

	w, h := n.surface.Size()
	fw, fh := float64(w), float64(h)
	o := n.opts

	n.surface.Clear()
	n.links = n.links[:0]
	for i := 0; i < len(n.particles); i++ {
		for j := i + 1; j < len(n.particles); j++ {
			p1, p2 := n.particles[i], n.particles[j]
			d := Distance(p1, p2)
			if d >= o.LineDistance {
				continue
			}
			alpha := LinkAlpha(d, o.LineDistance)
			if o.LinkFade {
				alpha *= p1.Opacity * p2.Opacity
			}
			n.surface.Line(p1.X, p1.Y, p2.X, p2.Y, o.LineWidth, o.LineColor, alpha)
			n.links = append(n.links, Link{A: p1, B: p2, Distance: d, Alpha: alpha})
		}
	}

	for _, p := range n.particles {
		p.advance(o.Motion, fw, fh, o.Margin)
		p.fadeIn(o.FadeStep)
		n.surface.Circle(p.X, p.Y, p.Radius, p.Color, p.Opacity)
	}

	n.frame++
	return o.VelocityScale != 0
}

// PointerMove tracks the pointer, creating the interaction particle on the
// first move.
func (n *Network) PointerMove(x, y float64) {
	if n.pointer == nil {
		n.pointer = newPointer(x, y, n.opts)
		n.particles = append(n.particles, n.pointer)
		return
	}
	n.pointer.X, n.pointer.Y = x, y
}

// PointerLeave removes the interaction particle from the live set.
func (n *Network) PointerLeave() {
	if n.pointer == nil {
		return
	}
	for i, p := range n.particles {
		if p == n.pointer {
			n.particles = append(n.particles[:i], n.particles[i+1:]...)
			break
		}
	}
	n.pointer = nil
}
