// Package fade maps an element's scroll position to an opacity.
package fade

import "math"

// EndRatio places the fully transparent line at three quarters of the
// viewport height.
const EndRatio = 0.75

// Opacity is 1 while top is at or below start, 0 once it reaches end, and
// linear in between.
func Opacity(top, start, end float64) float64 {
	if start == end {
		if top >= end {
			return 1
		}
		return 0
	}
	return math.Max(0, math.Min(1, (top-end)/(start-end)))
}

// Tracker remembers where each tracked element started.
type Tracker struct {
	viewport float64
	starts   map[string]float64
}

func NewTracker(viewport float64) *Tracker {
	return &Tracker{viewport: viewport, starts: make(map[string]float64)}
}

// Track records the starting top offset for key. Tracking the same key
// again replaces the earlier start.
func (t *Tracker) Track(key string, startTop float64) {
	t.starts[key] = startTop
}

func (t *Tracker) Len() int { return len(t.starts) }

func (t *Tracker) FadeEnd() float64 { return t.viewport * EndRatio }

// SetViewport changes the viewport height used for FadeEnd.
func (t *Tracker) SetViewport(h float64) { t.viewport = h }

// Scroll returns the opacity for every tracked key present in tops.
func (t *Tracker) Scroll(tops map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(tops))
	end := t.FadeEnd()
	for key, top := range tops {
		start, ok := t.starts[key]
		if !ok {
			continue
		}
		out[key] = Opacity(top, start, end)
	}
	return out
}
