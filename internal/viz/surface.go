package viz

import (
	"math"

	"github.com/san-kum/pagefx/internal/particle"
)

// TermSurface draws a particle network on a braille canvas. Surface
// coordinates are Scale logical pixels per braille dot, so link distances
// tuned for a page keep their look in a terminal.
type TermSurface struct {
	Canvas *Canvas
	Scale  float64
	// MinAlpha drops faint strokes a terminal cannot blend.
	MinAlpha float64
	// Palette remaps page colors to terminal colors; unmapped colors pass
	// through.
	Palette map[string]string
}

var _ particle.Surface = (*TermSurface)(nil)

func NewTermSurface(cols, rows int, scale float64) *TermSurface {
	if scale <= 0 {
		scale = 1
	}
	return &TermSurface{
		Canvas:   NewCanvas(cols, rows),
		Scale:    scale,
		MinAlpha: 0.2,
	}
}

func (s *TermSurface) Size() (int, int) {
	w, h := s.Canvas.Dots()
	return int(float64(w) * s.Scale), int(float64(h) * s.Scale)
}

// Resize takes logical pixels and keeps whole braille cells.
func (s *TermSurface) Resize(w, h int) {
	cols := int(float64(w) / s.Scale / 2)
	rows := int(float64(h) / s.Scale / 4)
	s.Canvas.Resize(cols, rows)
}

// Cells converts a terminal cell size into the logical size Resize expects.
func (s *TermSurface) Cells(cols, rows int) (int, int) {
	return int(float64(cols*2) * s.Scale), int(float64(rows*4) * s.Scale)
}

func (s *TermSurface) Clear() { s.Canvas.Clear() }

func (s *TermSurface) Line(x0, y0, x1, y1, width float64, color string, alpha float64) {
	if alpha < s.MinAlpha {
		return
	}
	s.Canvas.DrawLine(s.dot(x0), s.dot(y0), s.dot(x1), s.dot(y1), s.ink(color))
}

func (s *TermSurface) Circle(x, y, r float64, color string, alpha float64) {
	if alpha < s.MinAlpha {
		return
	}
	s.Canvas.Disc(s.dot(x), s.dot(y), r/s.Scale, s.ink(color))
}

func (s *TermSurface) dot(v float64) int {
	return int(math.Floor(v / s.Scale))
}

func (s *TermSurface) ink(color string) string {
	if mapped, ok := s.Palette[color]; ok {
		return mapped
	}
	return color
}
