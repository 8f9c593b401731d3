package particle

// Surface is the drawing target of a Field. Coordinates are surface pixels
// with the origin at the top left; alpha is in [0,1].
type Surface interface {
	Size() (w, h int)
	Resize(w, h int)
	Clear()
	Line(x0, y0, x1, y1, width float64, color string, alpha float64)
	Circle(x, y, r float64, color string, alpha float64)
}

// Blank is a Surface that only tracks its size. Headless runs and benchmarks
// step a network on it.
type Blank struct {
	W, H int
}

func (b *Blank) Size() (int, int)                                { return b.W, b.H }
func (b *Blank) Resize(w, h int)                                 { b.W, b.H = w, h }
func (b *Blank) Clear()                                          {}
func (b *Blank) Line(_, _, _, _, _ float64, _ string, _ float64) {}
func (b *Blank) Circle(_, _, _ float64, _ string, _ float64)     {}
