package particle

type line struct {
	x0, y0, x1, y1, alpha float64
}

type circle struct {
	x, y, r, alpha float64
}

type testSurface struct {
	w, h    int
	clears  int
	lines   []line
	circles []circle
}

func newTestSurface(w, h int) *testSurface { return &testSurface{w: w, h: h} }

func (s *testSurface) Size() (int, int) { return s.w, s.h }
func (s *testSurface) Resize(w, h int)  { s.w, s.h = w, h }
func (s *testSurface) Clear() {
	s.clears++
	s.lines = s.lines[:0]
	s.circles = s.circles[:0]
}
func (s *testSurface) Line(x0, y0, x1, y1, width float64, color string, alpha float64) {
	s.lines = append(s.lines, line{x0, y0, x1, y1, alpha})
}
func (s *testSurface) Circle(x, y, r float64, color string, alpha float64) {
	s.circles = append(s.circles, circle{x, y, r, alpha})
}
