package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/pagefx/internal/particle"
)

// SVGSurface records one frame as SVG elements. Clear drops the frame so
// only the latest one is kept.
type SVGSurface struct {
	Width, Height int
	Background    string
	elems         []string
}

var _ particle.Surface = (*SVGSurface)(nil)

func NewSVGSurface(w, h int) *SVGSurface {
	return &SVGSurface{Width: w, Height: h, Background: "#0a0a0a"}
}

func (s *SVGSurface) Size() (int, int) { return s.Width, s.Height }
func (s *SVGSurface) Resize(w, h int)  { s.Width, s.Height = w, h }
func (s *SVGSurface) Clear()           { s.elems = s.elems[:0] }

func (s *SVGSurface) Line(x0, y0, x1, y1, width float64, color string, alpha float64) {
	s.elems = append(s.elems, fmt.Sprintf(
		`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.3f"/>`,
		x0, y0, x1, y1, color, width, alpha))
}

func (s *SVGSurface) Circle(x, y, r float64, color string, alpha float64) {
	s.elems = append(s.elems, fmt.Sprintf(
		`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.3f"/>`,
		x, y, r, color, alpha))
}

// Elements is the number of primitives in the current frame.
func (s *SVGSurface) Elements() int { return len(s.elems) }

// String renders the current frame as a standalone document.
func (s *SVGSurface) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.Width, s.Height, s.Width, s.Height, s.Background))
	for _, e := range s.elems {
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots a per-frame series, such as link counts, as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	rangeV *= 1.2

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minV)/rangeV*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
