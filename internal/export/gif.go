package export

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/pagefx/internal/particle"
)

// alphaLevels is how many blend steps each ink gets in the palette.
const alphaLevels = 4

// GIFRecorder is a Surface that rasterizes frames into an animated GIF.
// Call Capture after each Step to keep the frame, or register it as a frame
// observer and let Stride pick the frames. Every kept frame stays in memory
// until Encode, Width*Height bytes each.
type GIFRecorder struct {
	Width, Height int
	// Delay between kept frames in 100ths of a second.
	Delay int
	// Stride keeps every Stride-th frame in OnFrame; values below 1 keep all.
	Stride int

	background color.RGBA
	palette    color.Palette
	inks       map[string]int
	current    *image.Paletted
	frames     []*image.Paletted
}

var _ particle.Surface = (*GIFRecorder)(nil)

// NewGIFRecorder prepares a palette for the given inks over a background.
func NewGIFRecorder(w, h int, background string, inks []string) (*GIFRecorder, error) {
	bg, err := ParseHexColor(background)
	if err != nil {
		return nil, err
	}
	r := &GIFRecorder{
		Width:      w,
		Height:     h,
		Delay:      2,
		Stride:     1,
		background: bg,
		palette:    color.Palette{bg},
		inks:       make(map[string]int),
	}
	for _, ink := range inks {
		if _, ok := r.inks[ink]; ok {
			continue
		}
		c, err := ParseHexColor(ink)
		if err != nil {
			return nil, err
		}
		if len(r.palette)+alphaLevels > 256 {
			return nil, fmt.Errorf("too many inks for a gif palette: %d", len(inks))
		}
		r.inks[ink] = len(r.palette)
		for lvl := 1; lvl <= alphaLevels; lvl++ {
			r.palette = append(r.palette, blend(bg, c, float64(lvl)/alphaLevels))
		}
	}
	r.Clear()
	return r, nil
}

func (r *GIFRecorder) Size() (int, int) { return r.Width, r.Height }

func (r *GIFRecorder) Resize(w, h int) {
	r.Width, r.Height = w, h
	r.Clear()
}

func (r *GIFRecorder) Clear() {
	r.current = image.NewPaletted(image.Rect(0, 0, r.Width, r.Height), r.palette)
}

func (r *GIFRecorder) index(ink string, alpha float64) (uint8, bool) {
	base, ok := r.inks[ink]
	if !ok || alpha <= 0 {
		return 0, false
	}
	lvl := int(math.Ceil(alpha*alphaLevels)) - 1
	if lvl >= alphaLevels {
		lvl = alphaLevels - 1
	}
	if lvl < 0 {
		lvl = 0
	}
	return uint8(base + lvl), true
}

func (r *GIFRecorder) Line(x0, y0, x1, y1, width float64, ink string, alpha float64) {
	idx, ok := r.index(ink, alpha)
	if !ok {
		return
	}
	ax, ay, bx, by := int(x0), int(y0), int(x1), int(y1)
	dx, dy := absInt(bx-ax), absInt(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx - dy
	for {
		r.current.SetColorIndex(ax, ay, idx)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

func (r *GIFRecorder) Circle(x, y, rad float64, ink string, alpha float64) {
	idx, ok := r.index(ink, alpha)
	if !ok {
		return
	}
	ri := int(math.Ceil(rad))
	cx, cy := int(x), int(y)
	for py := -ri; py <= ri; py++ {
		for px := -ri; px <= ri; px++ {
			if float64(px*px+py*py) <= rad*rad {
				r.current.SetColorIndex(cx+px, cy+py, idx)
			}
		}
	}
}

// Capture appends the current frame to the animation.
func (r *GIFRecorder) Capture() {
	r.frames = append(r.frames, r.current)
	r.current = image.NewPaletted(r.current.Rect, r.palette)
}

// SetStride keeps every n-th frame and stretches the delay to match, so the
// animation plays at the same speed.
func (r *GIFRecorder) SetStride(n int) {
	if n < 1 {
		n = 1
	}
	r.Delay = r.Delay / max(r.Stride, 1) * n
	r.Stride = n
}

// OnFrame captures frame when it falls on the stride.
func (r *GIFRecorder) OnFrame(frame int, _ *particle.Network) {
	if r.Stride > 1 && frame%r.Stride != 0 {
		return
	}
	r.Capture()
}

func (r *GIFRecorder) Frames() int { return len(r.frames) }

// Encode writes every captured frame as a looping GIF.
func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return fmt.Errorf("no frames captured")
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}

func blend(bg, fg color.RGBA, a float64) color.RGBA {
	mix := func(b, f uint8) uint8 {
		return uint8(math.Round(float64(b) + (float64(f)-float64(b))*a))
	}
	return color.RGBA{mix(bg.R, fg.R), mix(bg.G, fg.G), mix(bg.B, fg.B), 255}
}

// ParseHexColor reads #rgb or #rrggbb.
func ParseHexColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{r, g, b, 255}, nil
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
