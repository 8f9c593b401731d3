package export

import (
	"bytes"
	"image/color"
	"image/gif"
	"math/rand"
	"strings"
	"testing"

	"github.com/san-kum/pagefx/internal/particle"
)

func TestSVGSurfaceFrame(t *testing.T) {
	s := NewSVGSurface(200, 100)
	s.Line(0, 0, 10, 10, 0.7, "#929292", 0.5)
	s.Circle(5, 5, 2, "#aaa", 1)
	out := s.String()
	for _, want := range []string{`width="200"`, `stroke-opacity="0.500"`, `<circle cx="5.0"`, "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	s.Clear()
	if s.Elements() != 0 || strings.Contains(s.String(), "<line") {
		t.Error("clear kept old frame")
	}
}

func TestSVGSurfaceWithNetwork(t *testing.T) {
	s := NewSVGSurface(800, 600)
	f, err := particle.Attach(s, particle.DefaultOptions(), rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatal(err)
	}
	f.Network().Step()
	net := f.Network()
	if want := net.Len() + len(net.Links()); s.Elements() != want {
		t.Errorf("elements = %d, want %d", s.Elements(), want)
	}
}

func TestSeriesToSVG(t *testing.T) {
	if SeriesToSVG([]float64{1}, 100, 50, "#0f0") != "" {
		t.Error("single point should produce nothing")
	}
	out := SeriesToSVG([]float64{1, 2, 3, 2}, 100, 50, "#0f0")
	if !strings.Contains(out, "M0.0,") || strings.Count(out, " L") != 3 {
		t.Errorf("unexpected path: %s", out)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#aaa", color.RGBA{0xaa, 0xaa, 0xaa, 255}, true},
		{"#929292", color.RGBA{0x92, 0x92, 0x92, 255}, true},
		{"929292", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
		{"#0088FF", color.RGBA{0x00, 0x88, 0xff, 255}, true},
	}
	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseHexColor(%q) err = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestGIFRecorder(t *testing.T) {
	opts := particle.DefaultOptions()
	r, err := NewGIFRecorder(320, 200, "#000000", append([]string{opts.LineColor}, opts.ParticleColors...))
	if err != nil {
		t.Fatal(err)
	}
	if len(r.palette) != 1+2*alphaLevels {
		t.Errorf("palette size = %d", len(r.palette))
	}

	f, err := particle.Attach(r, opts, rand.New(rand.NewSource(2)))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		f.Network().Step()
		r.Capture()
	}

	var buf bytes.Buffer
	if err := r.Encode(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	anim, err := gif.DecodeAll(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(anim.Image) != 5 {
		t.Errorf("frames = %d, want 5", len(anim.Image))
	}
}

func TestGIFRecorderUnknownInk(t *testing.T) {
	r, err := NewGIFRecorder(10, 10, "#000", []string{"#fff"})
	if err != nil {
		t.Fatal(err)
	}
	r.Circle(5, 5, 2, "#123456", 1)
	for _, px := range r.current.Pix {
		if px != 0 {
			t.Fatal("unknown ink painted pixels")
		}
	}
	if err := r.Encode(&bytes.Buffer{}); err == nil {
		t.Error("encoding without frames should fail")
	}
	if _, err := NewGIFRecorder(10, 10, "black", nil); err == nil {
		t.Error("expected bad background to fail")
	}
}

func TestGIFRecorderStride(t *testing.T) {
	opts := particle.DefaultOptions()
	r, err := NewGIFRecorder(160, 120, "#ffffff", append([]string{opts.LineColor}, opts.ParticleColors...))
	if err != nil {
		t.Fatal(err)
	}
	r.SetStride(4)
	if r.Delay != 8 {
		t.Errorf("delay = %d, want 8", r.Delay)
	}

	f, err := particle.Attach(r, opts, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	for frame := 0; frame < 10; frame++ {
		f.Network().Step()
		r.OnFrame(frame, f.Network())
	}
	if r.Frames() != 3 {
		t.Errorf("kept %d frames, want 3 (0, 4, 8)", r.Frames())
	}

	r.SetStride(0)
	if r.Stride != 1 || r.Delay != 2 {
		t.Errorf("stride reset gave stride %d delay %d", r.Stride, r.Delay)
	}
}
