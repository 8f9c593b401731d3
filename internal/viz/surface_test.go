package viz

import (
	"math/rand"
	"testing"

	"github.com/san-kum/pagefx/internal/particle"
)

func TestTermSurfaceSize(t *testing.T) {
	s := NewTermSurface(40, 10, 4)
	if w, h := s.Size(); w != 320 || h != 160 {
		t.Errorf("size = %dx%d, want 320x160", w, h)
	}
	s.Resize(640, 320)
	if s.Canvas.Width != 80 || s.Canvas.Height != 20 {
		t.Errorf("canvas = %dx%d, want 80x20", s.Canvas.Width, s.Canvas.Height)
	}
	if w, h := s.Cells(80, 20); w != 640 || h != 320 {
		t.Errorf("cells = %dx%d", w, h)
	}
}

func TestTermSurfaceSkipsFaintStrokes(t *testing.T) {
	s := NewTermSurface(10, 5, 1)
	s.Line(0, 0, 10, 0, 1, "#929292", 0.05)
	s.Circle(5, 5, 1, "#aaa", 0.1)
	for _, row := range s.Canvas.Grid {
		for _, r := range row {
			if r != blank {
				t.Fatal("faint stroke drawn")
			}
		}
	}
	s.Line(0, 0, 10, 0, 1, "#929292", 0.9)
	if !s.Canvas.IsSet(5, 0) {
		t.Error("strong stroke missing")
	}
}

func TestTermSurfaceInk(t *testing.T) {
	s := NewTermSurface(10, 5, 1)
	s.Circle(2, 2, 0, "#aaa", 1)
	if got := s.Canvas.Ink[0][1]; got != "#aaa" {
		t.Errorf("ink = %q, want the configured color", got)
	}
	s.Palette = ThemeRetroGreen.Palette("#929292", []string{"#aaa"})
	s.Circle(2, 2, 0, "#aaa", 1)
	if got := s.Canvas.Ink[0][1]; got != ThemeRetroGreen.Particle {
		t.Errorf("ink = %q, want theme particle color", got)
	}
}

func TestTermSurfaceDrivesNetwork(t *testing.T) {
	s := NewTermSurface(60, 20, 5)
	f, err := particle.Attach(s, particle.DefaultOptions(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	for i := 0; i < 200; i++ {
		f.Network().Step()
	}
	lit := 0
	for _, row := range s.Canvas.Grid {
		for _, r := range row {
			if r != blank {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("nothing drawn after fade-in")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != "minimal" {
		t.Error("unknown theme should fall back to minimal")
	}
	seen := map[string]bool{}
	th := Themes[0]
	for range Themes {
		seen[th.Name] = true
		th = NextTheme(th)
	}
	if len(seen) != len(Themes) || th.Name != Themes[0].Name {
		t.Error("NextTheme does not cycle through every theme")
	}
	if len(ThemeMinimal.Palette("#929292", []string{"#aaa"})) != 0 {
		t.Error("minimal theme should keep page colors")
	}
}
