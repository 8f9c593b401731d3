package particle

import (
	"math/rand"
	refl "reflect"
)

// Field binds a Network to a drawing surface and tracks its dimensions.
type Field struct {
	surface       Surface
	width, height int
	network       *Network
}

// Attach measures the surface, builds a network on it and populates the
// initial particle set. A nil surface, including a nil pointer of a
// concrete surface type, yields ErrNoContainer.
func Attach(s Surface, opts Options, rng *rand.Rand) (*Field, error) {
	if isNil(s) {
		return nil, ErrNoContainer
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	w, h := s.Size()
	f := &Field{surface: s, width: w, height: h}
	f.network = newNetwork(s, opts, rng)
	f.network.Populate()
	return f, nil
}

// Network returns the bound network.
func (f *Field) Network() *Network { return f.network }

// Surface returns the drawing surface.
func (f *Field) Surface() Surface { return f.surface }

// Size is the current surface size.
func (f *Field) Size() (int, int) { return f.width, f.height }

// Resize clears the surface, adopts the new dimensions and regenerates the
// particle set from scratch.
func (f *Field) Resize(w, h int) {
	f.surface.Clear()
	f.surface.Resize(w, h)
	f.width, f.height = f.surface.Size()
	f.network.Populate()
}

func isNil(s Surface) bool {
	if s == nil {
		return true
	}
	v := refl.ValueOf(s)
	switch v.Kind() {
	case refl.Pointer, refl.Map, refl.Slice, refl.Func, refl.Interface:
		return v.IsNil()
	}
	return false
}
