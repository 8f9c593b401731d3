package sim

import "github.com/san-kum/pagefx/internal/particle"

// Observer is notified after every frame.
type Observer interface {
	OnFrame(frame int, net *particle.Network)
}

// Metric is an Observer that reduces the frames it saw to one value.
type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

type Config struct {
	// Frames bounds the run; zero means run until cancelled or frozen,
	// which is only allowed in realtime mode.
	Frames int
	// FPS paces realtime runs.
	FPS      int
	Realtime bool
}

func DefaultConfig() Config {
	return Config{
		Frames: 600,
		FPS:    60,
	}
}

type Result struct {
	Frames  int
	Frozen  bool
	Metrics map[string]float64
}
