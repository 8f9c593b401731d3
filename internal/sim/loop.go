package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/pagefx/internal/particle"
)

// Loop drives a field's network frame after frame.
type Loop struct {
	field     *particle.Field
	metrics   []Metric
	observers []Observer
	frozen    bool
}

func New(f *particle.Field) *Loop {
	return &Loop{
		field:     f,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (l *Loop) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// Run steps the network until the frame budget is spent, the context is
// cancelled or the network freezes.
func (l *Loop) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{Metrics: make(map[string]float64)}
	for _, m := range l.metrics {
		m.Reset()
	}

	err := l.RunWithCallback(ctx, cfg, func(frame int, net *particle.Network) bool {
		result.Frames++
		return true
	})
	result.Frozen = l.frozen

	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}

// RunWithCallback is Run with a per-frame hook; returning false from the
// callback stops the loop.
func (l *Loop) RunWithCallback(ctx context.Context, cfg Config, callback func(int, *particle.Network) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}
	l.frozen = false

	var tick <-chan time.Time
	if cfg.Realtime {
		ticker := time.NewTicker(frameInterval(cfg.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	net := l.field.Network()
	for frame := 0; cfg.Frames == 0 || frame < cfg.Frames; frame++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}

		more := net.Step()
		for _, m := range l.metrics {
			m.OnFrame(frame, net)
		}
		for _, o := range l.observers {
			o.OnFrame(frame, net)
		}
		if !callback(frame, net) {
			return nil
		}
		if !more {
			l.frozen = true
			return nil
		}
	}
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.Frames < 0 {
		return fmt.Errorf("frames must be non-negative, got %d", cfg.Frames)
	}
	if cfg.Realtime && (cfg.FPS <= 0 || frameInterval(cfg.FPS) <= 0) {
		return fmt.Errorf("fps must be between 1 and %d, got %d", time.Second, cfg.FPS)
	}
	if !cfg.Realtime && cfg.Frames == 0 {
		return fmt.Errorf("headless runs need a frame budget")
	}
	return nil
}

func frameInterval(fps int) time.Duration {
	return time.Second / time.Duration(fps)
}
