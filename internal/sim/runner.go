// Package sim drives a cloth simulation headlessly: it feeds
// wall-clock frames to the fixed-step driver for a requested duration,
// sampling metrics and notifying observers at each frame boundary.
package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/zackradisic/toilet-paper-twitter/internal/cloth"
	"github.com/zackradisic/toilet-paper-twitter/internal/metrics"
)

// Observer is notified after every frame, at a tick boundary.
type Observer interface {
	OnFrame(c *cloth.Cloth, t float64)
}

type Config struct {
	// Duration is the simulated wall-clock span in seconds.
	Duration float64
	// FrameTime is the wall-clock delta fed to the driver per frame.
	FrameTime float64
	// ValidateState aborts the run if any particle goes non-finite.
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Duration:      10.0,
		FrameTime:     1.0 / 60.0,
		ValidateState: true,
	}
}

type Result struct {
	Frames  int
	Ticks   uint64
	Metrics map[string]float64
	// Series holds each metric's per-frame samples, for plotting.
	Series map[string][]float64
	Times  []float64
	Errors []error
}

type SimError struct {
	Time    float64
	Frame   int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("frame %d (t=%.4f): %s", e.Frame, e.Time, e.Message)
}

// Runner owns a driver plus its metric and observer sets.
type Runner struct {
	phys      *cloth.Physics
	metrics   []metrics.Metric
	observers []Observer
}

func New(phys *cloth.Physics) *Runner {
	return &Runner{
		phys:      phys,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m metrics.Metric)   { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer)       { r.observers = append(r.observers, o) }
func (r *Runner) Physics() *cloth.Physics      { return r.phys }

// Run advances the simulation frame by frame until cfg.Duration has
// elapsed or the context is canceled. Partial results are returned
// alongside a context error.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	frames := int(cfg.Duration / cfg.FrameTime)
	result := &Result{
		Metrics: make(map[string]float64),
		Series:  make(map[string][]float64, len(r.metrics)),
		Times:   make([]float64, 0, frames),
		Errors:  make([]error, 0),
	}
	for _, m := range r.metrics {
		m.Reset()
		result.Series[m.Name()] = make([]float64, 0, frames)
	}

	frameDt := time.Duration(cfg.FrameTime * float64(time.Second))
	c := r.phys.Cloth()
	t := 0.0

	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		r.phys.Update(frameDt)
		t += cfg.FrameTime
		result.Frames++
		result.Times = append(result.Times, t)

		for _, m := range r.metrics {
			m.Observe(c, t)
			result.Series[m.Name()] = append(result.Series[m.Name()], m.Value())
		}
		for _, obs := range r.observers {
			obs.OnFrame(c, t)
		}

		if cfg.ValidateState && !c.IsValid() {
			err := SimError{Time: t, Frame: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}
	}

	result.Ticks = r.phys.Ticks()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

func validateConfig(cfg Config) error {
	if cfg.FrameTime <= 0 {
		return fmt.Errorf("frame time must be positive, got %f", cfg.FrameTime)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// RunWithCallback advances frames until the callback returns false or
// the duration elapses. Used by interactive front ends that need
// per-frame control without the metric machinery.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(c *cloth.Cloth, t float64) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	frameDt := time.Duration(cfg.FrameTime * float64(time.Second))
	c := r.phys.Cloth()
	t := 0.0

	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		r.phys.Update(frameDt)
		t += cfg.FrameTime

		if !callback(c, t) {
			return nil
		}
		if cfg.ValidateState && !c.IsValid() {
			return fmt.Errorf("invalid state at t=%.4f", t)
		}
	}
	return nil
}
