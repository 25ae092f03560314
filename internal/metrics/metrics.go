// Package metrics provides observers that summarize cloth state over a
// run: aggregate constraint error, implied particle speed, and pin
// anchoring drift.
package metrics

import (
	"math"

	"github.com/zackradisic/toilet-paper-twitter/internal/cloth"
	"github.com/zackradisic/toilet-paper-twitter/internal/vmath"
)

type Metric interface {
	Name() string
	Observe(c *cloth.Cloth, t float64)
	Value() float64
	Reset()
}

// ConstraintResidual measures the mean absolute distance error across
// all constraints; zero means the lattice is fully relaxed.
type ConstraintResidual struct {
	latest float64
	peak   float64
}

func NewConstraintResidual() *ConstraintResidual { return &ConstraintResidual{} }

func (r *ConstraintResidual) Name() string { return "constraint_residual" }

func (r *ConstraintResidual) Observe(c *cloth.Cloth, t float64) {
	cons := c.Constraints()
	if len(cons) == 0 {
		return
	}
	total := 0.0
	for _, con := range cons {
		p1 := c.Particle(con.P1%c.Cols(), con.P1/c.Cols())
		p2 := c.Particle(con.P2%c.Cols(), con.P2/c.Cols())
		dist := p2.Position.Sub(p1.Position).Length()
		total += math.Abs(dist - con.RestDistance)
	}
	r.latest = total / float64(len(cons))
	r.peak = math.Max(r.peak, r.latest)
}

func (r *ConstraintResidual) Value() float64 { return r.latest }
func (r *ConstraintResidual) Peak() float64  { return r.peak }
func (r *ConstraintResidual) Reset()         { r.latest, r.peak = 0, 0 }

// MeanSpeed measures the mean implied Verlet velocity |pos - oldPos|
// over all particles; it decays toward zero as the cloth settles.
type MeanSpeed struct {
	latest float64
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) Observe(c *cloth.Cloth, t float64) {
	total := 0.0
	n := 0
	for x := 0; x < c.Cols(); x++ {
		for y := 0; y < c.Rows(); y++ {
			p := c.Particle(x, y)
			total += p.Position.Sub(p.OldPosition).Length()
			n++
		}
	}
	if n > 0 {
		m.latest = total / float64(n)
	}
}

func (m *MeanSpeed) Value() float64 { return m.latest }
func (m *MeanSpeed) Reset()         { m.latest = 0 }

// PinDrift measures the maximum displacement of any pinned particle
// from its position at the first observation. It must remain exactly
// zero; anything else indicates a broken pin invariant.
type PinDrift struct {
	initial map[[2]int]vmath.Vec3
	max     float64
}

func NewPinDrift() *PinDrift { return &PinDrift{} }

func (p *PinDrift) Name() string { return "pin_drift" }

func (p *PinDrift) Observe(c *cloth.Cloth, t float64) {
	if p.initial == nil {
		p.initial = make(map[[2]int]vmath.Vec3)
		for x := 0; x < c.Cols(); x++ {
			for y := 0; y < c.Rows(); y++ {
				if !c.Particle(x, y).Movable {
					p.initial[[2]int{x, y}] = c.Particle(x, y).Position
				}
			}
		}
		return
	}
	for coord, pos := range p.initial {
		drift := c.Particle(coord[0], coord[1]).Position.Sub(pos).Length()
		p.max = math.Max(p.max, drift)
	}
}

func (p *PinDrift) Value() float64 { return p.max }
func (p *PinDrift) Reset()         { p.initial, p.max = nil, 0 }

// Defaults returns the standard metric set for a run.
func Defaults() []Metric {
	return []Metric{NewConstraintResidual(), NewMeanSpeed(), NewPinDrift()}
}
