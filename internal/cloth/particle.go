package cloth

import "github.com/zackradisic/toilet-paper-twitter/internal/vmath"

// Particle is one mass point in the lattice. Verlet integration keeps
// no explicit velocity: motion is implied by Position - OldPosition.
type Particle struct {
	Position          vmath.Vec3
	OldPosition       vmath.Vec3
	Acceleration      vmath.Vec3
	TexCoord          vmath.Vec2
	AccumulatedNormal vmath.Vec3
	Movable           bool
}

// OffsetPos applies a position delta. This is the sole mutation gate
// enforcing the pin invariant: a non-movable particle never moves.
func (p *Particle) OffsetPos(delta vmath.Vec3) {
	if p.Movable {
		p.Position = p.Position.Add(delta)
	}
}

// AddForce accumulates into the particle's acceleration. Forces on a
// pinned particle are stored but have no integration effect.
func (p *Particle) AddForce(f vmath.Vec3) {
	p.Acceleration = p.Acceleration.Add(f)
}

// AddNormal accumulates the normalized face normal, so the result is a
// sum of unit normals rather than an area-weighted sum.
func (p *Particle) AddNormal(n vmath.Vec3) {
	p.AccumulatedNormal = p.AccumulatedNormal.Add(n.Normalize())
}

func (p *Particle) ResetNormal() {
	p.AccumulatedNormal = vmath.Vec3{}
}

func (p *Particle) makeUnmovable() {
	p.Movable = false
}

// step advances the particle one Verlet step:
//
//	newPos = pos + (pos - oldPos)*(1 - damping) + acceleration*dt
//
// Acceleration is scaled by dt, not dt². This matches the behavior the
// rest of the system is tuned around; see DESIGN.md for the tradeoff.
// Pinned particles do not move but their acceleration is still cleared.
func (p *Particle) step(damping, dt float64) {
	if p.Movable {
		temp := p.Position
		p.Position = p.Position.
			Add(p.Position.Sub(p.OldPosition).Scale(1 - damping)).
			Add(p.Acceleration.Scale(dt))
		p.OldPosition = temp
	}
	p.Acceleration = vmath.Vec3{}
}
