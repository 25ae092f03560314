package cloth

// Constraint is a pairwise rest-distance invariant between two
// particles, referenced by index into the cloth's particle array.
// RestDistance is fixed at construction and never mutated.
type Constraint struct {
	P1, P2       int
	RestDistance float64
}

// NewConstraint captures the current distance between the two
// particles as the rest distance.
func NewConstraint(p1, p2 int, particles []Particle) Constraint {
	rest := particles[p1].Position.Sub(particles[p2].Position).Length()
	return Constraint{P1: p1, P2: p2, RestDistance: rest}
}

// Satisfy corrects both endpoints toward the rest distance. With both
// endpoints movable each absorbs half the error; when one is pinned
// the movable partner receives the full correction instead, which is
// what lets a pinned row anchor its neighbors. Coincident particles
// are skipped for the pass rather than dividing by zero.
func (c Constraint) Satisfy(particles []Particle) {
	p1 := &particles[c.P1]
	p2 := &particles[c.P2]

	delta := p2.Position.Sub(p1.Position)
	dist := delta.Length()
	if dist == 0 {
		return
	}

	half := delta.Scale((1 - c.RestDistance/dist) * 0.5)
	switch {
	case p1.Movable && p2.Movable:
		p1.OffsetPos(half)
		p2.OffsetPos(half.Neg())
	case p1.Movable:
		p1.OffsetPos(half.Scale(2))
	case p2.Movable:
		p2.OffsetPos(half.Scale(2).Neg())
	}
}
