package cloth

import "time"

// Physics is the fixed-step driver. It accumulates wall-clock frame
// time and runs zero or more fixed ticks per Update call, so the
// simulation is deterministic regardless of rendering frame rate.
type Physics struct {
	cloth       *Cloth
	accumulator float64
	ticks       uint64
}

func NewPhysics(c *Cloth) *Physics {
	return &Physics{cloth: c}
}

func (p *Physics) Cloth() *Cloth { return p.cloth }

// Ticks reports the total number of fixed steps run so far.
func (p *Physics) Ticks() uint64 { return p.ticks }

// Update consumes a wall-clock frame duration. Each whole fixed step
// in the accumulator runs one full tick (forces, relaxation,
// integration); if at least one tick ran, the normals and renderable
// buffers are rebuilt once. A frame shorter than one step leaves the
// buffers untouched. Returns the number of ticks run.
func (p *Physics) Update(dt time.Duration) int {
	p.accumulator += dt.Seconds()

	step := p.cloth.params.FixedStep
	ran := 0
	for p.accumulator >= step {
		p.accumulator -= step
		p.cloth.update(step)
		ran++
	}

	if ran > 0 {
		p.cloth.UpdateNormals()
		p.cloth.fillBuffers()
		p.ticks += uint64(ran)
	}
	return ran
}
