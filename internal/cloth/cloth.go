package cloth

import (
	"fmt"

	"github.com/zackradisic/toilet-paper-twitter/internal/vmath"
)

const (
	DefaultFixedStep  = 1.0 / 120.0
	DefaultDamping    = 0.01
	DefaultIterations = 30
	DefaultPinMargin  = 3
)

// Params holds the simulation tunables. Everything that shapes the
// physical response is a parameter here rather than a package constant
// so tests can exercise convergence under varied presets.
type Params struct {
	// FixedStep is the fixed physics timestep in seconds.
	FixedStep float64
	// Damping attenuates the implicit Verlet velocity each step.
	Damping float64
	// Iterations is the number of full relaxation passes per tick.
	Iterations int
	// PinMargin pins the first and last N columns of the top row.
	PinMargin int
	// PinInset nudges the leading pinned group toward the center by
	// this much in x before pinning, for a more natural hang.
	PinInset float64
	// Gravity and Wind are applied every tick, scaled by FixedStep.
	Gravity vmath.Vec3
	Wind    vmath.Vec3
}

// DefaultParams returns the tuning the simulation ships with.
func DefaultParams() Params {
	return Params{
		FixedStep:  DefaultFixedStep,
		Damping:    DefaultDamping,
		Iterations: DefaultIterations,
		PinMargin:  DefaultPinMargin,
		PinInset:   0,
		Gravity:    vmath.Vec3{X: 0, Y: -2.8, Z: 0},
		Wind:       vmath.Vec3{X: 10.5, Y: 0, Z: 0.2},
	}
}

// Cloth is a W×H particle lattice with its constraint set and the
// renderable buffers rebuilt from it each tick. Particles are stored in
// a flat array, index = y*cols + x; constraints hold plain indices into
// that array rather than pointers.
type Cloth struct {
	params Params

	width, height float64
	cols, rows    int

	particles   []Particle
	constraints []Constraint

	// Renderable buffers, 6*(cols-1)*(rows-1) entries each, refreshed
	// only at tick boundaries.
	vertices  []vmath.Vec3
	normals   []vmath.Vec3
	texCoords []vmath.Vec2
}

// New builds the lattice on a rectangle from (0,0,0) to
// (width,-height,0), generates the four constraint families, pins the
// anchor columns, and fills the initial renderable buffers.
func New(width, height float64, cols, rows int, params Params) (*Cloth, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: size %gx%g", ErrInvalidGeometry, width, height)
	}
	if cols < 2 || rows < 2 {
		return nil, fmt.Errorf("%w: grid %dx%d (need at least 2x2)", ErrInvalidGeometry, cols, rows)
	}
	if params.FixedStep <= 0 {
		return nil, fmt.Errorf("%w: fixed step %g", ErrInvalidParams, params.FixedStep)
	}
	if params.Iterations < 0 {
		return nil, fmt.Errorf("%w: iterations %d", ErrInvalidParams, params.Iterations)
	}

	c := &Cloth{
		params:    params,
		width:     width,
		height:    height,
		cols:      cols,
		rows:      rows,
		particles: make([]Particle, cols*rows),
	}

	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			pos := vmath.Vec3{
				X: width * float64(x) / float64(cols),
				Y: -height * float64(y) / float64(rows),
				Z: 0,
			}
			c.particles[c.index(x, y)] = Particle{
				Position:    pos,
				OldPosition: pos,
				TexCoord:    vmath.Vec2{X: pos.X / width, Y: -pos.Y / height},
				Movable:     true,
			}
		}
	}

	c.buildConstraints()
	c.pin()

	quads := (cols - 1) * (rows - 1)
	c.vertices = make([]vmath.Vec3, 0, 6*quads)
	c.normals = make([]vmath.Vec3, 0, 6*quads)
	c.texCoords = make([]vmath.Vec2, 0, 6*quads)
	c.UpdateNormals()
	c.fillBuffers()

	return c, nil
}

// buildConstraints generates the four families, each eligible pair
// exactly once: structural (axis neighbor), shear (diagonal), and two
// bend families at grid distance 2.
func (c *Cloth) buildConstraints() {
	link := func(x1, y1, x2, y2 int) {
		c.constraints = append(c.constraints,
			NewConstraint(c.index(x1, y1), c.index(x2, y2), c.particles))
	}

	for x := 0; x < c.cols; x++ {
		for y := 0; y < c.rows; y++ {
			if x < c.cols-1 {
				link(x, y, x+1, y)
			}
			if y < c.rows-1 {
				link(x, y, x, y+1)
			}
			if x < c.cols-1 && y < c.rows-1 {
				link(x, y, x+1, y+1)
				link(x+1, y, x, y+1)
			}
		}
	}

	for x := 0; x < c.cols; x++ {
		for y := 0; y < c.rows; y++ {
			if x < c.cols-2 {
				link(x, y, x+2, y)
			}
			if y < c.rows-2 {
				link(x, y, x, y+2)
			}
			if x < c.cols-2 && y < c.rows-2 {
				link(x, y, x+2, y+2)
				link(x+2, y, x, y+2)
			}
		}
	}
}

// pin anchors the top row's leading and trailing columns. The pin set
// is permanent for the cloth's lifetime.
func (c *Cloth) pin() {
	margin := c.params.PinMargin
	if margin > c.cols {
		margin = c.cols
	}
	for i := 0; i < margin; i++ {
		lead := &c.particles[c.index(i, 0)]
		lead.OffsetPos(vmath.Vec3{X: c.params.PinInset})
		lead.makeUnmovable()
		c.particles[c.index(c.cols-1-i, 0)].makeUnmovable()
	}
}

func (c *Cloth) index(x, y int) int { return y*c.cols + x }

// Particle returns the particle at grid coordinate (x, y).
func (c *Cloth) Particle(x, y int) *Particle {
	return &c.particles[c.index(x, y)]
}

// Constraints returns the constraint set in construction order. The
// slice is owned by the cloth; callers must treat it as read-only.
func (c *Cloth) Constraints() []Constraint { return c.constraints }

func (c *Cloth) Cols() int            { return c.cols }
func (c *Cloth) Rows() int            { return c.rows }
func (c *Cloth) NumParticles() int    { return len(c.particles) }
func (c *Cloth) NumConstraints() int  { return len(c.constraints) }
func (c *Cloth) Params() Params       { return c.params }
func (c *Cloth) Size() (w, h float64) { return c.width, c.height }

// SetWind replaces the ambient wind direction. A zero vector disables
// wind entirely.
func (c *Cloth) SetWind(w vmath.Vec3) { c.params.Wind = w }

// IsValid reports whether every particle position is finite. NaN or
// Inf anywhere indicates a logic defect upstream, not a recoverable
// runtime state.
func (c *Cloth) IsValid() bool {
	for i := range c.particles {
		if !c.particles[i].Position.IsValid() {
			return false
		}
	}
	return true
}

// AddForce adds a uniform force to every particle's acceleration.
func (c *Cloth) AddForce(f vmath.Vec3) {
	for i := range c.particles {
		c.particles[i].AddForce(f)
	}
}

// AddWindForce applies a per-triangle wind term: the unnormalized face
// normal scaled by the dot of its direction with the wind direction,
// added equally to all three vertices. Triangles facing away contribute
// with negative sign; the pull is intentional and not clamped.
func (c *Cloth) AddWindForce(dir vmath.Vec3) {
	c.eachTriangle(func(_, _ int, i1, i2, i3 int) {
		n := triangleNormal(
			c.particles[i1].Position,
			c.particles[i2].Position,
			c.particles[i3].Position,
		)
		force := n.Scale(n.Normalize().Dot(dir))
		c.particles[i1].AddForce(force)
		c.particles[i2].AddForce(force)
		c.particles[i3].AddForce(force)
	})
}

// MouseForce injects a planar force (dx, dy, 0) into the particle at
// grid coordinate (x, y). Out-of-range coordinates are a silent no-op.
func (c *Cloth) MouseForce(x, y int, dx, dy float64) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows {
		return
	}
	c.particles[c.index(x, y)].AddForce(vmath.Vec3{X: dx, Y: dy})
}

// Drag nudges (x, y) and its two diagonal neighbors for a softer pull
// radius during interactive dragging.
func (c *Cloth) Drag(x, y int, dx, dy float64) {
	c.MouseForce(x, y, dx, dy)
	c.MouseForce(x-1, y-1, dx, dy)
	c.MouseForce(x+1, y+1, dx, dy)
}

// TimeStep runs the configured relaxation passes over all constraints
// in construction order, then advances every particle one Verlet step.
func (c *Cloth) TimeStep(dt float64) {
	for i := 0; i < c.params.Iterations; i++ {
		for _, constraint := range c.constraints {
			constraint.Satisfy(c.particles)
		}
	}
	for i := range c.particles {
		c.particles[i].step(c.params.Damping, dt)
	}
}

// update runs one full fixed tick: accumulate forces, relax, integrate.
// Gravity and wind are scaled by the tick duration by the caller side
// of the force model, i.e. here.
func (c *Cloth) update(dt float64) {
	c.AddForce(c.params.Gravity.Scale(dt))
	c.AddWindForce(c.params.Wind.Scale(dt))
	c.TimeStep(dt)
}
