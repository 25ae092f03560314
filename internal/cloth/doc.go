// Package cloth implements a particle-based cloth simulation: a
// mass-spring lattice advanced by Verlet integration and iterative
// distance-constraint relaxation.
//
// The core types are:
//
//   - [Particle]: position, previous position, accumulated force and
//     normal, plus a pin flag
//   - [Constraint]: a pairwise rest-distance invariant between two
//     particles, enforced approximately by repeated correction
//   - [Cloth]: the W×H lattice with its constraint set and the
//     renderable triangle/normal/texcoord buffers
//   - [Physics]: a fixed-step driver decoupling wall-clock frame time
//     from the simulation step
//
// # Determinism
//
// Everything is single-threaded and synchronous. Constraints are
// relaxed in construction order, so two runs from identical state and
// inputs produce identical trajectories. The renderable buffers are
// refreshed only at tick boundaries, never mid-relaxation.
//
// # Example
//
//	c, _ := cloth.New(10, 14, 22, 26, cloth.DefaultParams())
//	p := cloth.NewPhysics(c)
//	p.Update(frameTime)
//	verts := c.Triangles()
package cloth
