package cloth

import "github.com/zackradisic/toilet-paper-twitter/internal/vmath"

// Each quad (x, y) decomposes into two triangles:
//
//	A: (x+1,y) (x,y) (x,y+1)
//	B: (x+1,y+1) (x+1,y) (x,y+1)
//
// The same decomposition is used for wind forces, normal accumulation,
// buffer fill, and ray picking.
func (c *Cloth) eachTriangle(fn func(gx, gy int, i1, i2, i3 int)) {
	for x := 0; x < c.cols-1; x++ {
		for y := 0; y < c.rows-1; y++ {
			fn(x, y, c.index(x+1, y), c.index(x, y), c.index(x, y+1))
			fn(x, y, c.index(x+1, y+1), c.index(x+1, y), c.index(x, y+1))
		}
	}
}

// triangleNormal returns the unnormalized face normal
// (p2-p1) × (p3-p1). Magnitude is proportional to triangle area, which
// the wind term relies on.
func triangleNormal(p1, p2, p3 vmath.Vec3) vmath.Vec3 {
	return p2.Sub(p1).Cross(p3.Sub(p1))
}

// UpdateNormals recomputes every particle's accumulated normal: reset
// all, then add each triangle's face normal (normalized on add) to its
// three vertices. Runs once per tick boundary, not per relaxation pass.
func (c *Cloth) UpdateNormals() {
	for i := range c.particles {
		c.particles[i].ResetNormal()
	}

	c.eachTriangle(func(_, _ int, i1, i2, i3 int) {
		n := triangleNormal(
			c.particles[i1].Position,
			c.particles[i2].Position,
			c.particles[i3].Position,
		)
		c.particles[i1].AddNormal(n)
		c.particles[i2].AddNormal(n)
		c.particles[i3].AddNormal(n)
	})
}

// fillBuffers regenerates the renderable buffers: 6 unindexed vertices
// per quad carrying position, texcoord, and the normalized accumulated
// normal.
func (c *Cloth) fillBuffers() {
	c.vertices = c.vertices[:0]
	c.normals = c.normals[:0]
	c.texCoords = c.texCoords[:0]

	c.eachTriangle(func(_, _ int, i1, i2, i3 int) {
		for _, i := range [3]int{i1, i2, i3} {
			p := &c.particles[i]
			c.vertices = append(c.vertices, p.Position)
			c.normals = append(c.normals, p.AccumulatedNormal.Normalize())
			c.texCoords = append(c.texCoords, p.TexCoord)
		}
	})
}

// Triangles returns the vertex buffer, 6*(cols-1)*(rows-1) entries.
// The slice is owned by the cloth and refreshed at tick boundaries;
// callers must treat it as read-only.
func (c *Cloth) Triangles() []vmath.Vec3 { return c.vertices }

// Normals returns the per-vertex normal buffer, same length and
// ownership rules as [Cloth.Triangles].
func (c *Cloth) Normals() []vmath.Vec3 { return c.normals }

// TexCoords returns the texture-coordinate buffer, same length and
// ownership rules as [Cloth.Triangles].
func (c *Cloth) TexCoords() []vmath.Vec2 { return c.texCoords }
