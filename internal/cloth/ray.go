package cloth

import "github.com/zackradisic/toilet-paper-twitter/internal/vmath"

// Ray is an origin plus direction, supplied by the input collaborator
// (typically unprojected from screen space).
type Ray struct {
	Origin vmath.Vec3
	Dir    vmath.Vec3
}

const rayEpsilon = 1e-9

// intersectTriangle runs Moller-Trumbore against one triangle and
// returns the parametric distance along the ray on a hit.
func intersectTriangle(r Ray, v0, v1, v2 vmath.Vec3) (float64, bool) {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)

	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if det > -rayEpsilon && det < rayEpsilon {
		return 0, false // parallel to the triangle plane
	}
	inv := 1 / det

	s := r.Origin.Sub(v0)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t := e2.Dot(q) * inv
	if t <= rayEpsilon {
		return 0, false // behind the origin
	}
	return t, true
}

// Intersects tests the ray against every mesh triangle and reports the
// grid coordinate of the nearest hit, measured by parametric distance
// along the ray. The returned coordinate is the first-listed vertex of
// the hit triangle in its quad decomposition: (x+1, y) for triangle A,
// (x+1, y+1) for triangle B.
func (c *Cloth) Intersects(r Ray) (x, y int, ok bool) {
	best := -1.0
	var bestX, bestY int

	triangle := 0
	c.eachTriangle(func(gx, gy int, i1, i2, i3 int) {
		t, hit := intersectTriangle(r,
			c.particles[i1].Position,
			c.particles[i2].Position,
			c.particles[i3].Position,
		)
		if hit && (best < 0 || t < best) {
			best = t
			if triangle%2 == 0 {
				bestX, bestY = gx+1, gy
			} else {
				bestX, bestY = gx+1, gy+1
			}
		}
		triangle++
	})

	if best < 0 {
		return 0, 0, false
	}
	return bestX, bestY, true
}
