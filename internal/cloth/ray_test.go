package cloth

import (
	"testing"

	"github.com/zackradisic/toilet-paper-twitter/internal/vmath"
)

func TestIntersectTriangle(t *testing.T) {
	v0 := vmath.Vec3{X: 0, Y: 0, Z: 0}
	v1 := vmath.Vec3{X: 1, Y: 0, Z: 0}
	v2 := vmath.Vec3{X: 0, Y: 1, Z: 0}

	tests := []struct {
		name  string
		ray   Ray
		hit   bool
		wantT float64
	}{
		{
			"center hit",
			Ray{Origin: vmath.Vec3{X: 0.25, Y: 0.25, Z: -3}, Dir: vmath.Vec3{Z: 1}},
			true, 3,
		},
		{
			"outside triangle",
			Ray{Origin: vmath.Vec3{X: 0.9, Y: 0.9, Z: -3}, Dir: vmath.Vec3{Z: 1}},
			false, 0,
		},
		{
			"behind origin",
			Ray{Origin: vmath.Vec3{X: 0.25, Y: 0.25, Z: 3}, Dir: vmath.Vec3{Z: 1}},
			false, 0,
		},
		{
			"parallel to plane",
			Ray{Origin: vmath.Vec3{X: 0.25, Y: 0.25, Z: -3}, Dir: vmath.Vec3{X: 1}},
			false, 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, hit := intersectTriangle(tt.ray, v0, v1, v2)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && (dist < tt.wantT-1e-9 || dist > tt.wantT+1e-9) {
				t.Errorf("t = %v, want %v", dist, tt.wantT)
			}
		})
	}
}

func TestIntersectsVertexSelection(t *testing.T) {
	c := unitGrid(t, 3, 3, DefaultParams())

	// The lattice spans (0..3, -3..0) at z=0. A hit in quad (0,0)'s
	// triangle A reports (1,0); one in triangle B reports (1,1).
	tests := []struct {
		name         string
		through      vmath.Vec3
		wantX, wantY int
	}{
		{"quad (0,0) triangle A", vmath.Vec3{X: 0.2, Y: -0.2}, 1, 0},
		{"quad (0,0) triangle B", vmath.Vec3{X: 0.8, Y: -0.8}, 1, 1},
		{"quad (1,1) triangle A", vmath.Vec3{X: 1.2, Y: -1.2}, 2, 1},
		{"quad (1,1) triangle B", vmath.Vec3{X: 1.8, Y: -1.8}, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Ray{
				Origin: vmath.Vec3{X: tt.through.X, Y: tt.through.Y, Z: -5},
				Dir:    vmath.Vec3{Z: 1},
			}
			x, y, ok := c.Intersects(r)
			if !ok {
				t.Fatal("expected a hit")
			}
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("hit (%d,%d), want (%d,%d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestIntersectsMiss(t *testing.T) {
	c := unitGrid(t, 3, 3, DefaultParams())

	misses := []Ray{
		{Origin: vmath.Vec3{X: 10, Y: 10, Z: -5}, Dir: vmath.Vec3{Z: 1}},
		{Origin: vmath.Vec3{X: 1, Y: -1, Z: -5}, Dir: vmath.Vec3{Z: -1}},
		{Origin: vmath.Vec3{X: 1, Y: -1, Z: -5}, Dir: vmath.Vec3{X: 1}},
	}

	for i, r := range misses {
		if _, _, ok := c.Intersects(r); ok {
			t.Errorf("ray %d should miss", i)
		}
	}
}

func TestIntersectsNearest(t *testing.T) {
	// Fold the bottom of the cloth back over the top so two quads
	// share an xy footprint at different depths, then check the hit
	// lands on the layer closer to the ray origin.
	c := unitGrid(t, 2, 5, DefaultParams())
	place := func(x, y int, pos vmath.Vec3) {
		p := c.Particle(x, y)
		p.Position = pos
		p.OldPosition = pos
	}
	for x := 0; x < 2; x++ {
		place(x, 3, vmath.Vec3{X: float64(x), Y: 0, Z: 2})
		place(x, 4, vmath.Vec3{X: float64(x), Y: -1, Z: 2})
	}

	front := Ray{Origin: vmath.Vec3{X: 0.5, Y: -0.5, Z: -5}, Dir: vmath.Vec3{Z: 1}}
	_, y, ok := c.Intersects(front)
	if !ok {
		t.Fatal("expected a hit from the front")
	}
	if y > 1 {
		t.Errorf("front ray hit the far layer (row %d), want the z=0 layer", y)
	}

	back := Ray{Origin: vmath.Vec3{X: 0.5, Y: -0.5, Z: 5}, Dir: vmath.Vec3{Z: -1}}
	_, y, ok = c.Intersects(back)
	if !ok {
		t.Fatal("expected a hit from the back")
	}
	if y < 3 {
		t.Errorf("back ray hit the far layer (row %d), want the z=2 layer", y)
	}
}
