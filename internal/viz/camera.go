package viz

import (
	"math"
	"sort"

	"github.com/zackradisic/toilet-paper-twitter/internal/vmath"
)

// Camera projects world coordinates onto the canvas with a simple
// perspective transform.
type Camera struct {
	Position         vmath.Vec3
	RotX, RotY, RotZ float64
	Zoom             float64
	Near             float64
}

func NewCamera() *Camera {
	return &Camera{Position: vmath.Vec3{Z: 40}, Zoom: 1.0, Near: 0.1}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotatePoint(p vmath.Vec3) vmath.Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a world point to dot coordinates on a canvas of the
// given size. Returns x, y, depth, and whether the point lands on
// screen.
func (c *Camera) Project(p vmath.Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.rotatePoint(p).Scale(c.Zoom)
	dist := c.Position.Z
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type Edge struct {
	Start, End vmath.Vec3
}

type Wireframe struct{ Edges []Edge }

func NewWireframe() *Wireframe                  { return &Wireframe{Edges: make([]Edge, 0)} }
func (w *Wireframe) AddEdge(s, e vmath.Vec3)    { w.Edges = append(w.Edges, Edge{s, e}) }
func (w *Wireframe) AddPoint(p vmath.Vec3)      { w.Edges = append(w.Edges, Edge{p, p}) }
func (w *Wireframe) Clear()                     { w.Edges = w.Edges[:0] }

type projectedEdge struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render3D draws the wireframe to the canvas back to front. Dot
// coordinates, not cell coordinates, so lines stay smooth.
func Render3D(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	dw, dh := c.Width*2, c.Height*4
	proj := make([]projectedEdge, 0, len(w.Edges))
	for _, e := range w.Edges {
		x1, y1, d1, v1 := cam.Project(e.Start, dw, dh)
		x2, y2, d2, v2 := cam.Project(e.End, dw, dh)
		if v1 || v2 {
			proj = append(proj, projectedEdge{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		if e.x1 == e.x2 && e.y1 == e.y2 {
			c.Set(e.x1, e.y1)
		} else {
			c.DrawLine(e.x1, e.y1, e.x2, e.y2)
		}
	}
}
