package viz

import (
	"github.com/zackradisic/toilet-paper-twitter/internal/cloth"
	"github.com/zackradisic/toilet-paper-twitter/internal/vmath"
)

// ClothWireframe rebuilds w from the cloth's structural links. The
// mesh is recentered so the camera rotates about its middle.
func ClothWireframe(c *cloth.Cloth, w *Wireframe) {
	w.Clear()

	width, height := c.Size()
	center := vmath.Vec3{X: width / 2, Y: -height / 2}

	cols, rows := c.Cols(), c.Rows()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			p := c.Particle(x, y).Position.Sub(center)
			if x < cols-1 {
				w.AddEdge(p, c.Particle(x+1, y).Position.Sub(center))
			}
			if y < rows-1 {
				w.AddEdge(p, c.Particle(x, y+1).Position.Sub(center))
			}
		}
	}
}

// RenderCloth is the one-call path used by the CLI snapshot commands.
func RenderCloth(c *cloth.Cloth, canvas *Canvas, cam *Camera) {
	w := NewWireframe()
	ClothWireframe(c, w)
	canvas.Clear()
	Render3D(canvas, w, cam)
}
