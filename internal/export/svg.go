// Package export writes snapshots of the simulation to SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/zackradisic/toilet-paper-twitter/internal/cloth"
	"github.com/zackradisic/toilet-paper-twitter/internal/viz"
)

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit
// dot.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	dotMask := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotMask[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// MeshToSVG draws the cloth's triangle mesh in the XY plane as filled
// polygons, viewed down the z axis. The vertex buffer must be current.
func MeshToSVG(c *cloth.Cloth, width, height int) string {
	verts := c.Triangles()
	if len(verts) < 3 {
		return ""
	}

	minX, maxX := verts[0].X, verts[0].X
	minY, maxY := verts[0].Y, verts[0].Y
	for _, v := range verts {
		if v.X < minX {
			minX = v.X
		}
		if v.X > maxX {
			maxX = v.X
		}
		if v.Y < minY {
			minY = v.Y
		}
		if v.Y > maxY {
			maxY = v.Y
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.05
	maxX += rangeX * 0.05
	minY -= rangeY * 0.05
	maxY += rangeY * 0.05
	rangeX = maxX - minX
	rangeY = maxY - minY

	toScreen := func(x, y float64) (float64, float64) {
		sx := (x - minX) / rangeX * float64(width)
		sy := float64(height) - (y-minY)/rangeY*float64(height)
		return sx, sy
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="none" stroke="#00ff00" stroke-width="0.5">
`, width, height, width, height))

	for i := 0; i+2 < len(verts); i += 3 {
		x1, y1 := toScreen(verts[i].X, verts[i].Y)
		x2, y2 := toScreen(verts[i+1].X, verts[i+1].Y)
		x3, y3 := toScreen(verts[i+2].X, verts[i+2].Y)
		sb.WriteString(fmt.Sprintf(`<polygon points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>
`, x1, y1, x2, y2, x3, y3))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
