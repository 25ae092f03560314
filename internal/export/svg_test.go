package export

import (
	"strings"
	"testing"

	"github.com/zackradisic/toilet-paper-twitter/internal/cloth"
	"github.com/zackradisic/toilet-paper-twitter/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	canvas := viz.NewCanvas(4, 4)
	canvas.Set(0, 0)
	canvas.Set(3, 5)

	svg := CanvasToSVG(canvas, 4.0)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not a well-formed SVG document")
	}
	if got := strings.Count(svg, "<circle"); got != 2 {
		t.Errorf("expected 2 circles, got %d", got)
	}
}

func TestCanvasToSVGEmpty(t *testing.T) {
	svg := CanvasToSVG(viz.NewCanvas(4, 4), 4.0)
	if strings.Contains(svg, "<circle") {
		t.Error("empty canvas should produce no circles")
	}

	if CanvasToSVG(nil, 4.0) != "" {
		t.Error("nil canvas should produce empty output")
	}
}

func TestMeshToSVG(t *testing.T) {
	c, err := cloth.New(2, 2, 3, 3, cloth.DefaultParams())
	if err != nil {
		t.Fatalf("new cloth: %v", err)
	}

	svg := MeshToSVG(c, 400, 400)

	if !strings.Contains(svg, "<svg") {
		t.Fatal("not an SVG document")
	}

	// A 3x3 grid has 4 quads, two triangles each.
	if got := strings.Count(svg, "<polygon"); got != 8 {
		t.Errorf("expected 8 polygons, got %d", got)
	}
}
