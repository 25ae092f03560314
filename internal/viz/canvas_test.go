package viz

import (
	"strings"
	"testing"

	"github.com/zackradisic/toilet-paper-twitter/internal/cloth"
	"github.com/zackradisic/toilet-paper-twitter/internal/vmath"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(4, 4)

	c.Set(0, 0)
	if c.Grid[0][0] == brailleBase {
		t.Error("expected dot set at origin")
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBase {
		t.Errorf("expected empty cell after unset, got %U", c.Grid[0][0])
	}
}

func TestCanvasSubCellAddressing(t *testing.T) {
	c := NewCanvas(4, 4)

	// Dots 5 cells apart in x land 2 cells apart on the grid.
	c.Set(0, 0)
	c.Set(5, 0)

	if c.Grid[0][0] == brailleBase {
		t.Error("cell (0,0) should be set")
	}
	if c.Grid[0][2] == brailleBase {
		t.Error("cell (0,2) should be set")
	}
	if c.Grid[0][1] != brailleBase {
		t.Error("cell (0,1) should be empty")
	}
}

func TestCanvasOutOfBoundsIgnored(t *testing.T) {
	c := NewCanvas(2, 2)

	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)
	c.Unset(-5, -5)

	for y := range c.Grid {
		for x := range c.Grid[y] {
			if c.Grid[y][x] != brailleBase {
				t.Fatalf("cell (%d,%d) modified by out-of-bounds write", x, y)
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(8, 4)
	c.DrawLine(0, 0, 15, 0)

	for col := 0; col < 8; col++ {
		if c.Grid[0][col] == brailleBase {
			t.Errorf("cell (0,%d) should be touched by horizontal line", col)
		}
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(4, 4)
	c.DrawLine(0, 0, 7, 15)
	c.Clear()

	out := c.String()
	for _, r := range out {
		if r != rune(brailleBase) && r != '\n' {
			t.Fatalf("unexpected rune %U after clear", r)
		}
	}
}

func TestCanvasStringShape(t *testing.T) {
	c := NewCanvas(6, 3)
	lines := strings.Split(strings.TrimRight(c.String(), "\n"), "\n")

	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := len([]rune(line)); n != 6 {
			t.Errorf("line %d: expected 6 runes, got %d", i, n)
		}
	}
}

func TestCameraProjectCenter(t *testing.T) {
	cam := NewCamera()
	x, y, _, ok := cam.Project(vmath.Vec3{}, 160, 120)

	if !ok {
		t.Fatal("origin should be visible")
	}
	if x != 80 || y != 60 {
		t.Errorf("expected origin at screen center (80,60), got (%d,%d)", x, y)
	}
}

func TestCameraProjectBehind(t *testing.T) {
	cam := NewCamera()
	_, _, _, ok := cam.Project(vmath.Vec3{Z: 100}, 160, 120)

	if ok {
		t.Error("point behind the near plane should not be visible")
	}
}

func TestCameraZoomBounds(t *testing.T) {
	cam := NewCamera()
	for i := 0; i < 50; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom > 10 {
		t.Errorf("zoom should cap at 10, got %f", cam.Zoom)
	}
	for i := 0; i < 100; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom < 0.1 {
		t.Errorf("zoom should floor at 0.1, got %f", cam.Zoom)
	}
}

func TestClothWireframeEdgeCount(t *testing.T) {
	params := cloth.DefaultParams()
	c, err := cloth.New(1, 1, 3, 3, params)
	if err != nil {
		t.Fatalf("new cloth: %v", err)
	}

	w := NewWireframe()
	ClothWireframe(c, w)

	// A 3x3 grid has 2 horizontal links per row and 2 vertical per
	// column: 12 structural edges total.
	if len(w.Edges) != 12 {
		t.Errorf("expected 12 edges, got %d", len(w.Edges))
	}
}

func TestRenderClothDrawsSomething(t *testing.T) {
	params := cloth.DefaultParams()
	c, err := cloth.New(4, 4, 8, 8, params)
	if err != nil {
		t.Fatalf("new cloth: %v", err)
	}

	canvas := NewCanvas(40, 20)
	RenderCloth(c, canvas, NewCamera())

	set := 0
	for _, row := range canvas.Grid {
		for _, r := range row {
			if r != brailleBase {
				set++
			}
		}
	}
	if set == 0 {
		t.Error("expected a visible wireframe on the canvas")
	}
}
