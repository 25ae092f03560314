// Package viz renders the cloth in the terminal.
//
// The package has two layers:
//
//   - [Canvas]: Braille-based pixel canvas with Bresenham line drawing
//   - [Camera], [Wireframe], [Render3D]: perspective projection of the
//     cloth's structural links, painter-sorted back to front
//   - [Model]: interactive Bubble Tea view driving the fixed-step
//     simulation at 60 fps with a lipgloss stats panel
//
// # Key Bindings
//
//	Space  - Pause/Resume simulation
//	R      - Reset to initial state
//	W      - Toggle wind
//	Arrows - Drag the cloth around its center
//	X/Y/Z  - Rotate the camera (shift for reverse)
//	+/-    - Zoom
package viz
