// Package core provides fundamental types shared by the game core and the platform:
// integer rectangles for drawing, the screen buffer, input frames and the
// fixed-tick game clock. It has no external dependencies so game logic stays
// pure and testable.
package core

import "math"

// Rect is an integer rectangle in screen cells, anchored at its top-left corner.
// World-space boxes live in the physics package; Rect only exists for drawing.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the column just past the right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the row just past the bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Clip returns the part of r inside a width x height area at the origin.
func (r Rect) Clip(width, height int) Rect {
	x0, y0 := Max(r.X, 0), Max(r.Y, 0)
	x1, y1 := min(r.Right(), width), min(r.Bottom(), height)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ClampF restricts v to [lo, hi].
func ClampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Lerp interpolates linearly between a and b by t, with t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*ClampF(t, 0, 1)
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
