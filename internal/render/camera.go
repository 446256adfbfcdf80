package render

import (
	"castle-fight/internal/vec"
	"math"
)

// CellSize is the number of world units drawn as one terminal cell.
const CellSize = 32.0

// Camera translates between world coordinates and screen coordinates.
// Cell X is multiplied by 2 because emoji occupy 2 terminal columns.
type Camera struct {
	OffsetX    int // leftmost visible cell
	OffsetY    int // topmost visible cell
	ViewWidth  int // in terminal columns
	ViewHeight int // in terminal rows
}

// NewCamera creates a camera centered on world position p.
func NewCamera(p vec.Vec2, viewW, viewH int) *Camera {
	c := &Camera{ViewWidth: viewW, ViewHeight: viewH}
	c.Center(p)
	return c
}

// Cell returns the cell containing world position p.
func Cell(p vec.Vec2) (cx, cy int) {
	return int(math.Floor(p.X / CellSize)), int(math.Floor(p.Y / CellSize))
}

// Center repositions the camera so that world position p is in the middle.
func (c *Camera) Center(p vec.Vec2) {
	cx, cy := Cell(p)
	c.OffsetX = cx - (c.ViewWidth/2)/2
	c.OffsetY = cy - c.ViewHeight/2
}

// ClampTo keeps the view inside a world of the given size when it fits.
func (c *Camera) ClampTo(width, height float64) {
	cellsW := int(math.Ceil(width / CellSize))
	cellsH := int(math.Ceil(height / CellSize))
	c.OffsetX = clamp(c.OffsetX, 0, cellsW-c.ViewWidth/2)
	c.OffsetY = clamp(c.OffsetY, 0, cellsH-c.ViewHeight)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// WorldToScreen converts world position p to screen (sx, sy).
// visible is false when the result falls outside the viewport.
func (c *Camera) WorldToScreen(p vec.Vec2) (sx, sy int, visible bool) {
	cx, cy := Cell(p)
	sx = (cx - c.OffsetX) * 2
	sy = cy - c.OffsetY
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts screen (sx, sy) to the center of that cell.
func (c *Camera) ScreenToWorld(sx, sy int) vec.Vec2 {
	cx := sx/2 + c.OffsetX
	cy := sy + c.OffsetY
	return vec.New((float64(cx)+0.5)*CellSize, (float64(cy)+0.5)*CellSize)
}
