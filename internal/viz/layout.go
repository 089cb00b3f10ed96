package viz

import (
	"math"

	"github.com/san-kum/dotsim/internal/tooltip"
)

// Layout maps the pixel canvas of a session onto terminal cells.
type Layout struct {
	Cols, Rows int
	// Scale is Braille sub-pixels per canvas pixel, equal on both axes.
	Scale float64
	// Left, Top is the screen cell showing canvas cell (0, 0).
	Left, Top int
}

// Fit scales a width x height pixel canvas into at most maxCols x maxRows cells.
func Fit(width, height, maxCols, maxRows int) Layout {
	if maxCols < 1 {
		maxCols = 1
	}
	if maxRows < 1 {
		maxRows = 1
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	scale := math.Min(float64(2*maxCols)/float64(width), float64(4*maxRows)/float64(height))
	cols := int(math.Ceil(float64(width) * scale / 2))
	rows := int(math.Ceil(float64(height) * scale / 4))
	return Layout{
		Cols:  min(max(cols, 1), maxCols),
		Rows:  min(max(rows, 1), maxRows),
		Scale: scale,
	}
}

// ToSub converts canvas pixels to sub-pixels.
func (l Layout) ToSub(px, py float64) (float64, float64) {
	return px * l.Scale, py * l.Scale
}

// ToPixel converts a screen cell to the canvas pixel at its center.
func (l Layout) ToPixel(col, row int) (float64, float64, bool) {
	c, r := col-l.Left, row-l.Top
	if c < 0 || r < 0 || c >= l.Cols || r >= l.Rows || l.Scale <= 0 {
		return 0, 0, false
	}
	return (float64(c) + 0.5) * 2 / l.Scale, (float64(r) + 0.5) * 4 / l.Scale, true
}

// ToCell converts canvas pixels to a canvas cell.
func (l Layout) ToCell(px, py float64) (int, int) {
	return int(math.Floor(px * l.Scale / 2)), int(math.Floor(py * l.Scale / 4))
}

// TooltipOrigin returns the top-left cell of a boxW x boxH tooltip for a dot
// centered at (cx, cy) with radius r. North boxes sit on top of the dot,
// south boxes hang below it; both are kept on the canvas.
func (l Layout) TooltipOrigin(cx, cy, r float64, p tooltip.Placement, boxW, boxH int) (int, int) {
	ay := cy - r
	if p.Direction == tooltip.South {
		ay = cy + r
	}
	col, row := l.ToCell(cx+float64(p.Left), ay+float64(p.Top))

	col -= boxW / 2
	if p.Direction == tooltip.North {
		row -= boxH
	} else {
		row++
	}

	col = min(max(col, 0), max(l.Cols-boxW, 0))
	row = min(max(row, 0), max(l.Rows-boxH, 0))
	return col, row
}
