package viz

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a Braille sub-pixel grid of Width x Height cells, i.e.
// (Width*2) x (Height*4) dots. Each painted cell holds one composited color.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]colorful.Color

	background colorful.Color
	painted    [][]bool
	stamp      [][]int
	stamps     int
	overlay    [][]rune
}

func NewCanvas(w, h int, background colorful.Color) *Canvas {
	c := &Canvas{
		Width:      w,
		Height:     h,
		background: background,
		Grid:       make([][]rune, h),
		Colors:     make([][]colorful.Color, h),
		painted:    make([][]bool, h),
		stamp:      make([][]int, h),
		overlay:    make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]colorful.Color, w)
		c.painted[i] = make([]bool, w)
		c.stamp[i] = make([]int, w)
		c.overlay[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set lights the sub-pixel at (x, y).
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

// FillCircle draws a filled disc in sub-pixel coordinates. Every cell it
// touches is composited once with fill at the given opacity.
func (c *Canvas) FillCircle(cx, cy, r float64, fill colorful.Color, opacity float64) {
	if r <= 0 {
		return
	}
	c.stamps++

	touched := false
	x0, x1 := int(math.Floor(cx-r)), int(math.Ceil(cx+r))
	y0, y1 := int(math.Floor(cy-r)), int(math.Ceil(cy+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy > r*r {
				continue
			}
			touched = c.paint(x, y, fill, opacity) || touched
		}
	}
	if !touched {
		c.paint(int(cx), int(cy), fill, opacity)
	}
}

func (c *Canvas) paint(x, y int, fill colorful.Color, opacity float64) bool {
	if x < 0 || y < 0 {
		return false
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return false
	}

	c.Set(x, y)
	if c.stamp[row][col] != c.stamps {
		c.stamp[row][col] = c.stamps
		under := c.background
		if c.painted[row][col] {
			under = c.Colors[row][col]
		}
		c.Colors[row][col] = under.BlendRgb(fill, opacity).Clamped()
		c.painted[row][col] = true
	}
	return true
}

// PutBox draws a rounded text box with its top-left corner at cell
// (col, row). Cells outside the canvas are dropped.
func (c *Canvas) PutBox(col, row int, lines []string) {
	w := 0
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > w {
			w = n
		}
	}

	c.putText(col, row, "╭"+strings.Repeat("─", w+2)+"╮")
	for i, l := range lines {
		pad := w - utf8.RuneCountInString(l)
		c.putText(col, row+1+i, "│ "+l+strings.Repeat(" ", pad)+" │")
	}
	c.putText(col, row+1+len(lines), "╰"+strings.Repeat("─", w+2)+"╯")
}

// BoxSize is the cell footprint of PutBox(lines).
func BoxSize(lines []string) (w, h int) {
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > w {
			w = n
		}
	}
	return w + 4, len(lines) + 2
}

func (c *Canvas) putText(col, row int, s string) {
	if row < 0 || row >= c.Height {
		return
	}
	for _, r := range s {
		if col >= 0 && col < c.Width {
			c.overlay[row][col] = r
		}
		col++
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.painted[i][j] = false
			c.overlay[i][j] = 0
		}
	}
}

// Render colors each row, grouping runs of cells that share a style.
func (c *Canvas) Render(text lipgloss.Style) string {
	bg := lipgloss.Color(c.background.Hex())
	base := lipgloss.NewStyle().Background(bg)
	text = text.Background(bg)

	var b strings.Builder
	for i := range c.Grid {
		var run strings.Builder
		runStyle, runKey := base, ""

		flush := func() {
			if run.Len() > 0 {
				b.WriteString(runStyle.Render(run.String()))
				run.Reset()
			}
		}

		for j, r := range c.Grid[i] {
			key, style := "", base
			switch {
			case c.overlay[i][j] != 0:
				key, style, r = "text", text, c.overlay[i][j]
			case c.painted[i][j]:
				key = c.Colors[i][j].Hex()
				style = base.Foreground(lipgloss.Color(key))
			}
			if key != runKey {
				flush()
				runKey, runStyle = key, style
			}
			run.WriteRune(r)
		}
		flush()
		if i < len(c.Grid)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
