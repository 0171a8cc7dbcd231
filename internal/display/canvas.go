package display

import (
	"strings"
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

const (
	blank = rune(0x2800)

	// DotsX and DotsY are the device pixels packed into one terminal cell.
	DotsX = 2
	DotsY = 4
)

// Cell is one terminal character of a canvas.
type Cell struct {
	Rune  rune
	Color RGB
}

// Empty reports whether the cell carries nothing to draw.
func (c Cell) Empty() bool { return c.Rune == blank || c.Rune == ' ' || c.Rune == 0 }

// Canvas is a grid of cells addressed either per cell or per braille dot.
// The canvas size in dots is (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]Cell
}

func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]Cell, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]Cell, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = Cell{Rune: blank}
		}
	}
	return c
}

// Set lights the dot at (x, y) without touching the cell colour.
func (c *Canvas) Set(x, y int) {
	col, row, ok := c.locate(x, y)
	if !ok {
		return
	}
	cell := &c.Grid[row][col]
	if cell.Rune < blank || cell.Rune > blank+0xff {
		cell.Rune = blank
	}
	cell.Rune |= rune(pixelMap[y%DotsY][x%DotsX])
}

// Plot lights the dot at (x, y) and paints its cell. When two dots of
// different colours share a cell the brighter one wins.
func (c *Canvas) Plot(x, y int, color RGB) {
	col, row, ok := c.locate(x, y)
	if !ok {
		return
	}
	c.Set(x, y)
	cell := &c.Grid[row][col]
	if luma(color) >= luma(cell.Color) {
		cell.Color = color
	}
}

// Unset clears a dot
func (c *Canvas) Unset(x, y int) {
	col, row, ok := c.locate(x, y)
	if !ok {
		return
	}
	mask := ^rune(pixelMap[y%DotsY][x%DotsX])
	c.Grid[row][col].Rune &= mask
	if c.Grid[row][col].Rune < blank {
		c.Grid[row][col].Rune = blank
	}
}

// Glyph writes a whole character into a cell, replacing any dots.
func (c *Canvas) Glyph(col, row int, r rune, color RGB) {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] = Cell{Rune: r, Color: color}
}

// Text writes s starting at (col, row), clipped to the canvas.
func (c *Canvas) Text(col, row int, s string, color RGB) {
	for _, r := range s {
		c.Glyph(col, row, r, color)
		col++
	}
}

// Fill paints every cell in the rectangle with r.
func (c *Canvas) Fill(col, row, w, h int, r rune, color RGB) {
	for y := row; y < row+h; y++ {
		for x := col; x < col+w; x++ {
			c.Glyph(x, y, r, color)
		}
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = Cell{Rune: blank}
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, color RGB) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Plot(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Cell returns the cell at (col, row); out of range cells read as empty.
func (c *Canvas) Cell(col, row int) Cell {
	if col < 0 || row < 0 || col >= c.Width || row >= c.Height {
		return Cell{Rune: blank}
	}
	return c.Grid[row][col]
}

// String renders the runes only, one line per row.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		for _, cell := range row {
			b.WriteRune(cell.Rune)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (c *Canvas) locate(x, y int) (col, row int, ok bool) {
	if x < 0 || y < 0 {
		return 0, 0, false
	}
	col, row = x/DotsX, y/DotsY
	if col >= c.Width || row >= c.Height {
		return 0, 0, false
	}
	return col, row, true
}

func luma(c RGB) int {
	return 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
