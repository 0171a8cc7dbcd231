package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanvasPlot(t *testing.T) {
	c := NewCanvas(4, 2)
	red := Hex("#ff0000")

	c.Plot(0, 0, red)
	c.Plot(1, 3, red)
	cell := c.Cell(0, 0)
	assert.Equal(t, rune(0x2800|0x01|0x80), cell.Rune)
	assert.Equal(t, red, cell.Color)

	c.Plot(-1, 0, red)
	c.Plot(8, 0, red)
	c.Plot(0, 8, red)
	assert.True(t, c.Cell(3, 1).Empty())
}

func TestCanvasBrighterColourWins(t *testing.T) {
	c := NewCanvas(1, 1)
	dim := Hex("#202020")
	bright := Hex("#e0e0e0")

	c.Plot(0, 0, bright)
	c.Plot(1, 0, dim)
	assert.Equal(t, bright, c.Cell(0, 0).Color)
}

func TestCanvasUnset(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Set(0, 0)
	c.Set(1, 1)
	c.Unset(0, 0)
	assert.Equal(t, rune(0x2800|0x10), c.Cell(0, 0).Rune)
	c.Unset(1, 1)
	assert.True(t, c.Cell(0, 0).Empty())
}

func TestCanvasGlyphAndText(t *testing.T) {
	c := NewCanvas(5, 1)
	c.Text(3, 0, "abc", Hex("#ffffff"))
	assert.Equal(t, 'a', c.Cell(3, 0).Rune)
	assert.Equal(t, 'b', c.Cell(4, 0).Rune)

	// Plotting over a glyph turns the cell back into braille.
	c.Plot(6, 0, Hex("#ffffff"))
	assert.Equal(t, rune(0x2800|0x01), c.Cell(3, 0).Rune)
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(3, 1)
	c.DrawLine(0, 0, 5, 0, Hex("#ffffff"))
	for col := 0; col < 3; col++ {
		assert.Equal(t, rune(0x2800|0x01|0x08), c.Cell(col, 0).Rune, "col %d", col)
	}
}

func TestCanvasClearAndFill(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Fill(0, 0, 3, 2, '#', Hex("#00ff00"))
	assert.Equal(t, "###\n###\n", c.String())
	c.Clear()
	assert.Equal(t, "⠀⠀⠀\n⠀⠀⠀\n", c.String())
}

func TestColour(t *testing.T) {
	assert.Equal(t, RGB{255, 255, 255}, Hex("nope"))
	assert.Equal(t, "#1a1035", Hex("#1a1035").Hex())
	assert.Equal(t, RGB{128, 128, 128}, Black.Lerp(RGB{255, 255, 255}, 0.5))
	assert.Equal(t, RGB{255, 100, 0}, RGB{200, 50, 0}.Scale(2))
	assert.True(t, Black.IsBlack())
}

func TestSurfaceFitAndResize(t *testing.T) {
	s := NewSurface(Viewport{Cols: 10, Rows: 5})
	require.False(t, s.Attached())
	assert.Equal(t, 20, s.Width())
	assert.Equal(t, 20, s.Height())

	w, h := s.Fit(30, 10)
	assert.Equal(t, 60, w)
	assert.Equal(t, 40, h)
	assert.Equal(t, 30, s.Canvas().Width)

	s.Resize(5, 5)
	assert.Equal(t, 3, s.Canvas().Width)
	assert.Equal(t, 2, s.Canvas().Height)
}
