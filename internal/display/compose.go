package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Composite blends the surfaces back to front into a viewport-sized canvas.
// Each surface's colours are mixed over what lies beneath by its opacity;
// its glyphs win once it is at least half visible.
func Composite(vp Viewport, surfaces []*Surface) *Canvas {
	out := NewCanvas(vp.Cols, vp.Rows)
	for _, s := range surfaces {
		alpha := s.opacity
		if alpha <= 0 {
			continue
		}
		src := s.canvas
		for row := 0; row < out.Height; row++ {
			for col := 0; col < out.Width; col++ {
				top := src.Cell(col, row)
				dst := &out.Grid[row][col]
				if top.Empty() {
					// An empty cell is black, so it dims what lies beneath.
					dst.Color = dst.Color.Lerp(Black, alpha)
					if alpha >= 0.5 {
						dst.Rune = blank
					}
					continue
				}
				dst.Color = dst.Color.Lerp(top.Color, alpha)
				if alpha >= 0.5 || dst.Empty() {
					dst.Rune = top.Rune
				}
			}
		}
	}
	return out
}

// Render turns a canvas into terminal lines, grouping runs of equal colour
// into a single lipgloss style.
func Render(c *Canvas) []string {
	lines := make([]string, c.Height)
	var b, run strings.Builder
	for row := 0; row < c.Height; row++ {
		b.Reset()
		run.Reset()
		var cur RGB
		open := false
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur.IsBlack() {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(cur.Color()).Render(run.String()))
			}
			run.Reset()
		}
		for _, cell := range c.Grid[row] {
			r, color := cell.Rune, cell.Color.quantize()
			if cell.Empty() {
				r, color = ' ', Black
			}
			if !open || color != cur {
				flush()
				cur, open = color, true
			}
			run.WriteRune(r)
		}
		flush()
		lines[row] = b.String()
	}
	return lines
}

// Compose blends every live surface into a fresh viewport-sized canvas.
func (p *Pool) Compose() *Canvas {
	return Composite(p.viewport, p.Ordered())
}

// Frame composites the pool and renders it to terminal lines.
func (p *Pool) Frame() []string {
	return Render(p.Compose())
}
