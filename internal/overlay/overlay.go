// Package overlay shows the name of the scene that just started, boxed in
// the lower left corner, and hides it again after a few seconds.
package overlay

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/stage"
)

const DefaultDuration = 3 * time.Second

var (
	borderColor = display.Hex("#444466")
	titleStart  = display.Hex("#ffd166")
	titleEnd    = display.Hex("#ef6f9c")
	labelColor  = display.Hex("#888899")
)

// Card is the standalone rendering of a name, for output outside the
// display loop.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(borderColor.Color()).
	Padding(0, 2)

// Overlay implements stage.Notifier.
type Overlay struct {
	sched    stage.Scheduler
	duration time.Duration
	name     string
	visible  bool
	hide     stage.Timer
	gen      int
}

func New(sched stage.Scheduler, duration time.Duration) *Overlay {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return &Overlay{sched: sched, duration: duration}
}

// ShowName displays name and (re)arms the hide timer, so a name shown
// while another is still up gets the full duration.
func (o *Overlay) ShowName(name string) {
	o.stopTimer()
	o.name = name
	o.visible = true
	o.gen++
	gen := o.gen
	o.hide = o.sched.After(o.duration, func() {
		if gen == o.gen {
			o.visible = false
			o.hide = nil
		}
	})
}

// Hide removes the overlay immediately.
func (o *Overlay) Hide() {
	o.stopTimer()
	o.visible = false
}

func (o *Overlay) stopTimer() {
	if o.hide != nil {
		o.hide.Stop()
		o.hide = nil
	}
}

func (o *Overlay) Visible() bool { return o.visible }
func (o *Overlay) Name() string  { return o.name }

// Draw paints the box onto a composited frame. Nothing is drawn while the
// overlay is hidden.
func (o *Overlay) Draw(c *display.Canvas) {
	if !o.visible || c == nil {
		return
	}
	name := []rune(o.name)
	label := []rune("now showing")
	inner := max(len(name), len(label)) + 4
	col := 2
	row := c.Height - 5
	if row < 0 {
		row = 0
	}

	b := lipgloss.RoundedBorder()
	c.Glyph(col, row, []rune(b.TopLeft)[0], borderColor)
	c.Glyph(col+inner+1, row, []rune(b.TopRight)[0], borderColor)
	c.Glyph(col, row+3, []rune(b.BottomLeft)[0], borderColor)
	c.Glyph(col+inner+1, row+3, []rune(b.BottomRight)[0], borderColor)
	for i := 1; i <= inner; i++ {
		c.Glyph(col+i, row, []rune(b.Top)[0], borderColor)
		c.Glyph(col+i, row+3, []rune(b.Bottom)[0], borderColor)
	}
	for r := row + 1; r <= row+2; r++ {
		c.Glyph(col, r, []rune(b.Left)[0], borderColor)
		c.Glyph(col+inner+1, r, []rune(b.Right)[0], borderColor)
		c.Fill(col+1, r, inner, 1, ' ', display.Black)
	}

	c.Text(col+3, row+1, string(label), labelColor)
	for i, r := range name {
		c.Glyph(col+3+i, row+2, r, gradientAt(i, len(name)))
	}
}

// View renders the current name as a styled card, or "" while hidden.
func (o *Overlay) View() string {
	if !o.visible {
		return ""
	}
	return Card.Render(GradientText(o.name, titleStart, titleEnd))
}

// GradientText colours each rune of text along a start to end gradient.
func GradientText(text string, start, end display.RGB) string {
	runes := []rune(text)
	var b strings.Builder
	for i, r := range runes {
		color := start.Lerp(end, position(i, len(runes)))
		b.WriteString(lipgloss.NewStyle().Foreground(color.Color()).Render(string(r)))
	}
	return b.String()
}

// Title renders a scene name with the overlay gradient.
func Title(name string) string {
	return GradientText(name, titleStart, titleEnd)
}

func gradientAt(i, n int) display.RGB {
	return titleStart.Lerp(titleEnd, position(i, n))
}

func position(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}
