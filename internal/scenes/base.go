package scenes

import (
	"math/rand"

	"github.com/san-kum/nocturne/internal/display"
)

// base carries the surface binding every scene shares. Sizes are kept in
// device pixels (braille dots) once Resize has run.
type base struct {
	surface *display.Surface
	canvas  *display.Canvas
	rng     *rand.Rand
	w, h    int
}

func newBase(s *display.Surface, rng *rand.Rand) base {
	return base{surface: s, canvas: s.Canvas(), rng: rng, w: s.Width(), h: s.Height()}
}

// Resize translates a logical size in cells into the dot backing store.
func (b *base) Resize(cols, rows int) {
	if b.surface == nil {
		return
	}
	b.w, b.h = b.surface.Fit(cols, rows)
	b.canvas = b.surface.Canvas()
}

// Destroy drops the surface binding; the pool releases the surface itself.
func (b *base) Destroy() {
	if b.canvas != nil {
		b.canvas.Clear()
	}
	b.surface = nil
	b.canvas = nil
}

// live reports whether there is something to draw on.
func (b *base) live() bool {
	return b.canvas != nil && b.w > 0 && b.h > 0
}

func (b *base) between(lo, hi float64) float64 {
	return lo + b.rng.Float64()*(hi-lo)
}
