package scenes

import (
	"math"
	"math/rand"

	"github.com/san-kum/nocturne/internal/display"
)

// disc fills a circle of dots.
func disc(c *display.Canvas, cx, cy, r int, color display.RGB) {
	for y := -r; y <= r; y++ {
		for x := -r; x <= r; x++ {
			if x*x+y*y <= r*r {
				c.Plot(cx+x, cy+y, color)
			}
		}
	}
}

// ring draws the outline of a circle with dots.
func ring(c *display.Canvas, cx, cy, r int, color display.RGB) {
	steps := int(2*math.Pi*float64(r)) + 8
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Plot(cx+int(math.Round(float64(r)*math.Cos(a))), cy+int(math.Round(float64(r)*math.Sin(a))), color)
	}
}

// ridge builds a closed mountain profile by midpoint displacement. Values
// are fractions of the height: the lowest point sits at baseY and the
// highest peakY above it.
func ridge(rng *rand.Rand, segments int, roughness, baseY, peakY float64) []float64 {
	points := make([]float64, segments+1)
	step := segments
	scale := roughness
	for step > 1 {
		half := step / 2
		for i := half; i < segments; i += step {
			avg := (points[i-half] + points[i+half]) / 2
			points[i] = avg + (rng.Float64()-0.5)*scale
		}
		step = half
		scale *= 0.5
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		lo = math.Min(lo, p)
		hi = math.Max(hi, p)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}
	for i, p := range points {
		points[i] = baseY - (p-lo)/span*peakY
	}
	return points
}

// fillRidge fills everything below a scrolling profile. density thins the
// fill: 1 paints every dot column, 2 every other one.
func fillRidge(c *display.Canvas, points []float64, w, h int, scroll float64, density int, color display.RGB) {
	n := len(points)
	if n < 2 || w == 0 {
		return
	}
	perSeg := float64(w) / (float64(n) * 0.6)
	offset := math.Mod(scroll, float64(n)*perSeg)
	for px := 0; px < w; px += density {
		idx := math.Mod((float64(px)+offset)/perSeg, float64(n))
		i0 := int(idx) % n
		i1 := (i0 + 1) % n
		t := idx - math.Floor(idx)
		y := int((points[i0]*(1-t) + points[i1]*t) * float64(h))
		for py := y; py < h; py++ {
			c.Plot(px, py, color)
		}
	}
}

// pulse maps a phase to [lo, 1].
func pulse(phase, lo float64) float64 {
	return lo + (1-lo)*(0.5+0.5*math.Sin(phase))
}
