package scenes

import (
	"math"
	"math/rand"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/stage"
)

type raindrop struct {
	x, y   float64
	speed  float64
	length float64
}

type streetLight struct {
	x, y  float64
	color display.RGB
	phase float64
	glyph rune
}

type rain struct {
	base
	drops  []raindrop
	lights []streetLight
	trails []float64
}

func newRain(s *display.Surface, rng *rand.Rand) stage.Driver {
	r := &rain{base: newBase(s, rng)}
	r.lights = make([]streetLight, 28)
	glyphs := []rune{'•', '·', '∙', 'o'}
	for i := range r.lights {
		r.lights[i] = streetLight{
			x:     rng.Float64(),
			y:     r.between(0.25, 0.75),
			color: cityLights[rng.Intn(len(cityLights))],
			phase: rng.Float64() * 2 * math.Pi,
			glyph: glyphs[rng.Intn(len(glyphs))],
		}
	}
	r.drops = make([]raindrop, 120)
	for i := range r.drops {
		r.drops[i] = r.spawn(rng.Float64())
	}
	return r
}

func (r *rain) spawn(y float64) raindrop {
	return raindrop{
		x:      r.rng.Float64(),
		y:      y,
		speed:  r.between(0.15, 0.5),
		length: r.between(0.02, 0.06),
	}
}

func (r *rain) Resize(cols, rows int) {
	r.base.Resize(cols, rows)
	r.trails = make([]float64, r.w)
}

func (r *rain) Animate(dt, elapsed float64) {
	if !r.live() {
		return
	}
	c := r.canvas
	c.Clear()

	cols, rows := c.Width, c.Height
	for _, l := range r.lights {
		b := pulse(elapsed*0.8+l.phase, 0.45)
		c.Glyph(int(l.x*float64(cols-1)), int(l.y*float64(rows-1)), l.glyph, l.color.Scale(b))
	}

	for i := range r.drops {
		d := &r.drops[i]
		d.y += d.speed * dt
		if d.y-d.length > 1 {
			if len(r.trails) > 0 {
				r.trails[int(d.x*float64(len(r.trails)-1))] = 1
			}
			*d = r.spawn(-d.length)
		}
		x := int(d.x * float64(r.w))
		c.DrawLine(x, int((d.y-d.length)*float64(r.h)), x, int(d.y*float64(r.h)), rainBlue.Scale(0.5+d.speed))
	}

	// Drops that reach the sill leave a short-lived streak along the bottom.
	for x, v := range r.trails {
		if v <= 0 {
			continue
		}
		c.Plot(x, r.h-1, rainBlue.Scale(v))
		r.trails[x] = math.Max(0, v-dt*0.8)
	}
}

func (r *rain) Destroy() {
	r.drops = nil
	r.lights = nil
	r.trails = nil
	r.base.Destroy()
}
