package scenes

import (
	"math"
	"math/rand"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/stage"
)

type swell struct {
	level     float64
	amplitude float64
	length    float64
	speed     float64
	phase     float64
}

type ocean struct {
	base
	swells []swell
	stars  []star
	beam   float64
}

const beamSpeed = 0.6

func newOcean(s *display.Surface, rng *rand.Rand) stage.Driver {
	o := &ocean{base: newBase(s, rng)}
	for i := 0; i < 5; i++ {
		o.swells = append(o.swells, swell{
			level:     0.58 + float64(i)*0.08,
			amplitude: 0.01 + float64(i)*0.006,
			length:    o.between(0.8, 2.2),
			speed:     o.between(0.3, 0.9) * (1 + float64(i)*0.2),
			phase:     rng.Float64() * 2 * math.Pi,
		})
	}
	o.stars = make([]star, 60)
	for i := range o.stars {
		o.stars[i] = star{x: rng.Float64(), y: rng.Float64() * 0.5, speed: o.between(0.5, 2), phase: rng.Float64() * 6, bright: o.between(0.3, 0.9)}
	}
	return o
}

func (o *ocean) Animate(dt, elapsed float64) {
	if !o.live() {
		return
	}
	c := o.canvas
	c.Clear()
	o.beam = math.Mod(o.beam+beamSpeed*dt, 2*math.Pi)

	for _, st := range o.stars {
		tw := pulse(elapsed*st.speed+st.phase, 0.2) * st.bright
		if tw > 0.3 {
			c.Plot(int(st.x*float64(o.w)), int(st.y*float64(o.h)), starWhite.Scale(tw))
		}
	}

	mx, my := int(0.3*float64(o.w)), int(0.2*float64(o.h))
	disc(c, mx, my, max(2, o.h/16), moonGlow)

	// Lighthouse on the right headland, beam sweeping across the sky.
	lx, ly := int(0.86*float64(o.w)), int(0.46*float64(o.h))
	for y := ly; y < int(0.6*float64(o.h)); y++ {
		c.Plot(lx, y, dustyPink)
		c.Plot(lx+1, y, dustyPink)
	}
	if cos := math.Cos(o.beam); cos < 0.2 {
		reach := 0.7 * float64(o.w)
		ex := float64(lx) + math.Cos(o.beam+math.Pi/2)*reach
		ey := float64(ly) - math.Abs(math.Sin(o.beam+math.Pi/2))*0.15*float64(o.h)
		c.DrawLine(lx, ly, int(ex), int(ey), beamGold.Scale(0.3+0.7*(0.2-cos)/1.2))
	}
	c.Plot(lx, ly-1, beamGold)

	for i, sw := range o.swells {
		shade := seaLight.Lerp(seaDeep, float64(i)/float64(len(o.swells)))
		for x := 0; x < o.w; x++ {
			u := float64(x) / float64(o.w)
			y := (sw.level + sw.amplitude*math.Sin(u*sw.length*2*math.Pi-elapsed*sw.speed+sw.phase)) * float64(o.h)
			c.Plot(x, int(y), shade)
			if x%3 == 0 {
				c.Plot(x, int(y)+2, shade.Scale(0.6))
			}
		}
	}

	// Moon glitter on the water below the moon.
	for y := int(0.6 * float64(o.h)); y < o.h; y += 2 {
		spread := float64(y-int(0.6*float64(o.h)))*0.15 + 1
		off := spread * math.Sin(elapsed*2+float64(y)*0.7)
		c.Plot(mx+int(off), y, moonGlow.Scale(pulse(elapsed*3+float64(y), 0.3)))
	}
}

func (o *ocean) Destroy() {
	o.swells = nil
	o.stars = nil
	o.base.Destroy()
}
