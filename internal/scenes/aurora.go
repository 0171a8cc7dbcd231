package scenes

import (
	"math"
	"math/rand"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/stage"
)

type band struct {
	baseY     float64
	amplitude float64
	frequency float64
	speed     float64
	phase     float64
	thickness float64
	color     display.RGB
}

type aurora struct {
	base
	bands []band
	stars []star
	ridge []float64
}

var auroraColors = []display.RGB{
	display.Hex("#4dffb0"),
	display.Hex("#3ad6c9"),
	display.Hex("#8a6dff"),
	display.Hex("#ff6db4"),
}

func newAurora(s *display.Surface, rng *rand.Rand) stage.Driver {
	a := &aurora{base: newBase(s, rng)}
	for i := 0; i < 4; i++ {
		a.bands = append(a.bands, band{
			baseY:     0.18 + float64(i)*0.07,
			amplitude: a.between(0.03, 0.08),
			frequency: a.between(1.2, 2.8),
			speed:     a.between(0.15, 0.4),
			phase:     rng.Float64() * 2 * math.Pi,
			thickness: a.between(0.12, 0.22),
			color:     auroraColors[i%len(auroraColors)],
		})
	}
	a.stars = make([]star, 90)
	for i := range a.stars {
		a.stars[i] = star{x: rng.Float64(), y: rng.Float64() * 0.7, speed: a.between(0.3, 1.5), phase: rng.Float64() * 6, bright: a.between(0.3, 0.8)}
	}
	a.ridge = ridge(rng, 32, 0.7, 0.95, 0.25)
	return a
}

func (a *aurora) Animate(dt, elapsed float64) {
	if !a.live() {
		return
	}
	c := a.canvas
	c.Clear()

	for _, st := range a.stars {
		tw := pulse(elapsed*st.speed+st.phase, 0.2) * st.bright
		c.Plot(int(st.x*float64(a.w)), int(st.y*float64(a.h)), starWhite.Scale(tw))
	}

	for _, b := range a.bands {
		for x := 0; x < a.w; x++ {
			u := float64(x) / float64(a.w)
			wave := math.Sin(u*b.frequency*2*math.Pi + elapsed*b.speed + b.phase)
			y0 := (b.baseY + b.amplitude*wave) * float64(a.h)
			curtain := pulse(u*7+elapsed*b.speed*3+b.phase, 0.15)
			length := b.thickness * float64(a.h) * curtain
			for dy := 0.0; dy < length; dy += 1 {
				fade := 1 - dy/length
				if fade*curtain < 0.25 {
					continue
				}
				c.Plot(x, int(y0+dy), b.color.Scale(fade*curtain))
			}
		}
	}

	fillRidge(c, a.ridge, a.w, a.h, 0, 1, mountainDark)
}

func (a *aurora) Destroy() {
	a.bands = nil
	a.stars = nil
	a.base.Destroy()
}
