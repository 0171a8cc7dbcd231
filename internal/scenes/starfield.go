package scenes

import (
	"math"
	"math/rand"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/stage"
)

const (
	starCount      = 160
	shootingChance = 0.004
	panSpeed       = 1.5
)

type star struct {
	x, y   float64
	speed  float64
	phase  float64
	bright float64
}

type meteor struct {
	x, y   float64
	vx, vy float64
	life   float64
}

type starfield struct {
	base
	stars   []star
	meteors []meteor
	back    []float64
	front   []float64
	pan     float64
}

func newStarfield(s *display.Surface, rng *rand.Rand) stage.Driver {
	sf := &starfield{base: newBase(s, rng)}
	sf.stars = make([]star, starCount)
	for i := range sf.stars {
		sf.stars[i] = star{
			x:      rng.Float64(),
			y:      rng.Float64() * 0.6,
			speed:  sf.between(0.5, 2.5),
			phase:  rng.Float64() * 2 * math.Pi,
			bright: sf.between(0.4, 1),
		}
	}
	sf.back = ridge(rng, 64, 0.9, 0.78, 0.35)
	sf.front = ridge(rng, 64, 1.1, 0.92, 0.3)
	return sf
}

func (sf *starfield) Animate(dt, elapsed float64) {
	if !sf.live() {
		return
	}
	c := sf.canvas
	c.Clear()
	sf.pan += panSpeed * dt

	for _, st := range sf.stars {
		tw := pulse(elapsed*st.speed+st.phase, 0.1) * st.bright
		if tw < 0.35 {
			continue
		}
		c.Plot(int(st.x*float64(sf.w)), int(st.y*float64(sf.h)), starWhite.Scale(tw))
	}

	sf.stepMeteors(dt)
	for _, m := range sf.meteors {
		tail := 0.06 * float64(sf.w)
		norm := math.Hypot(m.vx, m.vy)
		x1 := m.x * float64(sf.w)
		y1 := m.y * float64(sf.h)
		x0 := x1 - m.vx/norm*tail
		y0 := y1 - m.vy/norm*tail
		c.DrawLine(int(x0), int(y0), int(x1), int(y1), starWhite.Scale(m.life))
	}

	mx, my := int(0.78*float64(sf.w)), int(0.18*float64(sf.h))
	r := max(2, sf.h/14)
	ring(c, mx, my, r+3, moonHalo.Scale(pulse(elapsed*0.4, 0.3)*0.5))
	disc(c, mx, my, r, moonGlow)

	fillRidge(c, sf.back, sf.w, sf.h, sf.pan*0.5, 2, mountainMid)
	fillRidge(c, sf.front, sf.w, sf.h, sf.pan, 1, mountainDark.Lerp(midPurple, 0.3))
}

func (sf *starfield) stepMeteors(dt float64) {
	if sf.rng.Float64() < shootingChance {
		sf.meteors = append(sf.meteors, meteor{
			x:    sf.between(0.1, 0.7),
			y:    sf.between(0.05, 0.3),
			vx:   sf.between(0.4, 0.7),
			vy:   sf.between(0.15, 0.3),
			life: 1,
		})
	}
	live := sf.meteors[:0]
	for _, m := range sf.meteors {
		m.x += m.vx * dt
		m.y += m.vy * dt
		m.life -= dt * 1.2
		if m.life > 0 && m.x < 1 && m.y < 0.7 {
			live = append(live, m)
		}
	}
	sf.meteors = live
}

func (sf *starfield) Destroy() {
	sf.stars = nil
	sf.meteors = nil
	sf.base.Destroy()
}
