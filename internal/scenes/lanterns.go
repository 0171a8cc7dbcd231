package scenes

import (
	"math"
	"math/rand"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/motion"
	"github.com/san-kum/nocturne/internal/stage"
)

const (
	lanternCount = 22
	lanternDrag  = 0.6
	lanternStep  = 1.0 / 60
)

type lantern struct {
	lift      float64
	sway      float64
	swaySpeed float64
	phase     float64
	flicker   float64
	color     display.RGB
	large     bool
}

// lanterns rise on buoyancy with a gentle sideways sway. The state holds
// x then y for every lantern, followed by the matching velocities.
type lanterns struct {
	base
	items []lantern
	state motion.State
	t     float64
	integ motion.Integrator
	water []float64
}

var lanternColors = []display.RGB{warmAmber, cityOrange, cityYellow, display.Hex("#ff7a5c")}

func newLanterns(s *display.Surface, rng *rand.Rand) stage.Driver {
	l := &lanterns{base: newBase(s, rng), integ: motion.NewVerlet()}
	l.items = make([]lantern, lanternCount)
	l.state = make(motion.State, 4*lanternCount)
	for i := range l.items {
		l.respawn(i, rng.Float64()*1.1)
	}
	l.water = ridge(rng, 32, 0.3, 0.97, 0.05)
	return l
}

// respawn places lantern i at height y (fraction of the screen, 0 top).
func (l *lanterns) respawn(i int, y float64) {
	n := lanternCount
	l.items[i] = lantern{
		lift:      l.between(0.02, 0.06),
		sway:      l.between(0.005, 0.02),
		swaySpeed: l.between(0.3, 0.8),
		phase:     l.rng.Float64() * 2 * math.Pi,
		flicker:   l.between(2, 5),
		color:     lanternColors[l.rng.Intn(len(lanternColors))],
		large:     l.rng.Float64() < 0.3,
	}
	l.state[i] = l.rng.Float64()
	l.state[n+i] = y
	l.state[2*n+i] = 0
	l.state[3*n+i] = -l.items[i].lift
}

func (l *lanterns) Derive(x motion.State, t float64) motion.State {
	n := lanternCount
	dx := make(motion.State, len(x))
	for i, it := range l.items {
		vx, vy := x[2*n+i], x[3*n+i]
		dx[i] = vx
		dx[n+i] = vy
		dx[2*n+i] = it.sway*math.Sin(t*it.swaySpeed+it.phase) - lanternDrag*vx
		dx[3*n+i] = -lanternDrag * (vy + it.lift)
	}
	return dx
}

func (l *lanterns) Animate(dt, elapsed float64) {
	if !l.live() {
		return
	}
	if next, err := motion.Advance(l.integ, l, l.state, l.t, dt, lanternStep); err == nil {
		l.state = next
	}
	l.t += dt

	n := lanternCount
	for i := range l.items {
		if l.state[n+i] < -0.05 {
			l.respawn(i, 1.05)
		}
	}

	c := l.canvas
	c.Clear()
	fillRidge(c, l.water, l.w, l.h, elapsed*2, 3, nightPurple.Lerp(seaDeep, 0.5))

	for i, it := range l.items {
		x := int(l.state[i] * float64(l.w))
		y := int(l.state[n+i] * float64(l.h))
		glow := it.color.Scale(pulse(elapsed*it.flicker+it.phase, 0.7))
		r := 1
		if it.large {
			r = 2
		}
		disc(c, x, y, r, glow)
		c.Plot(x, y+r+1, glow.Scale(0.4))

		// Reflection on the water.
		if ry := l.h - (l.h-y)/6; ry < l.h && ry > int(0.9*float64(l.h)) {
			c.Plot(x, ry, glow.Scale(0.35))
		}
	}
}

func (l *lanterns) Destroy() {
	l.items = nil
	l.state = nil
	l.water = nil
	l.base.Destroy()
}
