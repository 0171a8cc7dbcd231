package scenes

import (
	"math"
	"math/rand"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/motion"
	"github.com/san-kum/nocturne/internal/stage"
)

const (
	fireflyCount  = 36
	fireflySpring = 1.6
	fireflyDamp   = 0.9
	fireflyStep   = 1.0 / 60
)

type firefly struct {
	homeX, homeY float64
	wander       float64
	phase        float64
	blink        float64
}

type pine struct {
	x, height, width float64
	back             bool
}

// fireflies drift around wandering anchors. State is laid out as all x
// positions, all y positions, then the matching velocities.
type fireflies struct {
	base
	flies []firefly
	trees []pine
	state motion.State
	t     float64
	integ motion.Integrator
}

func newFireflies(s *display.Surface, rng *rand.Rand) stage.Driver {
	f := &fireflies{base: newBase(s, rng), integ: motion.NewEuler()}
	f.flies = make([]firefly, fireflyCount)
	f.state = make(motion.State, 4*fireflyCount)
	for i := range f.flies {
		f.flies[i] = firefly{
			homeX:  rng.Float64(),
			homeY:  f.between(0.35, 0.85),
			wander: f.between(0.3, 0.9),
			phase:  rng.Float64() * 2 * math.Pi,
			blink:  f.between(0.6, 1.8),
		}
		f.state[i] = f.flies[i].homeX
		f.state[fireflyCount+i] = f.flies[i].homeY
	}
	for i := 0; i < 14; i++ {
		f.trees = append(f.trees, pine{
			x:      rng.Float64(),
			height: f.between(0.3, 0.6),
			width:  f.between(0.04, 0.09),
			back:   i%2 == 0,
		})
	}
	return f
}

func (f *fireflies) Derive(x motion.State, t float64) motion.State {
	n := fireflyCount
	dx := make(motion.State, len(x))
	for i, fl := range f.flies {
		ax := fl.homeX + 0.08*math.Sin(t*fl.wander+fl.phase)
		ay := fl.homeY + 0.05*math.Cos(t*fl.wander*1.3+fl.phase)
		px, py := x[i], x[n+i]
		vx, vy := x[2*n+i], x[3*n+i]
		dx[i] = vx
		dx[n+i] = vy
		dx[2*n+i] = fireflySpring*(ax-px) - fireflyDamp*vx
		dx[3*n+i] = fireflySpring*(ay-py) - fireflyDamp*vy
	}
	return dx
}

func (f *fireflies) Animate(dt, elapsed float64) {
	if !f.live() {
		return
	}
	if next, err := motion.Advance(f.integ, f, f.state, f.t, dt, fireflyStep); err == nil {
		f.state = next
	}
	f.t += dt

	c := f.canvas
	c.Clear()
	for _, p := range f.trees {
		if p.back {
			f.drawPine(p, pineBack)
		}
	}

	n := fireflyCount
	for i, fl := range f.flies {
		glow := pulse(elapsed*fl.blink+fl.phase, 0)
		if glow < 0.2 {
			continue
		}
		x := int(f.state[i] * float64(f.w))
		y := int(f.state[n+i] * float64(f.h))
		col := fireflyGlow.Scale(glow)
		c.Plot(x, y, col)
		if glow > 0.7 {
			c.Plot(x+1, y, col.Scale(0.6))
			c.Plot(x, y+1, col.Scale(0.6))
		}
	}

	for _, p := range f.trees {
		if !p.back {
			f.drawPine(p, pineDark)
		}
	}
}

func (f *fireflies) drawPine(p pine, color display.RGB) {
	cx := p.x * float64(f.w)
	top := float64(f.h) * (1 - p.height)
	half := p.width * float64(f.w) / 2
	for y := int(top); y < f.h; y++ {
		span := half * (float64(y) - top) / (float64(f.h) - top)
		for x := int(cx - span); x <= int(cx+span); x++ {
			f.canvas.Plot(x, y, color)
		}
	}
}

func (f *fireflies) Destroy() {
	f.flies = nil
	f.trees = nil
	f.state = nil
	f.base.Destroy()
}
