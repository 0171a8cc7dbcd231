package scenes

import (
	"math"
	"math/rand"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/motion"
	"github.com/san-kum/nocturne/internal/stage"
)

const (
	pendulumCount   = 15
	pendulumCycle   = 60.0 // seconds until the pattern realigns
	pendulumBase    = 51   // oscillations of the longest pendulum per cycle
	pendulumAmp     = 0.35 // radians
	pendulumStep    = 1.0 / 120
	pendulumGravity = 9.81
)

// pendulumWave swings a row of pendulums whose periods are tuned so they
// drift in and out of phase. State is all angles then all angular
// velocities.
type pendulumWave struct {
	base
	lengths []float64
	state   motion.State
	t       float64
	integ   motion.Integrator
	colors  []display.RGB
}

func newPendulumWave(s *display.Surface, rng *rand.Rand) stage.Driver {
	p := &pendulumWave{base: newBase(s, rng), integ: motion.NewRK4()}
	p.lengths = make([]float64, pendulumCount)
	p.colors = make([]display.RGB, pendulumCount)
	p.state = make(motion.State, 2*pendulumCount)
	for i := range p.lengths {
		period := pendulumCycle / float64(pendulumBase+i)
		p.lengths[i] = pendulumGravity * math.Pow(period/(2*math.Pi), 2)
		p.colors[i] = cityPink.Lerp(rainBlue, float64(i)/float64(pendulumCount-1))
		p.state[i] = pendulumAmp
	}
	return p
}

func (p *pendulumWave) Derive(x motion.State, t float64) motion.State {
	n := pendulumCount
	dx := make(motion.State, len(x))
	for i, l := range p.lengths {
		dx[i] = x[n+i]
		dx[n+i] = -pendulumGravity / l * math.Sin(x[i])
	}
	return dx
}

func (p *pendulumWave) Animate(dt, elapsed float64) {
	if !p.live() {
		return
	}
	if next, err := motion.Advance(p.integ, p, p.state, p.t, dt, pendulumStep); err == nil {
		p.state = next
	}
	p.t += dt

	c := p.canvas
	c.Clear()
	top := p.h / 10
	c.DrawLine(p.w/10, top, p.w-p.w/10, top, mountainMid)

	longest := p.lengths[0]
	span := float64(p.h) * 0.8
	for i, l := range p.lengths {
		ax := p.w/10 + (i*(p.w-p.w/5))/(pendulumCount-1)
		reach := span * l / longest
		theta := p.state[i]
		bx := float64(ax) + reach*math.Sin(theta)
		by := float64(top) + reach*math.Cos(theta)
		c.DrawLine(ax, top, int(bx), int(by), midPurple.Lerp(moonHalo, 0.3))
		disc(c, int(bx), int(by), max(1, p.h/40), p.colors[i])
	}
}

func (p *pendulumWave) Destroy() {
	p.lengths = nil
	p.state = nil
	p.base.Destroy()
}
