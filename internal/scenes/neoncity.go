package scenes

import (
	"math"
	"math/rand"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/stage"
)

// skylineSpan is the width of one skyline loop as a fraction of the
// screen. The extra quarter hides towers while they wrap around.
const skylineSpan = 1.25

type litWindow struct {
	u, v  float64
	color display.RGB
	phase float64
	rate  float64
}

type tower struct {
	x, w, h float64
	edge    display.RGB
	edged   bool
	windows []litWindow
}

type skyline struct {
	towers []tower
	speed  float64
	body   display.RGB
	dim    float64
	offset float64
}

type hazeStreak struct {
	x, y  float64
	speed float64
}

type neonCity struct {
	base
	layers []skyline
	haze   []hazeStreak
}

func newNeonCity(s *display.Surface, rng *rand.Rand) stage.Driver {
	n := &neonCity{base: newBase(s, rng)}
	n.layers = []skyline{
		n.skyline(14, 0.35, 0.65, 0.012, towerFar, 0.45),
		n.skyline(10, 0.45, 0.9, 0.03, towerNear, 1),
	}
	n.haze = make([]hazeStreak, 70)
	for i := range n.haze {
		n.haze[i] = hazeStreak{x: rng.Float64(), y: rng.Float64(), speed: n.between(0.6, 1.1)}
	}
	return n
}

// skyline lays count towers across one loop. Towers never get wider than
// their slot, so a wrapping tower is always off screen.
func (n *neonCity) skyline(count int, minH, maxH, speed float64, body display.RGB, dim float64) skyline {
	l := skyline{speed: speed, body: body, dim: dim, towers: make([]tower, count)}
	step := skylineSpan / float64(count)
	for i := range l.towers {
		t := tower{
			x:     float64(i)*step + n.between(0, step*0.05),
			w:     n.between(step*0.5, step*0.9),
			h:     n.between(minH, maxH),
			edge:  neonSigns[n.rng.Intn(len(neonSigns))],
			edged: n.rng.Float64() < 0.4,
		}
		color := neonSigns[n.rng.Intn(len(neonSigns))]
		for j := 2 + n.rng.Intn(5); j > 0; j-- {
			t.windows = append(t.windows, litWindow{
				u:     n.between(0.15, 0.85),
				v:     n.between(0.08, 0.9),
				color: color,
				phase: n.rng.Float64() * 2 * math.Pi,
				rate:  n.between(0.4, 2.5),
			})
		}
		l.towers[i] = t
	}
	return l
}

func (n *neonCity) Animate(dt, elapsed float64) {
	if !n.live() {
		return
	}
	c := n.canvas
	c.Clear()

	street := n.h - 1 - n.h/10
	for i := range n.layers {
		l := &n.layers[i]
		l.offset = math.Mod(l.offset+l.speed*dt, skylineSpan)
		for _, t := range l.towers {
			n.drawTower(l, t, street, elapsed)
		}
	}

	// Wet asphalt picks up a shimmer of the signs above it.
	for y := street + 1; y < n.h; y++ {
		for x := y % 2; x < n.w; x += 4 {
			tint := neonSigns[(x/16)%len(neonSigns)]
			c.Plot(x, y, tint.Scale(0.35*pulse(elapsed*2+float64(x)*0.3, 0.2)))
		}
	}

	for i := range n.haze {
		d := &n.haze[i]
		d.y += d.speed * dt
		d.x -= d.speed * dt * 0.15
		if d.x < 0 {
			d.x++
		}
		if d.y > 1 {
			*d = hazeStreak{x: n.rng.Float64(), y: 0, speed: n.between(0.6, 1.1)}
		}
		x, y := int(d.x*float64(n.w)), int(d.y*float64(n.h))
		c.DrawLine(x, y, x+1, y-3, rainBlue.Scale(0.3))
	}
}

func (n *neonCity) drawTower(l *skyline, t tower, street int, elapsed float64) {
	c := n.canvas
	w := float64(n.w)
	sx := math.Mod(t.x-l.offset+skylineSpan, skylineSpan) - (skylineSpan-1)/2
	x0, x1 := int(sx*w), int((sx+t.w)*w)
	top := street - int(t.h*float64(street))

	for y := top; y <= street; y++ {
		for x := x0; x <= x1; x++ {
			c.Plot(x, y, l.body)
		}
	}

	if t.edged {
		glow := t.edge.Scale(l.dim * pulse(elapsed*1.5+t.x*10, 0.6))
		c.DrawLine(x0, top, x1, top, glow)
		c.DrawLine(x0, top, x0, street, glow)
		c.DrawLine(x1, top, x1, street, glow)
	}

	for _, win := range t.windows {
		if math.Sin(elapsed*win.rate+win.phase) < -0.7 {
			continue
		}
		wx := x0 + int(win.u*float64(x1-x0))
		wy := top + int(win.v*float64(street-top))
		color := win.color.Scale(l.dim)
		c.Plot(wx, wy, color)
		c.Plot(wx+1, wy, color)
		c.Plot(wx, wy+1, color)
		c.Plot(wx+1, wy+1, color)
	}
}

func (n *neonCity) Destroy() {
	n.layers = nil
	n.haze = nil
	n.base.Destroy()
}
