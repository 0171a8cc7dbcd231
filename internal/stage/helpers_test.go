package stage_test

import (
	"time"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/stage"
)

type fakeDriver struct {
	scene    string
	surface  *display.Surface
	animates int
	lastDt   float64
	elapsed  float64
	resizes  [][2]int
	destroys int
}

func (d *fakeDriver) Animate(dt, elapsed float64) {
	d.animates++
	d.lastDt = dt
	d.elapsed = elapsed
}

func (d *fakeDriver) Resize(w, h int) {
	d.resizes = append(d.resizes, [2]int{w, h})
	d.surface.Fit(w, h)
}

func (d *fakeDriver) Destroy() { d.destroys++ }

// countingPool wraps the real pool and counts releases per surface.
type countingPool struct {
	*display.Pool
	destroyed map[*display.Surface]int
}

func (p *countingPool) Destroy(s *display.Surface) bool {
	p.destroyed[s]++
	return p.Pool.Destroy(s)
}

type rig struct {
	start    time.Time
	loop     *stage.Loop
	pool     *countingPool
	orch     *stage.Orchestrator
	drivers  []*fakeDriver
	names    []string
	built    map[string]int
	registry []stage.Scene
}

func newRig(names []string, opts ...stage.Option) *rig {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	r := &rig{
		start: start,
		loop:  stage.NewLoop(start),
		pool: &countingPool{
			Pool:      display.NewPool(display.Viewport{Cols: 40, Rows: 12}, 2*time.Second),
			destroyed: map[*display.Surface]int{},
		},
		built: map[string]int{},
	}
	for _, n := range names {
		name := n
		r.registry = append(r.registry, stage.Scene{Name: name, New: func(s *display.Surface) stage.Driver {
			d := &fakeDriver{scene: name, surface: s}
			r.drivers = append(r.drivers, d)
			r.built[name]++
			return d
		}})
	}
	notify := stage.NotifierFunc(func(name string) { r.names = append(r.names, name) })
	opts = append([]stage.Option{stage.WithSeed(7)}, opts...)
	orch, err := stage.New(r.registry, r.pool, notify, r.loop, opts...)
	if err != nil {
		panic(err)
	}
	r.orch = orch
	return r
}

func (r *rig) at(d time.Duration) time.Time { return r.start.Add(d) }

// frame runs one host frame at offset d: deferred work, due timers, surface
// transitions by step, then the orchestrator tick.
func (r *rig) frame(d, step time.Duration) {
	r.loop.Flush()
	r.loop.Advance(r.at(d))
	r.pool.Step(step)
	r.orch.Tick(r.at(d))
}

func (r *rig) active() *fakeDriver {
	if d, ok := r.orch.ActiveDriver().(*fakeDriver); ok {
		return d
	}
	return nil
}

func (r *rig) next() *fakeDriver {
	if d, ok := r.orch.NextDriver().(*fakeDriver); ok {
		return d
	}
	return nil
}

// settle runs everything a frame does except the orchestrator tick.
func (r *rig) settle(d, step time.Duration) {
	r.loop.Flush()
	r.loop.Advance(r.at(d))
	r.pool.Step(step)
}
