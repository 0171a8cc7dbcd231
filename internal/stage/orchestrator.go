package stage

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/san-kum/nocturne/internal/display"
)

const (
	DefaultSceneDuration     = 60 * time.Second
	DefaultMaxDt             = 100 * time.Millisecond
	DefaultTransitionTimeout = 3 * time.Second
	DefaultResizeDebounce    = 150 * time.Millisecond

	// activeZ is where the active surface sits; the incoming one is stacked
	// directly above it.
	activeZ = 1
)

type slot struct {
	surface *display.Surface
	driver  Driver
	index   int
}

// transition is one crossfade. Its done flag makes completion
// first-writer-wins between the transition-end signal and the fallback.
type transition struct {
	next  int
	timer Timer
	done  bool
}

// Orchestrator owns scene timing, selection, the surface pair and the
// crossfade state machine. It is not safe for concurrent use: every method
// must be called from the scheduler's thread.
type Orchestrator struct {
	scenes   []Scene
	pool     Pool
	notify   Notifier
	sched    Scheduler
	selector *Selector
	clock    *FrameClock
	resize   *Debouncer
	log      zerolog.Logger

	sceneDuration float64
	maxDt         time.Duration
	timeout       time.Duration
	resizeWait    time.Duration
	seed          int64

	currentIndex  int
	elapsed       float64
	sceneTime     float64
	transitioning bool
	active        *slot
	next          *slot
	pending       *transition
	transitions   int

	started, stopped bool
}

type Option func(*Orchestrator)

// WithSceneDuration sets how long a scene plays before the crossfade.
func WithSceneDuration(d time.Duration) Option {
	return func(o *Orchestrator) { o.sceneDuration = d.Seconds() }
}

// WithMaxDt sets the frame step clamp.
func WithMaxDt(d time.Duration) Option {
	return func(o *Orchestrator) { o.maxDt = d }
}

// WithTransitionTimeout sets the fallback that completes a crossfade whose
// transition-end signal never arrives.
func WithTransitionTimeout(d time.Duration) Option {
	return func(o *Orchestrator) { o.timeout = d }
}

// WithResizeDebounce sets the quiet window for resize requests.
func WithResizeDebounce(d time.Duration) Option {
	return func(o *Orchestrator) { o.resizeWait = d }
}

// WithSeed seeds scene selection.
func WithSeed(seed int64) Option {
	return func(o *Orchestrator) { o.seed = seed }
}

func WithLogger(l zerolog.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

// New validates the registry and wires the collaborators. Nothing is
// created until Start.
func New(scenes []Scene, pool Pool, notify Notifier, sched Scheduler, opts ...Option) (*Orchestrator, error) {
	if len(scenes) == 0 {
		return nil, ErrNoScenes
	}
	for i, sc := range scenes {
		if sc.New == nil {
			return nil, fmt.Errorf("scene %d (%q): %w", i, sc.Name, ErrNilFactory)
		}
	}
	if notify == nil {
		notify = Notifiers(nil)
	}

	o := &Orchestrator{
		scenes:        append([]Scene(nil), scenes...),
		pool:          pool,
		notify:        notify,
		sched:         sched,
		log:           zerolog.Nop(),
		sceneDuration: DefaultSceneDuration.Seconds(),
		maxDt:         DefaultMaxDt,
		timeout:       DefaultTransitionTimeout,
		resizeWait:    DefaultResizeDebounce,
		seed:          time.Now().UnixNano(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.selector = NewSelector(o.seed)
	o.clock = NewFrameClock(o.maxDt)
	o.resize = NewDebouncer(sched, o.resizeWait)
	return o, nil
}

// Start activates a uniformly random opening scene and makes now the
// reference time of the frame clock.
func (o *Orchestrator) Start(now time.Time) error {
	if o.started {
		return ErrAlreadyStarted
	}
	o.started = true
	o.currentIndex = o.selector.PickFirst(len(o.scenes))
	o.active = o.mount(o.currentIndex, activeZ, 1)
	o.clock.Reset(now)
	o.log.Info().Str("scene", o.scenes[o.currentIndex].Name).Msg("scene active")
	o.notify.ShowName(o.scenes[o.currentIndex].Name)
	return nil
}

// Tick is the per-frame callback.
func (o *Orchestrator) Tick(now time.Time) {
	if !o.started || o.stopped {
		return
	}
	dt := o.clock.Step(now)
	o.elapsed += dt
	o.sceneTime += dt

	o.active.driver.Animate(dt, o.elapsed)
	if o.next != nil {
		o.next.driver.Animate(dt, o.elapsed)
	}

	// An expiry during a crossfade is dropped, not queued.
	if !o.transitioning && o.sceneTime >= o.sceneDuration {
		o.begin("duration")
	}
}

// Skip starts a transition now. It is ignored while one is in flight.
func (o *Orchestrator) Skip() {
	if !o.started || o.stopped {
		return
	}
	if o.transitioning {
		o.log.Debug().Msg("skip ignored: transition in flight")
		return
	}
	o.begin("skip")
}

// RequestResize coalesces viewport changes; only the last one inside the
// quiet window reaches the drivers.
func (o *Orchestrator) RequestResize(width, height int) {
	if !o.started || o.stopped {
		return
	}
	o.resize.Trigger(func() { o.ResizeActive(width, height) })
}

// ResizeActive forwards a logical size to every live driver.
func (o *Orchestrator) ResizeActive(width, height int) {
	if !o.started || o.stopped {
		return
	}
	o.log.Debug().Int("width", width).Int("height", height).Msg("resize")
	o.active.driver.Resize(width, height)
	if o.next != nil {
		o.next.driver.Resize(width, height)
	}
}

// Stop releases every live driver and surface. The orchestrator cannot be
// restarted.
func (o *Orchestrator) Stop() {
	if !o.started || o.stopped {
		return
	}
	o.stopped = true
	o.resize.Cancel()
	if t := o.pending; t != nil {
		t.done = true
		if t.timer != nil {
			t.timer.Stop()
		}
	}
	if o.next != nil {
		o.next.surface.OnTransitionEnd(nil)
		o.retire(o.next)
		o.next = nil
	}
	o.retire(o.active)
	o.transitioning = false
	o.pending = nil
}

func (o *Orchestrator) begin(reason string) {
	if o.transitioning {
		return
	}
	nextIndex := o.selector.PickNext(o.currentIndex, len(o.scenes))
	in := o.mount(nextIndex, o.active.surface.ZIndex()+1, 0)
	o.next = in
	o.transitioning = true

	t := &transition{next: nextIndex}
	o.pending = t

	name := o.scenes[nextIndex].Name
	o.log.Info().Str("scene", name).Str("reason", reason).Msg("transition start")
	o.notify.ShowName(name)

	in.surface.OnTransitionEnd(func() { o.finish(t, "signal") })
	// The fade starts a frame later so the opacity change is observed
	// separately from the surface creation.
	o.sched.Defer(func() {
		if !t.done {
			in.surface.FadeTo(1)
		}
	})
	t.timer = o.sched.After(o.timeout, func() { o.finish(t, "fallback") })
}

func (o *Orchestrator) finish(t *transition, via string) {
	if t.done {
		return
	}
	t.done = true
	if t.timer != nil {
		t.timer.Stop()
	}

	in, out := o.next, o.active
	in.surface.OnTransitionEnd(nil)
	o.retire(out)

	in.surface.SetZIndex(activeZ)
	in.surface.ClearTransition()
	in.surface.SetOpacity(1)

	o.active = in
	o.next = nil
	o.pending = nil
	o.currentIndex = t.next
	o.sceneTime = 0
	o.transitioning = false
	o.transitions++

	o.log.Info().Str("scene", o.scenes[o.currentIndex].Name).Str("via", via).Msg("scene active")
}

func (o *Orchestrator) mount(index, z int, opacity float64) *slot {
	s := o.pool.Create()
	s.SetZIndex(z)
	s.SetOpacity(opacity)
	drv := o.scenes[index].New(s)
	vp := o.pool.Viewport()
	drv.Resize(vp.Cols, vp.Rows)
	return &slot{surface: s, driver: drv, index: index}
}

// retire destroys the driver before its surface so no driver write can
// land on a released surface.
func (o *Orchestrator) retire(s *slot) {
	s.driver.Destroy()
	if !o.pool.Destroy(s.surface) {
		o.log.Warn().Int("surface", s.surface.ID()).Msg("surface already released")
	}
}

// Snapshot is a read-only view of the orchestrator state.
type Snapshot struct {
	CurrentIndex  int
	NextIndex     int
	Elapsed       float64
	SceneTime     float64
	Transitioning bool
	HasNext       bool
	Transitions   int
	Scene         string
}

func (o *Orchestrator) Snapshot() Snapshot {
	s := Snapshot{
		CurrentIndex:  o.currentIndex,
		NextIndex:     -1,
		Elapsed:       o.elapsed,
		SceneTime:     o.sceneTime,
		Transitioning: o.transitioning,
		HasNext:       o.next != nil,
		Transitions:   o.transitions,
		Scene:         o.scenes[o.currentIndex].Name,
	}
	if o.next != nil {
		s.NextIndex = o.next.index
	}
	return s
}

// ActiveDriver returns the driver in the active slot, nil before Start.
func (o *Orchestrator) ActiveDriver() Driver {
	if o.active == nil {
		return nil
	}
	return o.active.driver
}

// NextDriver returns the incoming driver while a transition is in flight.
func (o *Orchestrator) NextDriver() Driver {
	if o.next == nil {
		return nil
	}
	return o.next.driver
}

// Scenes returns the registry in order.
func (o *Orchestrator) Scenes() []Scene { return append([]Scene(nil), o.scenes...) }
