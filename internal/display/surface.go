package display

import (
	"math"
	"time"
)

// Viewport is the logical display size in terminal cells.
type Viewport struct {
	Cols, Rows int
}

// DevicePixels converts the logical size into braille dots.
func (v Viewport) DevicePixels() (w, h int) { return v.Cols * DotsX, v.Rows * DotsY }

// Surface is a render target owned by a single driver at a time. It is
// created fresh per scene and never reused once destroyed.
type Surface struct {
	id       int
	canvas   *Canvas
	z        int
	opacity  float64
	attached bool

	transition time.Duration
	fade       *fade
	onEnd      func()
}

type fade struct {
	from, to float64
	elapsed  time.Duration
}

func newSurface(id int, vp Viewport, transition time.Duration) *Surface {
	return &Surface{
		id:         id,
		canvas:     NewCanvas(vp.Cols, vp.Rows),
		opacity:    1,
		attached:   true,
		transition: transition,
	}
}

// NewSurface builds a detached surface, useful for headless rendering.
func NewSurface(vp Viewport) *Surface {
	s := newSurface(0, vp, 0)
	s.attached = false
	return s
}

func (s *Surface) ID() int          { return s.id }
func (s *Surface) Canvas() *Canvas  { return s.canvas }
func (s *Surface) ZIndex() int      { return s.z }
func (s *Surface) SetZIndex(z int)  { s.z = z }
func (s *Surface) Opacity() float64 { return s.opacity }
func (s *Surface) Attached() bool   { return s.attached }

// Width and Height report the backing store in device pixels (dots).
func (s *Surface) Width() int  { return s.canvas.Width * DotsX }
func (s *Surface) Height() int { return s.canvas.Height * DotsY }

// Resize reallocates the backing store for a size in device pixels,
// rounding up to whole cells. Contents are discarded.
func (s *Surface) Resize(w, h int) {
	cols := (w + DotsX - 1) / DotsX
	rows := (h + DotsY - 1) / DotsY
	if cols == s.canvas.Width && rows == s.canvas.Height {
		return
	}
	s.canvas = NewCanvas(cols, rows)
}

// Fit sizes the backing store for a logical size in cells and returns the
// resulting device-pixel dimensions.
func (s *Surface) Fit(cols, rows int) (w, h int) {
	w, h = Viewport{Cols: cols, Rows: rows}.DevicePixels()
	s.Resize(w, h)
	return w, h
}

// SetOpacity applies an opacity immediately, cancelling any running fade.
func (s *Surface) SetOpacity(v float64) {
	s.fade = nil
	s.opacity = clamp01(v)
}

// FadeTo animates the opacity towards v over the surface's transition
// duration. The transition-end listener fires once the target is reached.
// With no transition configured the change is immediate and silent.
func (s *Surface) FadeTo(v float64) {
	v = clamp01(v)
	if s.transition <= 0 {
		s.SetOpacity(v)
		return
	}
	if v == s.opacity {
		return
	}
	s.fade = &fade{from: s.opacity, to: v}
}

// SetTransition configures the fade duration used by FadeTo.
func (s *Surface) SetTransition(d time.Duration) { s.transition = d }

func (s *Surface) Transition() time.Duration { return s.transition }

// ClearTransition drops the configured transition and any fade in flight,
// so later opacity or geometry changes apply without animating.
func (s *Surface) ClearTransition() {
	s.transition = 0
	s.fade = nil
}

// Fading reports whether an opacity transition is in flight.
func (s *Surface) Fading() bool { return s.fade != nil }

// OnTransitionEnd registers the transition-end listener; nil removes it.
func (s *Surface) OnTransitionEnd(fn func()) { s.onEnd = fn }

// Advance steps the running fade by d of wall time.
func (s *Surface) Advance(d time.Duration) {
	f := s.fade
	if f == nil || d < 0 {
		return
	}
	f.elapsed += d
	t := float64(f.elapsed) / float64(s.transition)
	if t < 1 {
		s.opacity = f.from + (f.to-f.from)*smoothstep(t)
		return
	}
	s.opacity = f.to
	s.fade = nil
	if s.onEnd != nil {
		s.onEnd()
	}
}

func (s *Surface) release() {
	s.attached = false
	s.fade = nil
	s.onEnd = nil
	s.canvas = NewCanvas(0, 0)
}

func smoothstep(x float64) float64 {
	return x * x * (3 - 2*x)
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
