package stage

import "github.com/san-kum/nocturne/internal/display"

// Driver is the live, surface-bound instance of a scene.
//
// Animate must return promptly and must not panic for recoverable per-frame
// faults. Resize receives the logical size in cells; the driver translates
// it into its own device-pixel backing store. Destroy is called at most once.
type Driver interface {
	Animate(dt, elapsed float64)
	Resize(width, height int)
	Destroy()
}

// Factory builds a ready-to-animate driver on a fresh surface. It must not
// assume any particular surface size: Resize is always called right after.
type Factory func(s *display.Surface) Driver

// Scene is an immutable registry entry.
type Scene struct {
	Name string
	New  Factory
}

// Pool supplies and retires render surfaces.
type Pool interface {
	Create() *display.Surface
	Destroy(s *display.Surface) bool
	Viewport() display.Viewport
}

// Notifier is told the display name of each scene as it is activated.
// Calls are fire-and-forget.
type Notifier interface {
	ShowName(name string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(name string)

func (f NotifierFunc) ShowName(name string) { f(name) }

// Notifiers fans a name out to several notifiers in order.
type Notifiers []Notifier

func (ns Notifiers) ShowName(name string) {
	for _, n := range ns {
		if n != nil {
			n.ShowName(name)
		}
	}
}
