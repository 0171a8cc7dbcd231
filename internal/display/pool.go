package display

import (
	"sort"
	"time"
)

// Pool owns every surface attached to the display and the ambient viewport
// they are sized from.
type Pool struct {
	viewport   Viewport
	transition time.Duration
	surfaces   []*Surface
	nextID     int
}

// NewPool returns a pool whose new surfaces fade over transition.
func NewPool(vp Viewport, transition time.Duration) *Pool {
	return &Pool{viewport: vp, transition: transition}
}

func (p *Pool) Viewport() Viewport { return p.viewport }

// SetViewport records the ambient display size. Existing surfaces keep
// their backing store until their driver resizes them.
func (p *Pool) SetViewport(vp Viewport) { p.viewport = vp }

// Create allocates a surface sized to the current viewport and attaches it
// to the display.
func (p *Pool) Create() *Surface {
	p.nextID++
	s := newSurface(p.nextID, p.viewport, p.transition)
	p.surfaces = append(p.surfaces, s)
	return s
}

// Destroy detaches and releases s. It reports false when s is not attached
// to this pool, which makes a second call harmless.
func (p *Pool) Destroy(s *Surface) bool {
	for i, cur := range p.surfaces {
		if cur == s {
			p.surfaces = append(p.surfaces[:i], p.surfaces[i+1:]...)
			s.release()
			return true
		}
	}
	return false
}

// Live returns the number of attached surfaces.
func (p *Pool) Live() int { return len(p.surfaces) }

// Step advances every running opacity transition by d. Listeners may
// destroy surfaces, so iteration works on a snapshot.
func (p *Pool) Step(d time.Duration) {
	snapshot := append([]*Surface(nil), p.surfaces...)
	for _, s := range snapshot {
		if s.attached {
			s.Advance(d)
		}
	}
}

// Ordered returns the attached surfaces from back to front.
func (p *Pool) Ordered() []*Surface {
	out := append([]*Surface(nil), p.surfaces...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].z < out[j].z })
	return out
}
