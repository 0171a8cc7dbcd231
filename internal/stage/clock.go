package stage

import "time"

// FrameClock turns frame timestamps into a clamped step in seconds.
type FrameClock struct {
	maxDt   float64
	last    time.Time
	started bool
}

func NewFrameClock(maxDt time.Duration) *FrameClock {
	return &FrameClock{maxDt: maxDt.Seconds()}
}

// Reset makes now the reference for the next Step.
func (c *FrameClock) Reset(now time.Time) {
	c.last = now
	c.started = true
}

// Step returns the seconds since the previous call, clamped to [0, maxDt].
// The clamp absorbs stalls such as a suspended terminal or a debugger pause
// so animations never take one huge unstable step.
func (c *FrameClock) Step(now time.Time) float64 {
	if !c.started {
		c.Reset(now)
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	if dt < 0 {
		return 0
	}
	if dt > c.maxDt {
		return c.maxDt
	}
	return dt
}
