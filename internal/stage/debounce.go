package stage

import "time"

// Debouncer coalesces bursts of calls into the last one, run after a quiet
// window.
type Debouncer struct {
	sched Scheduler
	wait  time.Duration
	timer Timer
}

func NewDebouncer(sched Scheduler, wait time.Duration) *Debouncer {
	return &Debouncer{sched: sched, wait: wait}
}

// Trigger (re)arms the window; only the latest fn runs.
func (d *Debouncer) Trigger(fn func()) {
	d.Cancel()
	d.timer = d.sched.After(d.wait, func() {
		d.timer = nil
		fn()
	})
}

// Cancel drops a pending call.
func (d *Debouncer) Cancel() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
