package stage

import "time"

// Scheduler is the cooperative single-threaded scheduling surface the
// orchestrator relies on. Every callback runs on the same logical thread as
// the frame tick.
type Scheduler interface {
	// Defer runs fn on the next frame.
	Defer(fn func())
	// After runs fn once, d from now, unless the returned timer is stopped.
	After(d time.Duration, fn func()) Timer
}

// Timer is a pending single-shot callback.
type Timer interface {
	// Stop cancels the callback and reports whether it was still pending.
	Stop() bool
}

// Loop is a Scheduler driven explicitly by the host frame callback (or by a
// test). Deferred callbacks run on the next Flush; timers fire on Advance
// once their deadline has passed, earliest first.
type Loop struct {
	now      time.Time
	deferred []func()
	timers   []*loopTimer
	seq      uint64
}

type loopTimer struct {
	loop    *Loop
	due     time.Time
	seq     uint64
	fn      func()
	settled bool
}

func NewLoop(now time.Time) *Loop {
	return &Loop{now: now}
}

func (l *Loop) Now() time.Time { return l.now }

func (l *Loop) Defer(fn func()) {
	l.deferred = append(l.deferred, fn)
}

func (l *Loop) After(d time.Duration, fn func()) Timer {
	l.seq++
	t := &loopTimer{loop: l, due: l.now.Add(d), seq: l.seq, fn: fn}
	l.timers = append(l.timers, t)
	return t
}

// Flush runs the callbacks deferred before the call. Callbacks deferred
// while flushing wait for the next frame.
func (l *Loop) Flush() int {
	batch := l.deferred
	l.deferred = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Advance moves the loop clock to now (never backwards) and fires every
// timer that has become due.
func (l *Loop) Advance(now time.Time) int {
	if now.After(l.now) {
		l.now = now
	}
	fired := 0
	for {
		t := l.nextDue()
		if t == nil {
			return fired
		}
		l.remove(t)
		t.settled = true
		t.fn()
		fired++
	}
}

// Pending returns the number of armed timers.
func (l *Loop) Pending() int { return len(l.timers) }

// Deferred returns the number of callbacks waiting for the next frame.
func (l *Loop) Deferred() int { return len(l.deferred) }

func (l *Loop) nextDue() *loopTimer {
	var best *loopTimer
	for _, t := range l.timers {
		if t.due.After(l.now) {
			continue
		}
		if best == nil || t.due.Before(best.due) || (t.due.Equal(best.due) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (l *Loop) remove(t *loopTimer) {
	for i, cur := range l.timers {
		if cur == t {
			l.timers = append(l.timers[:i], l.timers[i+1:]...)
			return
		}
	}
}

func (t *loopTimer) Stop() bool {
	if t.settled {
		return false
	}
	t.settled = true
	t.loop.remove(t)
	return true
}
