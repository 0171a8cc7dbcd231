package stage

import (
	"testing"
	"time"
)

func TestLoopDeferRunsNextFlush(t *testing.T) {
	l := NewLoop(time.Unix(0, 0))
	var order []string
	l.Defer(func() {
		order = append(order, "a")
		l.Defer(func() { order = append(order, "b") })
	})

	if n := l.Flush(); n != 1 {
		t.Fatalf("first Flush ran %d callbacks", n)
	}
	if len(order) != 1 {
		t.Fatalf("nested defer ran early: %v", order)
	}
	l.Flush()
	if len(order) != 2 || order[1] != "b" {
		t.Errorf("order = %v", order)
	}
}

func TestLoopTimersFireInDeadlineOrder(t *testing.T) {
	start := time.Unix(0, 0)
	l := NewLoop(start)
	var order []int
	l.After(3*time.Second, func() { order = append(order, 3) })
	l.After(time.Second, func() { order = append(order, 1) })
	l.After(time.Second, func() { order = append(order, 2) })

	if n := l.Advance(start.Add(999 * time.Millisecond)); n != 0 {
		t.Fatalf("fired %d timers early", n)
	}
	l.Advance(start.Add(5 * time.Second))

	want := []int{1, 2, 3}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}

func TestLoopTimerStop(t *testing.T) {
	start := time.Unix(0, 0)
	l := NewLoop(start)
	fired := false
	tm := l.After(time.Second, func() { fired = true })

	if !tm.Stop() {
		t.Fatal("Stop on pending timer returned false")
	}
	if tm.Stop() {
		t.Error("second Stop returned true")
	}
	l.Advance(start.Add(time.Hour))
	if fired {
		t.Error("stopped timer fired")
	}
	if l.Pending() != 0 {
		t.Errorf("Pending = %d", l.Pending())
	}
}

func TestLoopStopAfterFire(t *testing.T) {
	start := time.Unix(0, 0)
	l := NewLoop(start)
	tm := l.After(0, func() {})
	l.Advance(start)
	if tm.Stop() {
		t.Error("Stop after firing returned true")
	}
}

func TestLoopNeverRewinds(t *testing.T) {
	start := time.Unix(100, 0)
	l := NewLoop(start)
	l.Advance(start.Add(-time.Minute))
	if !l.Now().Equal(start) {
		t.Errorf("Now = %v, want %v", l.Now(), start)
	}
}

func TestDebouncerKeepsLast(t *testing.T) {
	start := time.Unix(0, 0)
	l := NewLoop(start)
	d := NewDebouncer(l, 150*time.Millisecond)
	var got []int
	for i := 0; i < 5; i++ {
		v := i
		l.Advance(start.Add(time.Duration(i) * 10 * time.Millisecond))
		d.Trigger(func() { got = append(got, v) })
	}
	l.Advance(start.Add(time.Second))
	if len(got) != 1 || got[0] != 4 {
		t.Errorf("got %v, want [4]", got)
	}

	d.Trigger(func() { got = append(got, 9) })
	d.Cancel()
	l.Advance(start.Add(time.Hour))
	if len(got) != 1 {
		t.Errorf("cancelled call ran: %v", got)
	}
}
