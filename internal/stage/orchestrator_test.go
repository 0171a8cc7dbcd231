package stage_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/stage"
)

const frame = 100 * time.Millisecond

var _ = Describe("Orchestrator", func() {
	Describe("construction", func() {
		It("rejects an empty registry", func() {
			_, err := stage.New(nil, display.NewPool(display.Viewport{}, 0), nil, stage.NewLoop(time.Now()))
			Expect(err).To(MatchError(stage.ErrNoScenes))
		})

		It("rejects a scene without a factory", func() {
			_, err := stage.New([]stage.Scene{{Name: "x"}}, display.NewPool(display.Viewport{}, 0), nil, stage.NewLoop(time.Now()))
			Expect(err).To(MatchError(stage.ErrNilFactory))
		})
	})

	Describe("Start", func() {
		var r *rig

		BeforeEach(func() {
			r = newRig([]string{"X", "Y", "Z"})
			Expect(r.orch.Start(r.start)).To(Succeed())
		})

		It("mounts one driver sized to the viewport and announces it", func() {
			Expect(r.drivers).To(HaveLen(1))
			Expect(r.active().resizes).To(Equal([][2]int{{40, 12}}))
			Expect(r.active().surface.Width()).To(Equal(80))
			Expect(r.active().surface.Height()).To(Equal(48))
			Expect(r.names).To(Equal([]string{r.active().scene}))
			Expect(r.pool.Live()).To(Equal(1))
		})

		It("refuses a second start", func() {
			Expect(r.orch.Start(r.start)).To(MatchError(stage.ErrAlreadyStarted))
		})

		It("applies a zero step on the first frame", func() {
			r.orch.Tick(r.start)
			Expect(r.active().animates).To(Equal(1))
			Expect(r.active().lastDt).To(BeZero())
		})
	})

	Describe("frame clock", func() {
		It("clamps long stalls to the maximum step", func() {
			r := newRig([]string{"X", "Y"})
			Expect(r.orch.Start(r.start)).To(Succeed())

			r.frame(5*time.Second, 5*time.Second)

			Expect(r.active().lastDt).To(BeNumerically("~", 0.1, 1e-9))
			Expect(r.orch.Snapshot().Elapsed).To(BeNumerically("~", 0.1, 1e-9))
			Expect(r.orch.Snapshot().SceneTime).To(BeNumerically("~", 0.1, 1e-9))
		})

		It("passes short steps through unchanged", func() {
			r := newRig([]string{"X", "Y"})
			Expect(r.orch.Start(r.start)).To(Succeed())

			r.frame(16*time.Millisecond, 16*time.Millisecond)

			Expect(r.active().lastDt).To(BeNumerically("~", 0.016, 1e-9))
		})
	})

	Describe("scenario A: duration expiry", func() {
		It("starts exactly one transition on the sixtieth one-second tick", func() {
			r := newRig([]string{"X", "Y", "Z"}, stage.WithMaxDt(time.Second))
			Expect(r.orch.Start(r.start)).To(Succeed())
			first := r.orch.Snapshot().CurrentIndex

			for i := 1; i <= 59; i++ {
				r.frame(time.Duration(i)*time.Second, time.Second)
				snap := r.orch.Snapshot()
				Expect(snap.Transitioning).To(BeFalse(), "tick %d", i)
				Expect(snap.CurrentIndex).To(Equal(first))
			}
			Expect(r.drivers).To(HaveLen(1))

			r.frame(60*time.Second, time.Second)

			snap := r.orch.Snapshot()
			Expect(snap.Transitioning).To(BeTrue())
			Expect(r.drivers).To(HaveLen(2))
			Expect(r.drivers[1].scene).NotTo(Equal(r.registry[first].Name))
			Expect(snap.NextIndex).NotTo(Equal(first))
		})
	})

	Describe("scenario B: repeated skip", func() {
		It("keeps exactly one transition in flight", func() {
			r := newRig([]string{"X", "Y", "Z"})
			Expect(r.orch.Start(r.start)).To(Succeed())
			active := r.orch.ActiveDriver()

			r.orch.Skip()
			incoming := r.orch.NextDriver()
			before := r.orch.Snapshot()
			r.orch.Skip()

			Expect(r.drivers).To(HaveLen(2))
			Expect(r.orch.NextDriver()).To(BeIdenticalTo(incoming))
			Expect(r.orch.ActiveDriver()).To(BeIdenticalTo(active))
			Expect(r.orch.Snapshot()).To(Equal(before))
			Expect(r.loop.Pending()).To(Equal(1))
			Expect(r.names).To(HaveLen(2))
		})
	})

	Describe("scenario C: completion signal first", func() {
		It("finishes once and cancels the fallback", func() {
			r := newRig([]string{"X", "Y", "Z"})
			r.pool.Pool = display.NewPool(display.Viewport{Cols: 40, Rows: 12}, 1200*time.Millisecond)
			Expect(r.orch.Start(r.start)).To(Succeed())
			r.frame(0, 0)

			outgoing := r.active()
			r.orch.Skip()
			incoming := r.next()
			Expect(incoming.surface.ZIndex()).To(BeNumerically(">", outgoing.surface.ZIndex()))
			Expect(incoming.surface.Opacity()).To(BeZero())
			Expect(incoming.surface.Fading()).To(BeFalse())

			for i := 1; i < 12; i++ {
				r.frame(time.Duration(i)*frame, frame)
				Expect(r.orch.Snapshot().Transitioning).To(BeTrue())
				Expect(r.orch.Snapshot().HasNext).To(BeTrue())
				Expect(incoming.animates).To(Equal(i))
			}
			Expect(incoming.surface.Opacity()).To(BeNumerically(">", 0))

			r.settle(1200*time.Millisecond, frame)

			snap := r.orch.Snapshot()
			Expect(snap.Transitioning).To(BeFalse())
			Expect(snap.HasNext).To(BeFalse())
			Expect(snap.SceneTime).To(BeZero())
			Expect(r.orch.ActiveDriver()).To(BeIdenticalTo(incoming))
			Expect(outgoing.destroys).To(Equal(1))
			Expect(r.pool.destroyed[outgoing.surface]).To(Equal(1))
			Expect(r.loop.Pending()).To(BeZero())
			Expect(incoming.surface.Opacity()).To(Equal(1.0))
			Expect(incoming.surface.Transition()).To(BeZero())

			for i := 13; i <= 40; i++ {
				r.frame(time.Duration(i)*frame, frame)
			}
			Expect(outgoing.destroys).To(Equal(1))
			Expect(r.pool.destroyed[outgoing.surface]).To(Equal(1))
			Expect(r.orch.Snapshot().Transitions).To(Equal(1))
			Expect(incoming.destroys).To(BeZero())
		})
	})

	Describe("scenario D: missing completion signal", func() {
		It("finishes through the fallback at exactly three seconds", func() {
			r := newRig([]string{"X", "Y", "Z"})
			r.pool.Pool = display.NewPool(display.Viewport{Cols: 40, Rows: 12}, 10*time.Second)
			Expect(r.orch.Start(r.start)).To(Succeed())
			r.frame(0, 0)

			outgoing := r.active()
			r.orch.Skip()
			incoming := r.next()

			for i := 1; i < 30; i++ {
				r.frame(time.Duration(i)*frame, frame)
				Expect(r.orch.Snapshot().Transitioning).To(BeTrue())
			}

			r.settle(3*time.Second, frame)

			snap := r.orch.Snapshot()
			Expect(snap.Transitioning).To(BeFalse())
			Expect(snap.SceneTime).To(BeZero())
			Expect(r.orch.ActiveDriver()).To(BeIdenticalTo(incoming))
			Expect(outgoing.destroys).To(Equal(1))
			Expect(r.pool.destroyed[outgoing.surface]).To(Equal(1))
			Expect(incoming.surface.Fading()).To(BeFalse())

			for i := 31; i <= 150; i++ {
				r.frame(time.Duration(i)*frame, frame)
			}
			Expect(r.orch.Snapshot().Transitions).To(Equal(1))
			Expect(outgoing.destroys).To(Equal(1))
		})
	})

	Describe("scenario E: resize storm", func() {
		It("forwards only the final size after the quiet window", func() {
			r := newRig([]string{"X", "Y"})
			Expect(r.orch.Start(r.start)).To(Succeed())
			drv := r.active()

			for i := 0; i < 10; i++ {
				r.loop.Advance(r.at(time.Duration(i) * 5 * time.Millisecond))
				r.orch.RequestResize(50+i, 20+i)
			}
			last := 45 * time.Millisecond

			r.loop.Advance(r.at(last + 149*time.Millisecond))
			Expect(drv.resizes).To(HaveLen(1))

			r.loop.Advance(r.at(last + 150*time.Millisecond))
			Expect(drv.resizes).To(HaveLen(2))
			Expect(drv.resizes[1]).To(Equal([2]int{59, 29}))
			Expect(drv.surface.Width()).To(Equal(118))

			r.loop.Advance(r.at(time.Second))
			Expect(drv.resizes).To(HaveLen(2))
		})

		It("resizes both drivers during a crossfade", func() {
			r := newRig([]string{"X", "Y"})
			Expect(r.orch.Start(r.start)).To(Succeed())
			r.orch.Skip()

			r.orch.ResizeActive(30, 10)

			Expect(r.active().resizes).To(ContainElement([2]int{30, 10}))
			Expect(r.next().resizes).To(ContainElement([2]int{30, 10}))
		})
	})

	Describe("transition policy", func() {
		It("drops a duration expiry that lands inside a crossfade", func() {
			r := newRig([]string{"X", "Y", "Z"},
				stage.WithSceneDuration(2*time.Second),
				stage.WithMaxDt(time.Second))
			r.pool.Pool = display.NewPool(display.Viewport{Cols: 40, Rows: 12}, 10*time.Second)
			Expect(r.orch.Start(r.start)).To(Succeed())

			r.frame(1500*time.Millisecond, 0)
			r.orch.Skip()
			r.frame(2500*time.Millisecond, 0)
			Expect(r.orch.Snapshot().SceneTime).To(BeNumerically(">=", 2))
			Expect(r.drivers).To(HaveLen(2))

			r.settle(4500*time.Millisecond, 0)
			Expect(r.orch.Snapshot().Transitioning).To(BeFalse())
			Expect(r.orch.Snapshot().SceneTime).To(BeZero())
			Expect(r.drivers).To(HaveLen(2))
		})

		It("holds the next-slot invariant on every frame", func() {
			r := newRig([]string{"X", "Y", "Z"},
				stage.WithSceneDuration(5*time.Second),
				stage.WithMaxDt(time.Second))
			Expect(r.orch.Start(r.start)).To(Succeed())

			for i := 1; i <= 300; i++ {
				r.frame(time.Duration(i)*frame, frame)
				snap := r.orch.Snapshot()
				Expect(snap.Transitioning).To(Equal(snap.HasNext))
				Expect(r.pool.Live()).To(BeNumerically("<=", 2))
			}
			Expect(r.orch.Snapshot().Transitions).To(BeNumerically(">=", 3))
			for _, d := range r.drivers {
				Expect(d.destroys).To(BeNumerically("<=", 1))
			}
		})

		It("replays the only scene of a single-entry registry on a fresh surface", func() {
			r := newRig([]string{"solo"})
			Expect(r.orch.Start(r.start)).To(Succeed())
			first := r.active()

			r.orch.Skip()
			r.orch.Stop()

			Expect(r.drivers).To(HaveLen(2))
			Expect(r.drivers[1].scene).To(Equal("solo"))
			Expect(r.drivers[1].surface).NotTo(BeIdenticalTo(first.surface))
		})

		It("ignores input before start", func() {
			r := newRig([]string{"X", "Y"})
			r.orch.Skip()
			r.orch.Tick(r.start)
			r.orch.RequestResize(1, 1)
			Expect(r.drivers).To(BeEmpty())
			Expect(r.loop.Pending()).To(BeZero())
		})
	})

	Describe("Stop", func() {
		It("releases every live driver and surface exactly once", func() {
			r := newRig([]string{"X", "Y"})
			Expect(r.orch.Start(r.start)).To(Succeed())
			r.orch.Skip()

			r.orch.Stop()
			r.orch.Stop()
			r.loop.Flush()
			r.loop.Advance(r.at(time.Minute))

			Expect(r.pool.Live()).To(BeZero())
			for _, d := range r.drivers {
				Expect(d.destroys).To(Equal(1))
				Expect(r.pool.destroyed[d.surface]).To(Equal(1))
			}
			Expect(r.orch.Snapshot().Transitions).To(BeZero())
		})
	})
})
