// Package bench renders scenes headless and records what each frame costs.
package bench

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/nocturne/internal/display"
	"github.com/san-kum/nocturne/internal/stage"
)

const (
	DefaultFrames = 600
	DefaultDt     = time.Second / 60
)

type Config struct {
	Frames   int
	Dt       time.Duration
	Viewport display.Viewport
	// Compose includes compositing and rendering in the measured cost.
	Compose bool
}

func DefaultConfig() Config {
	return Config{
		Frames:   DefaultFrames,
		Dt:       DefaultDt,
		Viewport: display.Viewport{Cols: 120, Rows: 40},
		Compose:  true,
	}
}

type Result struct {
	Scene string
	Cost  FrameCost
}

// Runner drives scenes outside the orchestrator, one at a time, on a
// fixed step.
type Runner struct {
	cfg Config
	now func() time.Time
}

func NewRunner(cfg Config) *Runner {
	if cfg.Frames <= 0 {
		cfg.Frames = DefaultFrames
	}
	if cfg.Dt <= 0 {
		cfg.Dt = DefaultDt
	}
	return &Runner{cfg: cfg, now: time.Now}
}

// Run benchmarks every scene in order. Cancelling ctx stops between frames
// and returns the results gathered so far with the context error.
func (r *Runner) Run(ctx context.Context, scenes []stage.Scene) ([]Result, error) {
	results := make([]Result, 0, len(scenes))
	for _, sc := range scenes {
		res, err := r.runScene(ctx, sc)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

func (r *Runner) runScene(ctx context.Context, sc stage.Scene) (Result, error) {
	if sc.New == nil {
		return Result{Scene: sc.Name}, fmt.Errorf("scene %q: %w", sc.Name, stage.ErrNilFactory)
	}
	pool := display.NewPool(r.cfg.Viewport, 0)
	s := pool.Create()
	s.SetZIndex(1)
	s.SetOpacity(1)
	d := sc.New(s)
	d.Resize(r.cfg.Viewport.Cols, r.cfg.Viewport.Rows)
	defer func() {
		d.Destroy()
		pool.Destroy(s)
	}()

	res := Result{Scene: sc.Name}
	dt := r.cfg.Dt.Seconds()
	elapsed := 0.0
	for i := 0; i < r.cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}
		elapsed += dt
		start := r.now()
		d.Animate(dt, elapsed)
		if r.cfg.Compose {
			display.Render(pool.Compose())
		}
		res.Cost.Observe(r.now().Sub(start))
	}
	return res, nil
}

// Summary is a one-line digest of a result.
func (res *Result) Summary() string {
	return fmt.Sprintf("%-18s frames=%-5d mean=%-10v p95=%-10v max=%v",
		res.Scene, res.Cost.Count(), res.Cost.Mean(), res.Cost.Percentile(95), res.Cost.Max())
}

// Plot charts per-frame cost in microseconds.
func (res *Result) Plot(width, height int) string {
	data := res.Cost.Micros()
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(res.Scene+" frame cost (µs)"),
	)
}

// Report renders every result as summary plus chart.
func Report(results []Result, width, height int) string {
	var b strings.Builder
	for i := range results {
		b.WriteString(results[i].Summary())
		b.WriteString("\n")
		if chart := results[i].Plot(width, height); chart != "" {
			b.WriteString(chart)
			b.WriteString("\n\n")
		}
	}
	return b.String()
}
