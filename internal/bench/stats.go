package bench

import (
	"math"
	"sort"
	"time"
)

// FrameCost accumulates per-frame render durations.
type FrameCost struct {
	samples []time.Duration
	sum     time.Duration
	max     time.Duration
}

func (f *FrameCost) Observe(d time.Duration) {
	f.samples = append(f.samples, d)
	f.sum += d
	if d > f.max {
		f.max = d
	}
}

func (f *FrameCost) Count() int         { return len(f.samples) }
func (f *FrameCost) Max() time.Duration  { return f.max }
func (f *FrameCost) Samples() []time.Duration {
	return append([]time.Duration(nil), f.samples...)
}

func (f *FrameCost) Mean() time.Duration {
	if len(f.samples) == 0 {
		return 0
	}
	return f.sum / time.Duration(len(f.samples))
}

// Percentile returns the nearest-rank percentile p in [0, 100].
func (f *FrameCost) Percentile(p float64) time.Duration {
	if len(f.samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), f.samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

// Micros returns the samples in microseconds, for plotting.
func (f *FrameCost) Micros() []float64 {
	out := make([]float64, len(f.samples))
	for i, d := range f.samples {
		out[i] = float64(d) / float64(time.Microsecond)
	}
	return out
}

func (f *FrameCost) Reset() {
	f.samples = f.samples[:0]
	f.sum = 0
	f.max = 0
}
