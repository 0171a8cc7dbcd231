package stage

import "math/rand"

// Selector picks scene indices uniformly at random.
type Selector struct {
	rng *rand.Rand
}

func NewSelector(seed int64) *Selector {
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// PickFirst chooses the opening scene over the whole registry.
func (s *Selector) PickFirst(count int) int {
	if count <= 1 {
		return 0
	}
	return s.rng.Intn(count)
}

// PickNext chooses any index except current. A registry of one (or none)
// has a single valid answer and never enters the resampling loop.
func (s *Selector) PickNext(current, count int) int {
	if count <= 1 {
		return 0
	}
	for {
		next := s.rng.Intn(count)
		if next != current {
			return next
		}
	}
}
