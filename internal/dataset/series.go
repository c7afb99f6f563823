package dataset

import (
	"math/rand/v2"
	"sync/atomic"

	"github.com/Faultbox/stockbars/internal/chart"
)

// Series holds the current data points. Writers replace the whole slice;
// readers get a snapshot that is never modified afterwards.
type Series struct {
	points atomic.Pointer[[]chart.DataPoint]
}

// Load returns the current snapshot, nil before the first Replace.
func (s *Series) Load() []chart.DataPoint {
	p := s.points.Load()
	if p == nil {
		return nil
	}
	return *p
}

// Replace publishes a new snapshot. points must not be modified afterwards.
func (s *Series) Replace(points []chart.DataPoint) {
	s.points.Store(&points)
}

// Simulate returns a copy of points with every price moved by a random
// fraction in [-jitter, +jitter) and clamped to floor.
func Simulate(points []chart.DataPoint, rng *rand.Rand, jitter, floor float32) []chart.DataPoint {
	out := make([]chart.DataPoint, len(points))
	for i, p := range points {
		delta := p.Value * (rng.Float32()*2*jitter - jitter)
		p.Value = max(floor, p.Value+delta)
		out[i] = p
	}
	return out
}
