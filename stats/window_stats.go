// Package stats combines the monotonic min/max deques with incremental sum/sum-of-squares accumulators, yielding
// min, max, mean and variance in O(1) per update for one fixed-size logical window.
package stats

import "github.com/eluv-io/tickstat-go/collections/monodeque"

// Window is the statistics for a single fixed-size logical window. It does not itself track the window's length:
// callers supply it to AverageVariance, since a Window is typically one of several sharing a common value stream at
// different lookback sizes (see the symbol package).
type Window struct {
	minDeq monodeque.Min
	maxDeq monodeque.Max
	sum    float64
	sumSq  float64
}

// New creates an empty Window.
func New() *Window {
	return &Window{}
}

// MinMax returns the window's current minimum and maximum, or ok=false if no values have been recorded yet.
func (s *Window) MinMax() (min, max float64, ok bool) {
	min, minOk := s.minDeq.Min()
	max, maxOk := s.maxDeq.Max()
	if !minOk && !maxOk {
		return 0, 0, false
	}
	// minOk == maxOk is a Window invariant: both deques are updated in lockstep from the same sequence of
	// (old, new) pairs, so one cannot be empty while the other isn't.
	return min, max, true
}

// AverageVariance returns the mean and variance over the current window, given its length (the caller-supplied
// length, not tracked here, lets one Window instance serve a sub-window smaller than some larger collaborating
// buffer). Variance uses the raw-moment form E[X^2] - E[X]^2, which is O(1) to update but can drift slightly
// negative for near-constant streams due to floating-point cancellation; that case is clamped to zero.
func (s *Window) AverageVariance(length int) (avg, variance float64) {
	if length == 0 {
		return 0, 0
	}
	n := float64(length)
	avg = s.sum / n
	variance = s.sumSq/n - avg*avg
	if variance < 0 {
		variance = 0
	}
	return avg, variance
}

// Update replaces old (if present) with new: it forwards the pair to both deques and adjusts the running moments.
func (s *Window) Update(old float64, hasOld bool, new float64) {
	s.minDeq.Update(old, hasOld, new)
	s.maxDeq.Update(old, hasOld, new)

	if hasOld {
		s.sum -= old
		s.sumSq -= old * old
	}
	s.sum += new
	s.sumSq += new * new
}
