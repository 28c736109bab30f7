// Package symbol implements the per-symbol fan-out: one observation history shared by eight statistics instances,
// one per decadic window size.
package symbol

import (
	"github.com/eluv-io/tickstat-go/collections/window"
	"github.com/eluv-io/tickstat-go/stats"
)

// The eight supported window sizes, 10^1 .. 10^8.
const (
	K1 = 10
	K2 = 100
	K3 = 1_000
	K4 = 10_000
	K5 = 100_000
	K6 = 1_000_000
	K7 = 10_000_000
	K8 = 100_000_000
)

// Ks holds the eight window sizes, indexed by k-1: Ks[k-1] == 10^k.
var Ks = [8]int{K1, K2, K3, K4, K5, K6, K7, K8}

// MinK and MaxK bound the valid range of the window selector k.
const (
	MinK = 1
	MaxK = 8
)

// Result is the statistics snapshot returned for one window size.
type Result struct {
	Min  float64
	Max  float64
	Last float64
	Avg  float64
	Var  float64
}

// Aggregate owns one symbol's full observation history, capped at the largest window size K8, and the eight
// stats.Window instances derived from it. stats[i] tracks the logical window of size Ks[i] = 10^(i+1).
type Aggregate struct {
	values *window.Window
	stats  [8]*stats.Window
}

// NewAggregate creates an empty Aggregate.
func NewAggregate() *Aggregate {
	a := &Aggregate{values: window.New(K8)}
	for i := range a.stats {
		a.stats[i] = stats.New()
	}
	return a
}

// Stats returns the (min, max, last, avg, var) snapshot for window size 10^k, or ok=false if the symbol has no
// observations yet. k must be in [MinK, MaxK]; that is a caller-enforced precondition (see registry.Query), not a
// condition this method itself reports as a typed error.
func (a *Aggregate) Stats(k int) (Result, bool) {
	if k < MinK || k > MaxK {
		panic("symbol: k out of range")
	}
	if a.values.IsEmpty() {
		return Result{}, false
	}

	st := a.stats[k-1]
	min, max, _ := st.MinMax() // guaranteed present: values is non-empty, so every stats[i] has seen at least one update

	length := a.values.Len()
	if windowSize := Ks[k-1]; length > windowSize {
		// the k-th stats instance only ever sums at most Ks[k-1] values, even once the full K8 history is longer
		length = windowSize
	}
	avg, variance := st.AverageVariance(length)

	last, _ := a.values.Get(0)

	return Result{Min: min, Max: max, Last: last, Avg: avg, Var: variance}, true
}

// AddBatch applies values, in the given order, to the symbol's history and to all eight derived statistics. Each
// value drives a single push into the shared history and eight O(1) statistics updates, one per window size, using
// the value that just fell out of each logical sub-window as the "old" half of that update.
func (a *Aggregate) AddBatch(values []float64) {
	for _, v := range values {
		evicted, evictedFromFull := a.values.Push(v)

		for i := 0; i < len(a.stats)-1; i++ {
			old, hasOld := a.values.Get(Ks[i])
			a.stats[i].Update(old, hasOld, v)
		}
		// the largest window's capacity equals the history's own capacity (K8), so its "old" value is exactly
		// what Push itself evicted, not a lookback into the history.
		a.stats[len(a.stats)-1].Update(evicted, evictedFromFull, v)
	}
}
