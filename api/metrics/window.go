// Package metrics tracks rolling request-latency statistics for the HTTP boundary's operator-facing debug endpoint.
// It has nothing to do with the symbol statistics the engine serves: it is the server's own ambient observability,
// kept separate from the core so that the core stays transport-agnostic.
package metrics

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/eluv-io/utc-go"
)

// LatencyWindow is a fixed-capacity ring buffer of request latencies, in microseconds. A handful of routes each own
// one; Record is called once per request, Snapshot occasionally by the debug endpoint. Because the window only ever
// needs to answer "what does recent latency look like", not drive the hot ingest/query path, it favors a simple
// sort-on-read over an incremental moments calculation: capacity is small (in the low thousands at most) and
// Snapshot is called rarely.
type LatencyWindow struct {
	mu      sync.Mutex
	samples []int64 // ring buffer of microsecond latencies
	oldest  int     // index of the next slot to overwrite once full
	count   int     // number of samples currently held
	sum     int64   // running sum, kept in lockstep with samples so Snapshot doesn't need to re-add them
	opened  utc.UTC // when the first sample (after the window was last empty) was recorded
}

// NewLatencyWindow creates a LatencyWindow retaining up to capacity samples.
func NewLatencyWindow(capacity int) *LatencyWindow {
	if capacity <= 0 {
		capacity = 1
	}
	return &LatencyWindow{samples: make([]int64, capacity)}
}

// Record adds a latency sample, in microseconds, evicting the oldest one once the window is full.
func (w *LatencyWindow) Record(micros int64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.count < len(w.samples) {
		if w.count == 0 {
			w.opened = utc.Now()
		}
		w.samples[w.count] = micros
		w.sum += micros
		w.count++
		return
	}

	w.sum += micros - w.samples[w.oldest]
	w.samples[w.oldest] = micros
	w.oldest = (w.oldest + 1) % len(w.samples)
}

// Snapshot summarizes the window's current contents: sample count, mean, p50 and p99, and the time since the first
// sample was recorded into the window. That start time is not advanced as samples are evicted, so once the window has
// wrapped, Span is longer than the age of the oldest retained sample.
func (w *LatencyWindow) Snapshot() Snapshot {
	w.mu.Lock()
	count := w.count
	sum := w.sum
	opened := w.opened
	sorted := make([]int64, count)
	copy(sorted, w.samples[:count])
	w.mu.Unlock()

	if count == 0 {
		return Snapshot{}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	return Snapshot{
		Count:      count,
		MeanMicros: float64(sum) / float64(count),
		P50Micros:  nearestRank(sorted, 0.5),
		P99Micros:  nearestRank(sorted, 0.99),
		Span:       utc.Now().Sub(opened),
	}
}

// Snapshot is a point-in-time summary of a LatencyWindow.
type Snapshot struct {
	Count      int
	MeanMicros float64
	P50Micros  int64
	P99Micros  int64
	Span       time.Duration // time since the window's first sample was recorded; not advanced by eviction
}

// nearestRank returns the value at quantile q (0..1) of sorted, which must already be ascending, using the
// nearest-rank method.
func nearestRank(sorted []int64, q float64) int64 {
	index := int(math.Ceil(q*float64(len(sorted)))) - 1
	if index < 0 {
		index = 0
	}
	if index >= len(sorted) {
		index = len(sorted) - 1
	}
	return sorted[index]
}
