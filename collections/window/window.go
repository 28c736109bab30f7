// Package window implements the bounded, reverse-chronologically indexed observation buffer that backs every
// symbol's history.
package window

import "github.com/gammazero/deque"

// Window is an ordered, fixed-capacity sequence of float64 values. Index 0 is the most recently pushed value; index
// Len()-1 is the oldest. Once the window is saturated, each Push evicts the oldest value.
type Window struct {
	maxLen int
	items  deque.Deque // front (index 0) holds the most recent value
}

// New creates a Window with the given (non-zero) capacity. A zero or negative maxLen is a precondition violation:
// it is a bug in the caller, not a runtime condition the engine recovers from.
func New(maxLen int) *Window {
	if maxLen <= 0 {
		panic("window: max length must be > 0")
	}
	return &Window{maxLen: maxLen}
}

// Len returns the number of values currently held.
func (w *Window) Len() int {
	return w.items.Len()
}

// IsEmpty reports whether the window holds no values.
func (w *Window) IsEmpty() bool {
	return w.items.Len() == 0
}

// Get returns the value at index (0 = most recent), or ok=false if index is out of range.
func (w *Window) Get(index int) (value float64, ok bool) {
	if index < 0 || index >= w.items.Len() {
		return 0, false
	}
	return w.items.At(index).(float64), true
}

// Push inserts value as the new most-recent entry. If the window was already at capacity, the oldest value is
// evicted and returned with ok=true; otherwise ok is false.
func (w *Window) Push(value float64) (evicted float64, ok bool) {
	if w.items.Len() == w.maxLen {
		evicted, ok = w.items.PopBack().(float64), true
	}
	w.items.PushFront(value)
	return evicted, ok
}

// Values returns the window's contents front-to-back (most recent first). Test-only: a window saturated at 10^8
// entries is not meant to be materialized.
func (w *Window) Values() []float64 {
	out := make([]float64, w.items.Len())
	for i := range out {
		out[i] = w.items.At(i).(float64)
	}
	return out
}
