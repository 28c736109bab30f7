// Package monodeque implements the monotonic min/max deques that maintain a sliding window's running extremum in
// amortized O(1) per update, specialized to the case where a collaborating window.Window already tracks the
// values: the deque is driven externally by Update(old, new) rather than observing pushes itself.
package monodeque

import "github.com/gammazero/deque"

// Min is a monotonic min deque: its contents are a non-decreasing suffix of the associated window's values, front
// to back, so the front is always the window's minimum.
type Min struct {
	items deque.Deque
}

// Min returns the current minimum, or ok=false if the deque is empty.
func (m *Min) Min() (value float64, ok bool) {
	if m.items.Len() == 0 {
		return 0, false
	}
	return m.items.Front().(float64), true
}

// Update removes old (if present) then pushes new. old must be the value evicted from the associated window by the
// same logical step that introduces new.
func (m *Min) Update(old float64, hasOld bool, new float64) {
	if hasOld {
		m.remove(old)
	}
	m.push(new)
}

func (m *Min) push(value float64) {
	for m.items.Len() > 0 && m.items.Back().(float64) > value {
		m.items.PopBack()
	}
	m.items.PushBack(value)
}

func (m *Min) remove(value float64) {
	// An evicted value can only still be present at the front: any interior equal value would violate
	// monotonicity unless it is the front.
	if m.items.Len() > 0 && m.items.Front().(float64) == value {
		m.items.PopFront()
	}
}

// Max is the symmetric dual of Min: the front always holds the associated window's maximum.
type Max struct {
	items deque.Deque
}

// Max returns the current maximum, or ok=false if the deque is empty.
func (m *Max) Max() (value float64, ok bool) {
	if m.items.Len() == 0 {
		return 0, false
	}
	return m.items.Front().(float64), true
}

// Update removes old (if present) then pushes new.
func (m *Max) Update(old float64, hasOld bool, new float64) {
	if hasOld {
		m.remove(old)
	}
	m.push(new)
}

func (m *Max) push(value float64) {
	for m.items.Len() > 0 && m.items.Back().(float64) < value {
		m.items.PopBack()
	}
	m.items.PushBack(value)
}

func (m *Max) remove(value float64) {
	if m.items.Len() > 0 && m.items.Front().(float64) == value {
		m.items.PopFront()
	}
}
