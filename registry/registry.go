// Package registry maps symbol names to their Symbol Aggregates, lazily creating entries on first reference and
// keeping them alive for the process lifetime. It implements the two-level locking discipline: a shared map lock
// that is never held across a symbol's own critical section, and a per-symbol lock that serializes that symbol's
// writers while leaving every other symbol free to proceed.
package registry

import (
	"sync"

	"github.com/eluv-io/errors-go"

	"github.com/eluv-io/tickstat-go/symbol"
)

// Registry maps symbol strings to handle instances. The zero value is not usable; construct with New.
type Registry struct {
	mu      sync.RWMutex
	symbols map[string]*handle
}

// handle wraps one symbol's Aggregate in its own reader/writer lock, so that the registry's map lock is released
// before any caller touches the aggregate itself.
type handle struct {
	mu        sync.RWMutex
	aggregate *symbol.Aggregate
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{symbols: make(map[string]*handle)}
}

// get returns the handle for name, creating it if this is the first reference. It implements the documented
// double-checked pattern: a shared lock covers the common "already exists" path; the exclusive lock, taken only on
// a miss, re-checks before inserting in case another goroutine won the race to create it first.
func (r *Registry) get(name string) *handle {
	r.mu.RLock()
	h, ok := r.symbols[name]
	r.mu.RUnlock()
	if ok {
		return h
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok = r.symbols[name]; ok {
		return h
	}
	h = &handle{aggregate: symbol.NewAggregate()}
	r.symbols[name] = h
	return h
}

// Ingest applies values, in order, to the named symbol's history, creating the symbol if this is its first
// reference. It always succeeds: there is no validation of values, and an empty batch is a no-op.
func (r *Registry) Ingest(name string, values []float64) error {
	h := r.get(name)
	h.mu.Lock()
	defer h.mu.Unlock()
	h.aggregate.AddBatch(values)
	return nil
}

// Query returns the statistics snapshot for window size 10^k of the named symbol.
//
// It fails with errors.K.Invalid if k is outside [symbol.MinK, symbol.MaxK], and with errors.K.NotExist if the
// symbol has no observations yet (including a symbol that has never been referenced at all: a lookup alone does
// not create an entry other than the handle itself, which starts out empty).
func (r *Registry) Query(name string, k int) (symbol.Result, error) {
	const op = "registry.Query"

	if k < symbol.MinK || k > symbol.MaxK {
		return symbol.Result{}, errors.E(op, errors.K.Invalid, "reason", "k out of range", "symbol", name, "k", k)
	}

	h := r.get(name)
	h.mu.RLock()
	defer h.mu.RUnlock()

	result, ok := h.aggregate.Stats(k)
	if !ok {
		return symbol.Result{}, errors.E(op, errors.K.NotExist, "reason", "no values for symbol", "symbol", name, "k", k)
	}
	return result, nil
}
