package registry_test

import (
	"sync"
	"testing"
	"time"

	"github.com/eluv-io/errors-go"
	"github.com/stretchr/testify/require"

	"github.com/eluv-io/tickstat-go/registry"
)

func TestQueryFreshRegistryIsEmpty(t *testing.T) {
	r := registry.New()
	_, err := r.Query("X", 3)
	require.Error(t, err)
	require.Equal(t, errors.K.NotExist, err.(*errors.Error).Kind())
}

func TestQueryInvalidK(t *testing.T) {
	r := registry.New()
	_, err := r.Query("X", 0)
	require.Error(t, err)
	require.Equal(t, errors.K.Invalid, err.(*errors.Error).Kind())

	_, err = r.Query("X", 9)
	require.Error(t, err)
	require.Equal(t, errors.K.Invalid, err.(*errors.Error).Kind())
}

func TestIngestThenQuery(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Ingest("X", []float64{1, 2, 3, 4, 5}))

	result, err := r.Query("X", 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, result.Min)
	require.Equal(t, 5.0, result.Max)
	require.Equal(t, 5.0, result.Last)
	require.Equal(t, 3.0, result.Avg)
	require.InDelta(t, 2.0, result.Var, 1e-9)
}

func TestQueryLargerKSameResultWhenWindowNotSaturated(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Ingest("X", []float64{1, 2, 3, 4, 5}))

	k1, err := r.Query("X", 1)
	require.NoError(t, err)
	k2, err := r.Query("X", 2)
	require.NoError(t, err)
	require.Equal(t, k1, k2)
}

func TestSlidingWindowOfTen(t *testing.T) {
	r := registry.New()
	for v := 1; v <= 11; v++ {
		require.NoError(t, r.Ingest("X", []float64{float64(v)}))
	}

	result, err := r.Query("X", 1)
	require.NoError(t, err)
	require.Equal(t, 2.0, result.Min)
	require.Equal(t, 11.0, result.Max)
	require.Equal(t, 11.0, result.Last)
	require.Equal(t, 6.5, result.Avg)
	require.InDelta(t, 8.25, result.Var, 1e-9)
}

func TestDistinctSymbolsAreIndependent(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Ingest("X", []float64{1, 2, 3}))
	require.NoError(t, r.Ingest("Y", []float64{100, 200}))

	x, err := r.Query("X", 1)
	require.NoError(t, err)
	y, err := r.Query("Y", 1)
	require.NoError(t, err)

	require.Equal(t, 3.0, x.Last)
	require.Equal(t, 200.0, y.Last)
}

// TestConcurrentIngestToDistinctSymbolsDoesNotBlock verifies registry isolation (testable property 6): a slow
// ingest to one symbol must not delay an ingest to another. It drives the slow symbol's critical section artificially
// long by feeding it a large batch on one goroutine, and asserts a concurrent ingest to a different symbol completes
// well within that window.
func TestConcurrentIngestToDistinctSymbolsDoesNotBlock(t *testing.T) {
	r := registry.New()

	slowBatch := make([]float64, 2_000_000)
	for i := range slowBatch {
		slowBatch[i] = float64(i)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		require.NoError(t, r.Ingest("slow", slowBatch))
	}()

	// give the slow goroutine a head start so it's plausibly still inside its critical section
	time.Sleep(time.Millisecond)

	done := make(chan struct{})
	go func() {
		defer close(done)
		require.NoError(t, r.Ingest("fast", []float64{1}))
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ingest to a distinct symbol was blocked by a concurrent ingest to another symbol")
	}

	wg.Wait()
}

func TestConcurrentIngestsToSameSymbolAreSerialized(t *testing.T) {
	r := registry.New()

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				require.NoError(t, r.Ingest("X", []float64{1}))
			}
		}()
	}
	wg.Wait()

	result, err := r.Query("X", 8)
	require.NoError(t, err)
	require.Equal(t, 1.0, result.Min)
	require.Equal(t, 1.0, result.Max)
	require.Equal(t, 1.0, result.Avg)
	require.Equal(t, 0.0, result.Var)
}
