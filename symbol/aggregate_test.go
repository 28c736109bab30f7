package symbol_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eluv-io/tickstat-go/symbol"
)

func TestAggregateAgainstBruteForce(t *testing.T) {
	const total = 2_500

	values := make([]float64, total)
	for i := range values {
		values[i] = float64(rand.Intn(65536) - 32768)
	}

	agg := symbol.NewAggregate()

	// feed in irregular batch sizes, the way the HTTP boundary would
	var fed []float64
	for i := 0; i < len(values); {
		n := 1 + rand.Intn(7)
		if i+n > len(values) {
			n = len(values) - i
		}
		batch := values[i : i+n]
		agg.AddBatch(batch)
		fed = append(fed, batch...)
		i += n

		for k := symbol.MinK; k <= symbol.MaxK; k++ {
			assertAggregate(t, agg, fed, k)
		}
	}
}

func assertAggregate(t *testing.T, agg *symbol.Aggregate, fed []float64, k int) {
	t.Helper()

	result, ok := agg.Stats(k)
	require.True(t, ok)

	windowSize := symbol.Ks[k-1]
	start := 0
	if len(fed) > windowSize {
		start = len(fed) - windowSize
	}
	window := fed[start:]

	expMin, expMax := window[0], window[0]
	var sum float64
	for _, v := range window {
		if v < expMin {
			expMin = v
		}
		if v > expMax {
			expMax = v
		}
		sum += v
	}
	expAvg := sum / float64(len(window))

	var sumSq float64
	for _, v := range window {
		d := v - expAvg
		sumSq += d * d
	}
	expVariance := sumSq / float64(len(window))

	require.InDelta(t, expMin, result.Min, 1e-4)
	require.InDelta(t, expMax, result.Max, 1e-4)
	require.Equal(t, fed[len(fed)-1], result.Last)
	require.InDelta(t, expAvg, result.Avg, 1e-4)
	require.InDelta(t, expVariance, result.Var, 1e-4)
}

func TestAggregateEmpty(t *testing.T) {
	agg := symbol.NewAggregate()
	_, ok := agg.Stats(symbol.MinK)
	require.False(t, ok)
}

func TestAggregateSingleValue(t *testing.T) {
	agg := symbol.NewAggregate()
	agg.AddBatch([]float64{42})

	for k := symbol.MinK; k <= symbol.MaxK; k++ {
		result, ok := agg.Stats(k)
		require.True(t, ok)
		require.Equal(t, 42.0, result.Min)
		require.Equal(t, 42.0, result.Max)
		require.Equal(t, 42.0, result.Last)
		require.Equal(t, 42.0, result.Avg)
		require.Equal(t, 0.0, result.Var)
	}
}

func TestAggregateStatsOutOfRangePanics(t *testing.T) {
	agg := symbol.NewAggregate()
	agg.AddBatch([]float64{1})

	require.Panics(t, func() { agg.Stats(0) })
	require.Panics(t, func() { agg.Stats(symbol.MaxK + 1) })
}
