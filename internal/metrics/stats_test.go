package metrics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	require.Zero(t, Mean(nil))
	require.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	require.Equal(t, 5.0, Mean([]float64{5}))
}

func TestMinMax(t *testing.T) {
	mn, mx := MinMax(nil)
	require.Zero(t, mn)
	require.Zero(t, mx)

	mn, mx = MinMax([]float64{3, -1, 7, 2})
	require.Equal(t, -1.0, mn)
	require.Equal(t, 7.0, mx)
}

func TestStdDev(t *testing.T) {
	require.Zero(t, StdDev(nil))
	require.Zero(t, StdDev([]float64{4, 4, 4}))
	// Population std dev of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2.
	require.InDelta(t, 2.0, StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}), 0.0001)
}

func TestPercentile(t *testing.T) {
	require.Zero(t, Percentile(nil, 0.99))

	values := []float64{10, 20, 30, 40, 50}
	require.Equal(t, 10.0, Percentile(values, 0))
	require.Equal(t, 30.0, Percentile(values, 0.5))
	require.Equal(t, 50.0, Percentile(values, 0.99))
	require.Equal(t, 50.0, Percentile(values, 1))

	// Input order must not matter.
	require.Equal(t, 30.0, Percentile([]float64{50, 10, 40, 30, 20}, 0.5))
}

func TestRounding(t *testing.T) {
	require.Equal(t, 1234.57, Round2(1234.5678))
	require.Equal(t, 0.1235, Round4(0.123456))
	require.Equal(t, -2.5, Round2(-2.499))
}
