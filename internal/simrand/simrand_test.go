package simrand

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeed_Deterministic(t *testing.T) {
	require.Equal(t, Seed("a", "b"), Seed("a", "b"))
	require.NotEqual(t, Seed("a", "b"), Seed("a", "c"))
}

func TestSeed_SeparatorMatters(t *testing.T) {
	require.NotEqual(t, Seed("ab", "c"), Seed("a", "bc"))
	require.NotEqual(t, Seed("abc"), Seed("ab", "c"))
}

func TestUnit_RangeAndStability(t *testing.T) {
	tuples := [][]string{
		{"accuracy", "claude_sonnet", "Simple refund request", "0"},
		{"latency", "gpt_4o", "Complex edge case", "2"},
		{"x"},
	}
	for _, parts := range tuples {
		v := Unit(parts...)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
		require.Equal(t, v, Unit(parts...))
	}
}

func TestSource_IndependentStreams(t *testing.T) {
	a := Source("stream", "a")
	b := Source("stream", "a")
	for i := 0; i < 10; i++ {
		require.Equal(t, a.Float64(), b.Float64())
	}
}
