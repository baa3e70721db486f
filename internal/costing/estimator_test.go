package costing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/validate"
)

func makeModel(key string, inRate, outRate, hallucination float64, speedMS int) catalog.Model {
	return catalog.Model{
		Key:               key,
		Name:              key,
		InputCostPer1K:    inRate,
		OutputCostPer1K:   outRate,
		HallucinationRate: hallucination,
		SpeedMS:           speedMS,
		QualityScore:      0.9,
	}
}

func TestEstimate_ConcreteBreakdown(t *testing.T) {
	// 100k requests/day at 500 in / 300 out tokens, $0.003 and $0.015
	// per 1k, 1% hallucination at $50 per correction.
	est := NewEstimator().WithCorrectionCost(50)
	m := makeModel("m", 0.003, 0.015, 0.01, 400)
	w := Workload{RequestsPerDay: 100000, AvgInputTokens: 500, AvgOutputTokens: 300}

	b, err := est.Estimate(m, w)
	require.NoError(t, err)
	require.InDelta(t, 18000.0, b.APICost, 0.001)
	require.InDelta(t, 1500000.0, b.CorrectionCost, 0.001)
	require.Zero(t, b.ChurnCost)
	require.InDelta(t, 1518000.0, b.TotalMonthly, 0.001)
	require.InDelta(t, 0.506, b.CostPerRequest, 0.0001)
}

func TestEstimate_TotalIsSumOfComponents(t *testing.T) {
	est := NewEstimator()
	m := makeModel("m", 0.005, 0.02, 0.03, 900)
	m.InfraCostMonthly = 4000
	m.OpsCostMonthly = 8000
	w := Workload{RequestsPerDay: 12345, AvgInputTokens: 333, AvgOutputTokens: 77}

	b, err := est.Estimate(m, w)
	require.NoError(t, err)
	sum := b.APICost + b.CorrectionCost + b.ChurnCost + b.Infrastructure + b.Operations
	require.InDelta(t, sum, b.TotalMonthly, 0.03)
	require.Positive(t, b.ChurnCost)
}

func TestEstimate_ChurnOnlyAboveThreshold(t *testing.T) {
	est := NewEstimator()
	w := Workload{RequestsPerDay: 1000, AvgInputTokens: 100, AvgOutputTokens: 100}

	fast, err := est.Estimate(makeModel("fast", 0.001, 0.001, 0, 500), w)
	require.NoError(t, err)
	require.Zero(t, fast.ChurnCost)

	slow, err := est.Estimate(makeModel("slow", 0.001, 0.001, 0, 1000), w)
	require.NoError(t, err)
	// (1000-500)/500 * 0.01 * 30000 requests * $100 LTV
	require.InDelta(t, 30000.0, slow.ChurnCost, 0.001)
}

func TestEstimate_MonotonicInVolume(t *testing.T) {
	est := NewEstimator()
	m := makeModel("m", 0.003, 0.015, 0.02, 700)

	small, err := est.Estimate(m, Workload{RequestsPerDay: 1000, AvgInputTokens: 500, AvgOutputTokens: 300})
	require.NoError(t, err)
	large, err := est.Estimate(m, Workload{RequestsPerDay: 50000, AvgInputTokens: 500, AvgOutputTokens: 300})
	require.NoError(t, err)
	require.Greater(t, large.TotalMonthly, small.TotalMonthly)
	require.Greater(t, large.APICost, small.APICost)
}

func TestEstimate_InvalidWorkload(t *testing.T) {
	est := NewEstimator()
	m := makeModel("m", 0.003, 0.015, 0.01, 400)

	for _, w := range []Workload{
		{RequestsPerDay: 0, AvgInputTokens: 500, AvgOutputTokens: 300},
		{RequestsPerDay: 1000, AvgInputTokens: -1, AvgOutputTokens: 300},
		{RequestsPerDay: 1000, AvgInputTokens: 500, AvgOutputTokens: 0},
	} {
		_, err := est.Estimate(m, w)
		var verr *validate.Error
		require.True(t, errors.As(err, &verr), "workload %+v should be rejected", w)
	}
}

func TestEstimateAll_SortedByTotal(t *testing.T) {
	est := NewEstimator()
	w := Workload{RequestsPerDay: 10000, AvgInputTokens: 500, AvgOutputTokens: 300}
	models := []catalog.Model{
		makeModel("pricey", 0.015, 0.075, 0.01, 800),
		makeModel("cheap", 0.0002, 0.0006, 0.08, 200),
		makeModel("mid", 0.003, 0.015, 0.04, 420),
	}

	out, err := est.EstimateAll(models, w)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := 1; i < len(out); i++ {
		require.LessOrEqual(t, out[i-1].TotalMonthly, out[i].TotalMonthly)
	}
}

func TestEstimateAll_TieBreaks(t *testing.T) {
	est := NewEstimator()
	w := Workload{RequestsPerDay: 1000, AvgInputTokens: 100, AvgOutputTokens: 100}

	a := makeModel("b_model", 0.001, 0.001, 0, 300)
	a.QualityScore = 0.8
	b := makeModel("a_model", 0.001, 0.001, 0, 300)
	b.QualityScore = 0.95
	c := makeModel("c_model", 0.001, 0.001, 0, 300)
	c.QualityScore = 0.95

	out, err := est.EstimateAll([]catalog.Model{a, b, c}, w)
	require.NoError(t, err)
	// Equal totals sort by quality desc, then key.
	require.Equal(t, []string{"a_model", "c_model", "b_model"},
		[]string{out[0].ModelKey, out[1].ModelKey, out[2].ModelKey})
}

func TestEstimateAll_EmptySet(t *testing.T) {
	est := NewEstimator()
	out, err := est.EstimateAll(nil, Workload{RequestsPerDay: 1, AvgInputTokens: 1, AvgOutputTokens: 1})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestEstimate_Builtins(t *testing.T) {
	est := NewEstimator()
	w := Workload{RequestsPerDay: 10000, AvgInputTokens: 500, AvgOutputTokens: 300}

	for _, m := range catalog.Builtins() {
		b, err := est.Estimate(m, w)
		require.NoError(t, err)
		require.Positive(t, b.TotalMonthly, "model %s", m.Key)
		require.Positive(t, b.CostPerRequest, "model %s", m.Key)
	}
}
