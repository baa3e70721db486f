package decision

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/costing"
	"github.com/modelworks/workbench/internal/validate"
)

func newTestMatrix() *Matrix {
	return NewMatrix(costing.NewEstimator())
}

func TestDecide_RecommendationSatisfiesConstraints(t *testing.T) {
	req := Requirements{
		AccuracyRequirement:  0.85,
		LatencyRequirementMS: 1000,
		BudgetPerMonth:       500000,
		UseCase:              "customer_support",
		RequestsPerDay:       10000,
	}
	res, err := newTestMatrix().Decide(catalog.Builtins(), req)
	require.NoError(t, err)
	require.NotEqual(t, NoMatchRecommendation, res.Recommendation)
	require.NotEmpty(t, res.RecommendedModel)
	require.Equal(t, "customer_support", res.UseCase)

	var picked catalog.Model
	for _, m := range catalog.Builtins() {
		if m.Key == res.RecommendedModel {
			picked = m
		}
	}
	require.GreaterOrEqual(t, picked.QualityScore, req.AccuracyRequirement)
	require.LessOrEqual(t, picked.SpeedMS, req.LatencyRequirementMS)
	require.LessOrEqual(t, res.MonthlyCost, req.BudgetPerMonth)
	require.InDelta(t, req.BudgetPerMonth-res.MonthlyCost, res.SavingsVsBudget, 0.01)
	require.NotEmpty(t, res.Reasoning)
}

func TestDecide_ImpossibleBudgetReturnsNoMatch(t *testing.T) {
	req := Requirements{
		AccuracyRequirement:  0.99,
		LatencyRequirementMS: 10,
		BudgetPerMonth:       1,
		RequestsPerDay:       100000,
	}
	res, err := newTestMatrix().Decide(catalog.Builtins(), req)
	require.NoError(t, err)
	require.Equal(t, NoMatchRecommendation, res.Recommendation)
	require.Empty(t, res.RecommendedModel)
	require.NotEmpty(t, res.Options)
	require.LessOrEqual(t, len(res.Options), 3)

	for _, alt := range res.Options {
		require.NotEmpty(t, alt.ViolatedConstraints)
		require.Positive(t, alt.ViolationMagnitude)
	}
	for i := 1; i < len(res.Options); i++ {
		prev, cur := res.Options[i-1], res.Options[i]
		if len(prev.ViolatedConstraints) == len(cur.ViolatedConstraints) {
			require.LessOrEqual(t, prev.ViolationMagnitude, cur.ViolationMagnitude)
		} else {
			require.Less(t, len(prev.ViolatedConstraints), len(cur.ViolatedConstraints))
		}
	}
}

func TestDecide_SingleSurvivor(t *testing.T) {
	models := []catalog.Model{
		{Key: "fit", Name: "Fit", QualityScore: 0.9, SpeedMS: 300, InputCostPer1K: 0.001, OutputCostPer1K: 0.001},
		{Key: "slow", Name: "Slow", QualityScore: 0.95, SpeedMS: 5000, InputCostPer1K: 0.001, OutputCostPer1K: 0.001},
	}
	req := Requirements{
		AccuracyRequirement:  0.85,
		LatencyRequirementMS: 1000,
		BudgetPerMonth:       50000,
		RequestsPerDay:       1000,
	}
	res, err := newTestMatrix().Decide(models, req)
	require.NoError(t, err)
	require.Equal(t, "fit", res.RecommendedModel)
	require.Equal(t, "Fit meets all requirements", res.Recommendation)
}

func TestDecide_ViolationNames(t *testing.T) {
	models := []catalog.Model{
		{Key: "bad", Name: "Bad", QualityScore: 0.5, SpeedMS: 5000, InputCostPer1K: 10, OutputCostPer1K: 10},
	}
	req := Requirements{
		AccuracyRequirement:  0.9,
		LatencyRequirementMS: 500,
		BudgetPerMonth:       100,
		RequestsPerDay:       1000,
	}
	res, err := newTestMatrix().Decide(models, req)
	require.NoError(t, err)
	require.Equal(t, NoMatchRecommendation, res.Recommendation)
	require.Len(t, res.Options, 1)
	require.Equal(t, []string{"accuracy", "latency", "budget"}, res.Options[0].ViolatedConstraints)
}

func TestDecide_TieBreaksByKey(t *testing.T) {
	// Identical models score identically; the lexically smaller key wins.
	a := catalog.Model{Key: "b_twin", Name: "B", QualityScore: 0.9, SpeedMS: 300, InputCostPer1K: 0.001, OutputCostPer1K: 0.001}
	b := a
	b.Key, b.Name = "a_twin", "A"
	req := Requirements{
		AccuracyRequirement:  0.8,
		LatencyRequirementMS: 1000,
		BudgetPerMonth:       50000,
		RequestsPerDay:       1000,
	}
	res, err := newTestMatrix().Decide([]catalog.Model{a, b}, req)
	require.NoError(t, err)
	require.Equal(t, "a_twin", res.RecommendedModel)
}

func TestDecide_InvalidRequirements(t *testing.T) {
	tests := []struct {
		name  string
		req   Requirements
		field string
	}{
		{
			"accuracy out of range",
			Requirements{AccuracyRequirement: 1.2, LatencyRequirementMS: 100, BudgetPerMonth: 100, RequestsPerDay: 100},
			"accuracy_requirement",
		},
		{
			"non-positive latency",
			Requirements{AccuracyRequirement: 0.8, LatencyRequirementMS: 0, BudgetPerMonth: 100, RequestsPerDay: 100},
			"latency_requirement_ms",
		},
		{
			"non-positive budget",
			Requirements{AccuracyRequirement: 0.8, LatencyRequirementMS: 100, BudgetPerMonth: 0, RequestsPerDay: 100},
			"budget_per_month",
		},
		{
			"non-positive volume",
			Requirements{AccuracyRequirement: 0.8, LatencyRequirementMS: 100, BudgetPerMonth: 100, RequestsPerDay: 0},
			"requests_per_day",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestMatrix().Decide(catalog.Builtins(), tt.req)
			var verr *validate.Error
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestDecide_Deterministic(t *testing.T) {
	req := Requirements{
		AccuracyRequirement:  0.7,
		LatencyRequirementMS: 2000,
		BudgetPerMonth:       500000,
		RequestsPerDay:       50000,
	}
	mx := newTestMatrix()
	a, err := mx.Decide(catalog.Builtins(), req)
	require.NoError(t, err)
	b, err := mx.Decide(catalog.Builtins(), req)
	require.NoError(t, err)
	require.Equal(t, a, b)
}
