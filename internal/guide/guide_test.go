package guide

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modelworks/workbench/internal/canary"
	"github.com/modelworks/workbench/internal/costing"
	"github.com/modelworks/workbench/internal/decision"
)

func TestMistakes(t *testing.T) {
	mistakes := Mistakes()
	require.Len(t, mistakes, 5)
	for _, m := range mistakes {
		require.NotEmpty(t, m.Title)
		require.NotEmpty(t, m.AntiPattern)
		require.NotEmpty(t, m.Recommended)
	}
}

func TestReevaluationTriggers(t *testing.T) {
	triggers := ReevaluationTriggers()
	require.Len(t, triggers, 6)
	require.Contains(t, triggers, "trigger_6_annual_review")
}

func TestExample(t *testing.T) {
	ex := Example()
	require.Len(t, ex.Comparison, 3)
	require.Equal(t, "Claude Sonnet", ex.Recommendation.Model)
	require.NotEmpty(t, ex.Recommendation.Reasoning)
}

func TestEcommerce(t *testing.T) {
	payload, err := Ecommerce(
		costing.NewEstimator(),
		decision.NewMatrix(costing.NewEstimator()),
		canary.NewSimulator(canary.DefaultGates()),
	)
	require.NoError(t, err)

	require.Equal(t, 100000, payload.Requirements.RequestsPerDay)
	require.NotEqual(t, decision.NoMatchRecommendation, payload.Decision.Recommendation)
	require.NotEmpty(t, payload.Decision.RecommendedModel)
	require.Equal(t, canary.StatusCompleted, payload.Canary.Status)
	require.Equal(t, "claude_opus", payload.CostComparison.OldModel)
	require.Equal(t, payload.Canary.NewModel, payload.CostComparison.NewModel)
	require.Positive(t, payload.CostComparison.MonthlySavings)
	require.InDelta(t, payload.CostComparison.MonthlySavings*12, payload.CostComparison.AnnualSavings, 0.01)
}
