package scenario

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/validate"
)

var testModel = catalog.Model{
	Key:               "test_model",
	Name:              "Test Model",
	QualityScore:      0.9,
	HallucinationRate: 0.02,
	SpeedMS:           400,
}

func TestEvaluate_DefaultScenarios(t *testing.T) {
	rep, err := NewEvaluator().Evaluate(testModel, nil)
	require.NoError(t, err)
	require.Equal(t, "test_model", rep.Model)
	require.Equal(t, len(DefaultSet()), rep.Total)
	require.Len(t, rep.TestResults, rep.Total)
	require.GreaterOrEqual(t, rep.Total, rep.Passed)

	for _, r := range rep.TestResults {
		require.GreaterOrEqual(t, r.Accuracy, 0.0)
		require.LessOrEqual(t, r.Accuracy, 1.0)
		require.Positive(t, r.LatencyMS)
		require.True(t, strings.HasPrefix(r.Actual, "[Test Model] Response to: "))
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	ev := NewEvaluator()
	a, err := ev.Evaluate(testModel, nil)
	require.NoError(t, err)
	b, err := ev.Evaluate(testModel, nil)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestEvaluateTrial_SaltChangesFigures(t *testing.T) {
	ev := NewEvaluator()
	a, err := ev.EvaluateTrial(testModel, nil, 0)
	require.NoError(t, err)
	b, err := ev.EvaluateTrial(testModel, nil, 1)
	require.NoError(t, err)
	require.NotEqual(t, a.TestResults, b.TestResults)
}

func TestEvaluate_WeightedScore(t *testing.T) {
	scenarios := []Scenario{
		{Name: "light", Input: "a", Expected: "b", RequiredAccuracy: 0.5, Weight: 1},
		{Name: "heavy", Input: "c", Expected: "d", RequiredAccuracy: 0.5, Weight: 3},
	}
	rep, err := NewEvaluator().Evaluate(testModel, scenarios)
	require.NoError(t, err)

	var want float64
	for _, r := range rep.TestResults {
		switch r.Scenario {
		case "light":
			want += r.Accuracy * 1
		case "heavy":
			want += r.Accuracy * 3
		}
	}
	want /= 4
	require.InDelta(t, want, rep.OverallScore, 0.0001)
}

func TestEvaluate_StrictThresholdFails(t *testing.T) {
	weak := catalog.Model{Key: "weak", Name: "Weak", QualityScore: 0.6, HallucinationRate: 0.2, SpeedMS: 300}
	scenarios := []Scenario{
		{Name: "strict", Input: "in", Expected: "out", RequiredAccuracy: 0.99, Weight: 1},
	}
	rep, err := NewEvaluator().Evaluate(weak, scenarios)
	require.NoError(t, err)
	require.Zero(t, rep.Passed)
	require.False(t, rep.TestResults[0].Passed)
}

func TestNormalize_Validation(t *testing.T) {
	tests := []struct {
		name      string
		scenarios []Scenario
		field     string
	}{
		{"negative weight", []Scenario{{Name: "s", Expected: "e", Weight: -1}}, "scenarios"},
		{"accuracy above one", []Scenario{{Name: "s", Expected: "e", RequiredAccuracy: 1.5}}, "scenarios"},
		{"accuracy below zero", []Scenario{{Name: "s", Expected: "e", RequiredAccuracy: -0.1}}, "scenarios"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.scenarios)
			var verr *validate.Error
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestNormalize_DefaultsWeight(t *testing.T) {
	out, err := Normalize([]Scenario{{Name: "s", Expected: "e"}})
	require.NoError(t, err)
	require.Equal(t, 1.0, out[0].Weight)
}

func TestDefaultSet_Shape(t *testing.T) {
	set := DefaultSet()
	require.Len(t, set, 3)
	for _, s := range set {
		require.NotEmpty(t, s.Name)
		require.NotEmpty(t, s.Expected)
		require.Positive(t, s.Weight)
	}
}
