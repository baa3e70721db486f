package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCustomModel_Valid(t *testing.T) {
	errs := ValidateCustomModel(map[string]any{
		"name":               "My Model",
		"provider":           "Acme",
		"input_cost_per_1k":  0.002,
		"output_cost_per_1k": 0.008,
		"speed_ms":           300.0,
		"quality_score":      0.87,
		"hallucination_rate": 0.03,
		"context_window":     32000.0,
	})
	require.Empty(t, errs)
}

func TestValidateCustomModel_MissingName(t *testing.T) {
	errs := ValidateCustomModel(map[string]any{"speed_ms": 300.0})
	require.NotEmpty(t, errs)
}

func TestValidateCustomModel_OutOfRange(t *testing.T) {
	errs := ValidateCustomModel(map[string]any{
		"name":          "Bad",
		"quality_score": 1.4,
	})
	require.NotEmpty(t, errs)
}

func TestValidateCustomModel_UnknownField(t *testing.T) {
	errs := ValidateCustomModel(map[string]any{
		"name":  "Strict",
		"vibes": "immaculate",
	})
	require.NotEmpty(t, errs)
}

func TestValidateScenarioSetBytes(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		wantOK  bool
	}{
		{
			"valid set",
			`[{"name": "refund", "input": "q", "expected": "a", "required_accuracy": 0.8, "weight": 1.5}]`,
			true,
		},
		{"empty set", `[]`, true},
		{"missing expected", `[{"name": "refund"}]`, false},
		{"zero weight", `[{"name": "refund", "expected": "a", "weight": 0}]`, false},
		{"not an array", `{"name": "refund"}`, false},
		{"malformed json", `[{`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateScenarioSetBytes([]byte(tt.payload))
			if tt.wantOK {
				require.Empty(t, errs)
			} else {
				require.NotEmpty(t, errs)
			}
		})
	}
}
