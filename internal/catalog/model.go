// Package catalog owns the model records consumed by every engine component:
// the built-in rate cards plus user-added custom models persisted to disk.
package catalog

// Model is one entry in the catalog. Records are immutable once added;
// engine components receive resolved []Model slices and never write back.
type Model struct {
	Key               string  `json:"key"`
	Name              string  `json:"name"`
	Provider          string  `json:"provider"`
	InputCostPer1K    float64 `json:"input_cost_per_1k"`
	OutputCostPer1K   float64 `json:"output_cost_per_1k"`
	SpeedMS           int     `json:"speed_ms"`
	QualityScore      float64 `json:"quality_score"`
	HallucinationRate float64 `json:"hallucination_rate"`
	ContextWindow     int     `json:"context_window"`
	BestFor           string  `json:"best_for"`
	InfraCostMonthly  float64 `json:"infrastructure_cost_monthly,omitempty"`
	OpsCostMonthly    float64 `json:"ops_cost_monthly,omitempty"`
}

// builtinOrder fixes the display order of the built-in catalog.
var builtinOrder = []string{
	"claude_opus",
	"claude_sonnet",
	"claude_haiku",
	"gpt_4o",
	"llama3_self_hosted",
}

// builtins is the default rate card set. Figures are illustrative list
// prices, not live quotes.
var builtins = map[string]Model{
	"claude_opus": {
		Key:               "claude_opus",
		Name:              "Claude Opus 4.5",
		Provider:          "Anthropic",
		InputCostPer1K:    0.015,
		OutputCostPer1K:   0.045,
		SpeedMS:           820,
		QualityScore:      0.953,
		HallucinationRate: 0.02,
		ContextWindow:     200000,
		BestFor:           "Complex reasoning, high-stakes decisions",
	},
	"claude_sonnet": {
		Key:               "claude_sonnet",
		Name:              "Claude Sonnet 4.5",
		Provider:          "Anthropic",
		InputCostPer1K:    0.003,
		OutputCostPer1K:   0.015,
		SpeedMS:           420,
		QualityScore:      0.881,
		HallucinationRate: 0.04,
		ContextWindow:     200000,
		BestFor:           "Balanced performance, most use cases",
	},
	"claude_haiku": {
		Key:               "claude_haiku",
		Name:              "Claude Haiku 4.5",
		Provider:          "Anthropic",
		InputCostPer1K:    0.0008,
		OutputCostPer1K:   0.004,
		SpeedMS:           110,
		QualityScore:      0.762,
		HallucinationRate: 0.06,
		ContextWindow:     200000,
		BestFor:           "Simple tasks, routing, classification",
	},
	"gpt_4o": {
		Key:               "gpt_4o",
		Name:              "GPT-4o",
		Provider:          "OpenAI",
		InputCostPer1K:    0.005,
		OutputCostPer1K:   0.015,
		SpeedMS:           600,
		QualityScore:      0.92,
		HallucinationRate: 0.03,
		ContextWindow:     128000,
		BestFor:           "Good all-around, vision capabilities",
	},
	"llama3_self_hosted": {
		Key:               "llama3_self_hosted",
		Name:              "Llama 3 (Self-hosted)",
		Provider:          "Meta",
		InputCostPer1K:    0.0005,
		OutputCostPer1K:   0.0005,
		SpeedMS:           250,
		QualityScore:      0.72,
		HallucinationRate: 0.10,
		ContextWindow:     8000,
		BestFor:           "High volume with custom training",
		InfraCostMonthly:  8000,
		OpsCostMonthly:    3000,
	},
}

// BuiltinKeys returns the built-in model keys in display order.
func BuiltinKeys() []string {
	keys := make([]string, len(builtinOrder))
	copy(keys, builtinOrder)
	return keys
}

// Builtins returns the built-in models in display order.
func Builtins() []Model {
	out := make([]Model, 0, len(builtinOrder))
	for _, k := range builtinOrder {
		out = append(out, builtins[k])
	}
	return out
}
