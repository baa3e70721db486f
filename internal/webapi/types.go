package webapi

import (
	"encoding/json"

	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/costing"
	"github.com/modelworks/workbench/internal/history"
)

// CostRequest asks for monthly cost breakdowns over a model set.
// An empty model list resolves to the selected catalog subset; zero
// workload fields take the configured defaults.
type CostRequest struct {
	Models          []string `json:"models"`
	RequestsPerDay  int      `json:"requests_per_day"`
	AvgInputTokens  int      `json:"avg_input_tokens"`
	AvgOutputTokens int      `json:"avg_output_tokens"`
}

// CostResponse carries breakdowns sorted ascending by total monthly
// cost.
type CostResponse struct {
	Results []costing.Breakdown `json:"results"`
}

// SelectRequest asks for a scenario evaluation of one model. Scenarios
// stays raw so it can be schema-validated before decoding; empty falls
// back to the default set.
type SelectRequest struct {
	Model     string          `json:"model"`
	Scenarios json.RawMessage `json:"scenarios"`
}

// BenchmarkRequest asks for a multi-iteration benchmark over a model
// set.
type BenchmarkRequest struct {
	Models     []string        `json:"models"`
	TestCases  json.RawMessage `json:"test_cases"`
	Iterations int             `json:"iterations"`
}

// DecisionRequest carries the decision-matrix constraints. Zero fields
// take the documented defaults.
type DecisionRequest struct {
	AccuracyRequirement  float64 `json:"accuracy_requirement"`
	LatencyRequirementMS int     `json:"latency_requirement_ms"`
	BudgetPerMonth       float64 `json:"budget_per_month"`
	UseCase              string  `json:"use_case"`
	RequestsPerDay       int     `json:"requests_per_day"`
}

// CanaryRequest asks for a staged rollout simulation.
type CanaryRequest struct {
	CurrentModel        string `json:"current_model"`
	NewModel            string `json:"new_model"`
	FinalTrafficPercent int    `json:"final_traffic_percent"`
}

// ModelsResponse is the catalog listing.
type ModelsResponse struct {
	Models         []catalog.Model `json:"models"`
	SelectedModels []string        `json:"selected_models"`
}

// SelectModelsRequest mutates the selected-model subset.
type SelectModelsRequest struct {
	SelectedModels []string `json:"selected_models"`
}

// SelectModelsResponse echoes the persisted selection.
type SelectModelsResponse struct {
	SelectedModels []string `json:"selected_models"`
}

// HistoryResponse lists recorded canary outcomes, newest first.
type HistoryResponse struct {
	Outcomes []history.Entry `json:"outcomes"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    int      `json:"code"`
	Details []string `json:"details,omitempty"`
}
