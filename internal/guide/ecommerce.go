package guide

import (
	"github.com/modelworks/workbench/internal/canary"
	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/costing"
	"github.com/modelworks/workbench/internal/decision"
	"github.com/modelworks/workbench/internal/metrics"
)

// EcommerceRequirements describes the walkthrough's workload.
type EcommerceRequirements struct {
	RequestsPerDay int     `json:"requests_per_day"`
	AccuracyNeeded string  `json:"accuracy_needed"`
	Latency        string  `json:"latency"`
	Budget         float64 `json:"budget"`
}

// CostComparison contrasts the incumbent with the recommended model.
type CostComparison struct {
	OldModel       string  `json:"old_model"`
	OldMonthly     float64 `json:"old_monthly"`
	NewModel       string  `json:"new_model"`
	NewMonthly     float64 `json:"new_monthly"`
	MonthlySavings float64 `json:"monthly_savings"`
	AnnualSavings  float64 `json:"annual_savings"`
}

// EcommercePayload is the end-to-end walkthrough: a decision, the
// canary rollout it would trigger, and the resulting cost delta.
type EcommercePayload struct {
	Requirements   EcommerceRequirements `json:"requirements"`
	Decision       decision.Result       `json:"decision"`
	Canary         canary.Outcome        `json:"canary"`
	CostComparison CostComparison        `json:"cost_comparison"`
}

// Ecommerce runs the customer-support walkthrough (100k requests/day,
// 85% accuracy, sub-second latency, $3M all-in budget) against the
// built-in catalog. Opus is the incumbent; the decision's pick becomes
// the canary candidate, so the payload stays internally consistent.
func Ecommerce(estimator *costing.Estimator, matrix *decision.Matrix, sim *canary.Simulator) (EcommercePayload, error) {
	models := catalog.Builtins()
	byKey := make(map[string]catalog.Model, len(models))
	for _, m := range models {
		byKey[m.Key] = m
	}

	dec, err := matrix.Decide(models, decision.Requirements{
		AccuracyRequirement:  0.85,
		LatencyRequirementMS: 1000,
		BudgetPerMonth:       3000000,
		UseCase:              "customer_support",
		RequestsPerDay:       100000,
	})
	if err != nil {
		return EcommercePayload{}, err
	}

	candidateKey := dec.RecommendedModel
	if candidateKey == "" || candidateKey == "claude_opus" {
		candidateKey = "claude_sonnet"
	}

	rollout, err := sim.Run(byKey["claude_opus"], byKey[candidateKey], 100)
	if err != nil {
		return EcommercePayload{}, err
	}

	workload := costing.Workload{RequestsPerDay: 100000, AvgInputTokens: 500, AvgOutputTokens: 300}
	oldCost, err := estimator.Estimate(byKey["claude_opus"], workload)
	if err != nil {
		return EcommercePayload{}, err
	}
	newCost, err := estimator.Estimate(byKey[candidateKey], workload)
	if err != nil {
		return EcommercePayload{}, err
	}

	savings := metrics.Round2(oldCost.TotalMonthly - newCost.TotalMonthly)
	return EcommercePayload{
		Requirements: EcommerceRequirements{
			RequestsPerDay: 100000,
			AccuracyNeeded: "85%+",
			Latency:        "<1s",
			Budget:         3000000,
		},
		Decision: dec,
		Canary:   rollout,
		CostComparison: CostComparison{
			OldModel:       "claude_opus",
			OldMonthly:     oldCost.TotalMonthly,
			NewModel:       candidateKey,
			NewMonthly:     newCost.TotalMonthly,
			MonthlySavings: savings,
			AnnualSavings:  metrics.Round2(savings * 12),
		},
	}, nil
}
