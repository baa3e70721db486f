// Package decision resolves an explicit multi-constraint model choice:
// filter the catalog on accuracy, latency, and budget, then pick the
// survivor with the best weighted composite score.
package decision

import (
	"fmt"
	"sort"
	"strings"

	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/costing"
	"github.com/modelworks/workbench/internal/metrics"
	"github.com/modelworks/workbench/internal/validate"
)

// NoMatchRecommendation is the Recommendation value of the no-match
// result shape.
const NoMatchRecommendation = "no exact match"

// Composite score weights: accuracy is primary, then cost efficiency,
// then latency.
const (
	accuracyWeight = 0.5
	costWeight     = 0.3
	latencyWeight  = 0.2
)

// maxAlternatives bounds the options list in the no-match shape.
const maxAlternatives = 3

// Requirements are the hard constraints a recommendation must satisfy.
type Requirements struct {
	AccuracyRequirement  float64 `json:"accuracy_requirement"`
	LatencyRequirementMS int     `json:"latency_requirement_ms"`
	BudgetPerMonth       float64 `json:"budget_per_month"`
	UseCase              string  `json:"use_case"`
	RequestsPerDay       int     `json:"requests_per_day"`
}

// Validate rejects out-of-range constraint values.
func (r Requirements) Validate() error {
	if r.AccuracyRequirement < 0 || r.AccuracyRequirement > 1 {
		return validate.Errorf("accuracy_requirement", "must be in [0,1]")
	}
	if r.LatencyRequirementMS <= 0 {
		return validate.Errorf("latency_requirement_ms", "must be positive")
	}
	if r.BudgetPerMonth <= 0 {
		return validate.Errorf("budget_per_month", "must be positive")
	}
	if r.RequestsPerDay <= 0 {
		return validate.Errorf("requests_per_day", "must be positive")
	}
	return nil
}

// Alternative describes how close a rejected model came to the
// constraints in the no-match shape.
type Alternative struct {
	Model               string   `json:"model"`
	ModelName           string   `json:"model_name"`
	ViolatedConstraints []string `json:"violated_constraints"`
	ViolationMagnitude  float64  `json:"violation_magnitude"`
}

// Result is the decision outcome. A successful decision carries the
// recommendation fields; a no-match carries Recommendation set to
// NoMatchRecommendation plus the closest alternatives. Neither shape is
// an error.
type Result struct {
	Recommendation       string        `json:"recommendation"`
	RecommendedModel     string        `json:"recommended_model,omitempty"`
	RecommendedModelName string        `json:"recommended_model_name,omitempty"`
	Reasoning            string        `json:"reasoning,omitempty"`
	MonthlyCost          float64       `json:"monthly_cost,omitempty"`
	SavingsVsBudget      float64       `json:"savings_vs_budget,omitempty"`
	UseCase              string        `json:"use_case"`
	Options              []Alternative `json:"options,omitempty"`
}

// DefaultTokenProfile is the token shape assumed when estimating cost
// from a bare requests-per-day figure.
var DefaultTokenProfile = costing.Workload{
	AvgInputTokens:  500,
	AvgOutputTokens: 300,
}

// Matrix resolves decisions against a resolved model list.
type Matrix struct {
	estimator *costing.Estimator
}

// NewMatrix creates a Matrix using the given cost estimator.
func NewMatrix(estimator *costing.Estimator) *Matrix {
	return &Matrix{estimator: estimator}
}

// candidate is one surviving model with its estimated cost.
type candidate struct {
	model catalog.Model
	cost  float64
	score float64
}

// Decide filters models against the requirements and recommends the
// best survivor. With no survivors it returns the no-match shape
// listing the models that violate the fewest constraints.
func (mx *Matrix) Decide(models []catalog.Model, req Requirements) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}

	workload := DefaultTokenProfile
	workload.RequestsPerDay = req.RequestsPerDay

	var survivors []candidate
	var rejected []Alternative
	for _, m := range models {
		est, err := mx.estimator.Estimate(m, workload)
		if err != nil {
			return Result{}, err
		}
		violations, magnitude := checkConstraints(m, est.TotalMonthly, req)
		if len(violations) == 0 {
			survivors = append(survivors, candidate{model: m, cost: est.TotalMonthly})
			continue
		}
		rejected = append(rejected, Alternative{
			Model:               m.Key,
			ModelName:           m.Name,
			ViolatedConstraints: violations,
			ViolationMagnitude:  metrics.Round4(magnitude),
		})
	}

	if len(survivors) == 0 {
		sort.Slice(rejected, func(i, j int) bool {
			if len(rejected[i].ViolatedConstraints) != len(rejected[j].ViolatedConstraints) {
				return len(rejected[i].ViolatedConstraints) < len(rejected[j].ViolatedConstraints)
			}
			if rejected[i].ViolationMagnitude != rejected[j].ViolationMagnitude {
				return rejected[i].ViolationMagnitude < rejected[j].ViolationMagnitude
			}
			return rejected[i].Model < rejected[j].Model
		})
		if len(rejected) > maxAlternatives {
			rejected = rejected[:maxAlternatives]
		}
		return Result{
			Recommendation: NoMatchRecommendation,
			UseCase:        req.UseCase,
			Options:        rejected,
		}, nil
	}

	scoreCandidates(survivors, req)
	sort.Slice(survivors, func(i, j int) bool {
		if survivors[i].score != survivors[j].score {
			return survivors[i].score > survivors[j].score
		}
		return survivors[i].model.Key < survivors[j].model.Key
	})

	best := survivors[0]
	return Result{
		Recommendation:       fmt.Sprintf("%s meets all requirements", best.model.Name),
		RecommendedModel:     best.model.Key,
		RecommendedModelName: best.model.Name,
		Reasoning:            buildReasoning(best, survivors, req),
		MonthlyCost:          best.cost,
		SavingsVsBudget:      metrics.Round2(req.BudgetPerMonth - best.cost),
		UseCase:              req.UseCase,
	}, nil
}

// checkConstraints returns the violated constraint names and the sum of
// relative shortfalls, used to rank near misses.
func checkConstraints(m catalog.Model, cost float64, req Requirements) ([]string, float64) {
	var violations []string
	var magnitude float64
	if m.QualityScore < req.AccuracyRequirement {
		violations = append(violations, "accuracy")
		magnitude += (req.AccuracyRequirement - m.QualityScore) / req.AccuracyRequirement
	}
	if m.SpeedMS > req.LatencyRequirementMS {
		violations = append(violations, "latency")
		magnitude += float64(m.SpeedMS-req.LatencyRequirementMS) / float64(req.LatencyRequirementMS)
	}
	if cost > req.BudgetPerMonth {
		violations = append(violations, "budget")
		magnitude += (cost - req.BudgetPerMonth) / req.BudgetPerMonth
	}
	return violations, magnitude
}

// scoreCandidates assigns each survivor a weighted composite of min-max
// normalized accuracy (higher better), cost (lower better), and latency
// (lower better), each on a 0-10 scale.
func scoreCandidates(survivors []candidate, req Requirements) {
	accs := make([]float64, len(survivors))
	costs := make([]float64, len(survivors))
	lats := make([]float64, len(survivors))
	for i, c := range survivors {
		accs[i] = c.model.QualityScore
		costs[i] = c.cost
		lats[i] = float64(c.model.SpeedMS)
	}
	for i := range survivors {
		survivors[i].score = normalizeHigherBetter(accs[i], accs)*accuracyWeight +
			normalizeLowerBetter(costs[i], costs)*costWeight +
			normalizeLowerBetter(lats[i], lats)*latencyWeight
	}
}

// normalizeHigherBetter maps a value to 0-10 where higher raw values
// are better. When all values are equal every model receives 5.0.
func normalizeHigherBetter(value float64, all []float64) float64 {
	minVal, maxVal := metrics.MinMax(all)
	if maxVal == minVal {
		return 5.0
	}
	return (value - minVal) / (maxVal - minVal) * 10
}

// normalizeLowerBetter maps a value to 0-10 where lower raw values are
// better.
func normalizeLowerBetter(value float64, all []float64) float64 {
	minVal, maxVal := metrics.MinMax(all)
	if maxVal == minVal {
		return 5.0
	}
	return (maxVal - value) / (maxVal - minVal) * 10
}

// buildReasoning explains which constraints drove the pick.
func buildReasoning(best candidate, survivors []candidate, req Requirements) string {
	parts := []string{
		fmt.Sprintf("%.1f%% accuracy meets the %.1f%% requirement", best.model.QualityScore*100, req.AccuracyRequirement*100),
		fmt.Sprintf("%dms latency is within the %dms limit", best.model.SpeedMS, req.LatencyRequirementMS),
		fmt.Sprintf("$%.2f/month fits the $%.2f budget", best.cost, req.BudgetPerMonth),
	}
	if len(survivors) > 1 {
		parts = append(parts, fmt.Sprintf("best accuracy/cost balance of %d qualifying models", len(survivors)))
	}
	return strings.Join(parts, "; ")
}
