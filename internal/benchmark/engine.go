// Package benchmark runs repeated scenario evaluations per model and
// produces stable accuracy, speed, and cost rankings.
package benchmark

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/costing"
	"github.com/modelworks/workbench/internal/metrics"
	"github.com/modelworks/workbench/internal/scenario"
)

// DefaultWorkers bounds the per-model fan-out.
const DefaultWorkers = 4

// NominalWorkload is the workload used for the cost ranking. Cost is
// deterministic given catalog rates, so it is computed once per model
// rather than iterated.
var NominalWorkload = costing.Workload{
	RequestsPerDay:  10000,
	AvgInputTokens:  500,
	AvgOutputTokens: 300,
}

// ModelMetrics aggregates every iteration and scenario for one model.
type ModelMetrics struct {
	Name           string  `json:"name"`
	AvgAccuracy    float64 `json:"avg_accuracy"`
	MinAccuracy    float64 `json:"min_accuracy"`
	MaxAccuracy    float64 `json:"max_accuracy"`
	AvgLatencyMS   float64 `json:"avg_latency_ms"`
	P99LatencyMS   float64 `json:"p99_latency_ms"`
	Consistency    float64 `json:"consistency"`
	TokenCostPer1K float64 `json:"estimated_token_cost_per_1k"`
	MonthlyCost    float64 `json:"monthly_cost"`
}

// RankEntry pairs a model key with the ranked metric value.
type RankEntry struct {
	Model string  `json:"model"`
	Value float64 `json:"value"`
}

// Rankings holds the three independent orderings: accuracy descending,
// speed ascending, cost ascending. Ties break by model key.
type Rankings struct {
	ByAccuracy []RankEntry `json:"by_accuracy"`
	BySpeed    []RankEntry `json:"by_speed"`
	ByCost     []RankEntry `json:"by_cost"`
}

// Comparison is the full benchmark result.
type Comparison struct {
	Models   map[string]ModelMetrics `json:"models"`
	Rankings Rankings                `json:"rankings"`
}

// Engine drives repeated evaluations. Stateless between calls.
type Engine struct {
	evaluator *scenario.Evaluator
	estimator *costing.Estimator
	workers   int
}

// NewEngine creates an Engine around the given evaluator and estimator.
func NewEngine(evaluator *scenario.Evaluator, estimator *costing.Estimator) *Engine {
	return &Engine{
		evaluator: evaluator,
		estimator: estimator,
		workers:   DefaultWorkers,
	}
}

// WithWorkers overrides the fan-out bound.
func (e *Engine) WithWorkers(n int) *Engine {
	if n > 0 {
		e.workers = n
	}
	return e
}

// Run benchmarks the model set over the given scenarios. Iterations
// below 1 are clamped to 1. An empty model set returns an empty result
// rather than failing. Models run concurrently, but each model's slot
// in the result is index-addressed, so output is deterministic.
func (e *Engine) Run(ctx context.Context, models []catalog.Model, scenarios []scenario.Scenario, iterations int) (Comparison, error) {
	if iterations < 1 {
		iterations = 1
	}
	scenarios, err := scenario.Normalize(scenarios)
	if err != nil {
		return Comparison{}, err
	}

	out := Comparison{
		Models: make(map[string]ModelMetrics, len(models)),
		Rankings: Rankings{
			ByAccuracy: []RankEntry{},
			BySpeed:    []RankEntry{},
			ByCost:     []RankEntry{},
		},
	}
	if len(models) == 0 {
		return out, nil
	}

	perModel := make([]ModelMetrics, len(models))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, m := range models {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mm, err := e.benchmarkModel(m, scenarios, iterations)
			if err != nil {
				return err
			}
			perModel[i] = mm
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Comparison{}, err
	}

	for i, m := range models {
		out.Models[m.Key] = perModel[i]
		out.Rankings.ByAccuracy = append(out.Rankings.ByAccuracy, RankEntry{Model: m.Key, Value: perModel[i].AvgAccuracy})
		out.Rankings.BySpeed = append(out.Rankings.BySpeed, RankEntry{Model: m.Key, Value: perModel[i].P99LatencyMS})
		out.Rankings.ByCost = append(out.Rankings.ByCost, RankEntry{Model: m.Key, Value: perModel[i].MonthlyCost})
	}
	sortRanking(out.Rankings.ByAccuracy, true)
	sortRanking(out.Rankings.BySpeed, false)
	sortRanking(out.Rankings.ByCost, false)
	return out, nil
}

func (e *Engine) benchmarkModel(m catalog.Model, scenarios []scenario.Scenario, iterations int) (ModelMetrics, error) {
	var accuracies, latencies []float64
	for trial := 0; trial < iterations; trial++ {
		report, err := e.evaluator.EvaluateTrial(m, scenarios, trial)
		if err != nil {
			return ModelMetrics{}, err
		}
		for _, r := range report.TestResults {
			accuracies = append(accuracies, r.Accuracy)
			latencies = append(latencies, r.LatencyMS)
		}
	}

	cost, err := e.estimator.Estimate(m, NominalWorkload)
	if err != nil {
		return ModelMetrics{}, err
	}

	minAcc, maxAcc := metrics.MinMax(accuracies)
	return ModelMetrics{
		Name:           m.Name,
		AvgAccuracy:    metrics.Round4(metrics.Mean(accuracies)),
		MinAccuracy:    minAcc,
		MaxAccuracy:    maxAcc,
		AvgLatencyMS:   metrics.Round2(metrics.Mean(latencies)),
		P99LatencyMS:   metrics.Round2(metrics.Percentile(latencies, 0.99)),
		Consistency:    metrics.Round4(1 - (maxAcc - minAcc)),
		TokenCostPer1K: metrics.Round4(m.InputCostPer1K + m.OutputCostPer1K),
		MonthlyCost:    cost.TotalMonthly,
	}, nil
}

// sortRanking orders entries by value (descending when desc), breaking
// ties by model key for determinism.
func sortRanking(entries []RankEntry, desc bool) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			if desc {
				return entries[i].Value > entries[j].Value
			}
			return entries[i].Value < entries[j].Value
		}
		return entries[i].Model < entries[j].Model
	})
}
