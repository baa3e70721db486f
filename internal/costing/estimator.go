// Package costing turns a workload profile and a model rate card into a
// monthly cost breakdown: token pricing plus the hidden costs (error
// correction, latency churn, infrastructure, operations).
package costing

import (
	"sort"

	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/metrics"
	"github.com/modelworks/workbench/internal/validate"
)

// Defaults mirroring the original cost model.
const (
	DefaultCorrectionCost = 25.0  // per corrected response
	DefaultChurnLTV       = 100.0 // customer lifetime value used for churn cost
	DaysPerMonth          = 30

	// Latency above this baseline starts costing churn.
	churnLatencyThresholdMS = 500
)

// Workload describes the request profile the estimate is computed for.
type Workload struct {
	RequestsPerDay  int `json:"requests_per_day"`
	AvgInputTokens  int `json:"avg_input_tokens"`
	AvgOutputTokens int `json:"avg_output_tokens"`
}

// Validate rejects non-positive volumes and token counts.
func (w Workload) Validate() error {
	if w.RequestsPerDay <= 0 {
		return validate.Errorf("requests_per_day", "must be positive")
	}
	if w.AvgInputTokens <= 0 {
		return validate.Errorf("avg_input_tokens", "must be positive")
	}
	if w.AvgOutputTokens <= 0 {
		return validate.Errorf("avg_output_tokens", "must be positive")
	}
	return nil
}

// Breakdown is the monthly cost estimate for one model. TotalMonthly is
// the sum of every other cost component, rounded to cents.
type Breakdown struct {
	ModelKey          string  `json:"model_key"`
	ModelName         string  `json:"model_name"`
	APICost           float64 `json:"api_cost"`
	CorrectionCost    float64 `json:"error_correction"`
	ChurnCost         float64 `json:"churn_cost"`
	Infrastructure    float64 `json:"infrastructure"`
	Operations        float64 `json:"operations"`
	TotalMonthly      float64 `json:"total_monthly"`
	CostPerRequest    float64 `json:"cost_per_request"`
	QualityScore      float64 `json:"quality_score"`
	HallucinationRate float64 `json:"hallucination_rate"`
	SpeedMS           int     `json:"speed_ms"`
}

// Estimator computes monthly cost breakdowns. The zero value is not
// usable; construct with NewEstimator.
type Estimator struct {
	correctionCost float64
	churnLTV       float64
}

// NewEstimator creates an Estimator with the default correction cost
// and churn LTV.
func NewEstimator() *Estimator {
	return &Estimator{
		correctionCost: DefaultCorrectionCost,
		churnLTV:       DefaultChurnLTV,
	}
}

// WithCorrectionCost overrides the per-response correction cost.
func (e *Estimator) WithCorrectionCost(cost float64) *Estimator {
	e.correctionCost = cost
	return e
}

// WithChurnLTV overrides the lifetime value used by the churn cost.
func (e *Estimator) WithChurnLTV(ltv float64) *Estimator {
	e.churnLTV = ltv
	return e
}

// Estimate computes the monthly breakdown for one model.
func (e *Estimator) Estimate(m catalog.Model, w Workload) (Breakdown, error) {
	if err := w.Validate(); err != nil {
		return Breakdown{}, err
	}

	monthlyRequests := float64(w.RequestsPerDay) * DaysPerMonth

	apiCost := monthlyRequests*float64(w.AvgInputTokens)/1000*m.InputCostPer1K +
		monthlyRequests*float64(w.AvgOutputTokens)/1000*m.OutputCostPer1K

	correction := monthlyRequests * m.HallucinationRate * e.correctionCost

	churn := 0.0
	if m.SpeedMS > churnLatencyThresholdMS {
		churnIncrease := float64(m.SpeedMS-churnLatencyThresholdMS) / churnLatencyThresholdMS * 0.01
		churn = monthlyRequests * e.churnLTV * churnIncrease
	}

	total := apiCost + correction + churn + m.InfraCostMonthly + m.OpsCostMonthly

	return Breakdown{
		ModelKey:          m.Key,
		ModelName:         m.Name,
		APICost:           metrics.Round2(apiCost),
		CorrectionCost:    metrics.Round2(correction),
		ChurnCost:         metrics.Round2(churn),
		Infrastructure:    metrics.Round2(m.InfraCostMonthly),
		Operations:        metrics.Round2(m.OpsCostMonthly),
		TotalMonthly:      metrics.Round2(total),
		CostPerRequest:    metrics.Round4(total / monthlyRequests),
		QualityScore:      m.QualityScore,
		HallucinationRate: m.HallucinationRate,
		SpeedMS:           m.SpeedMS,
	}, nil
}

// EstimateAll computes breakdowns for a model set, sorted ascending by
// total monthly cost. Ties prefer the higher quality score, then the
// lexically smaller key, so the order is deterministic.
func (e *Estimator) EstimateAll(models []catalog.Model, w Workload) ([]Breakdown, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	out := make([]Breakdown, 0, len(models))
	for _, m := range models {
		b, err := e.Estimate(m, w)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalMonthly != out[j].TotalMonthly {
			return out[i].TotalMonthly < out[j].TotalMonthly
		}
		if out[i].QualityScore != out[j].QualityScore {
			return out[i].QualityScore > out[j].QualityScore
		}
		return out[i].ModelKey < out[j].ModelKey
	})
	return out, nil
}
