// Package guide serves the static guidance content: common mistakes,
// re-evaluation triggers, and the canned example payloads shown in the
// dashboard.
package guide

// Mistake contrasts an anti-pattern with the recommended practice.
type Mistake struct {
	Title       string `json:"title"`
	AntiPattern string `json:"anti_pattern"`
	Recommended string `json:"recommended"`
}

// Mistakes returns the common model-selection mistakes list.
func Mistakes() []Mistake {
	return []Mistake{
		{
			Title:       "Choosing Based on Marketing, Not Testing",
			AntiPattern: "Opus is the 'best' model, so let's use it",
			Recommended: "Sonnet meets our requirements at 40% lower cost",
		},
		{
			Title:       "Not Measuring Hidden Costs",
			AntiPattern: "Haiku is cheapest at $0.004/token",
			Recommended: "Haiku costs $4,200 + $150k/month in error correction = $154k total",
		},
		{
			Title:       "Not Testing on Your Actual Use Cases",
			AntiPattern: "Benchmark models on public datasets only",
			Recommended: "Benchmark on YOUR customer requests",
		},
		{
			Title:       "Not Measuring Consistency",
			AntiPattern: "Run test once, see 90% accuracy, deploy",
			Recommended: "Run test 10 times and inspect min/max/average",
		},
		{
			Title:       "Not Having a Rollback Plan",
			AntiPattern: "Deploy to 100% traffic at once",
			Recommended: "Canary deployment: 5% -> 25% -> 50% -> 100%",
		},
	}
}

// ReevaluationTriggers returns the conditions that should prompt a
// fresh model evaluation.
func ReevaluationTriggers() map[string]string {
	return map[string]string{
		"trigger_1_accuracy_regression":         "Accuracy drops >5% compared to baseline",
		"trigger_2_cost_increase":               "Request volume increased, cost now exceeds budget",
		"trigger_3_new_model_released":          "Better model available at similar cost",
		"trigger_4_latency_issue":               "Users reporting slow responses",
		"trigger_5_business_requirement_change": "Need higher accuracy or faster response",
		"trigger_6_annual_review":               "Every 12 months, benchmark all models again",
	}
}

// ComparisonRow is one line of the canned comparison table.
type ComparisonRow struct {
	Model       string `json:"model"`
	Accuracy    string `json:"accuracy"`
	Speed       string `json:"speed"`
	Consistency string `json:"consistency"`
	MonthlyCost string `json:"monthly_cost"`
}

// ExampleRecommendation is the canned recommendation block.
type ExampleRecommendation struct {
	Model     string   `json:"model"`
	Reasoning []string `json:"reasoning"`
}

// ExampleOutput is the canned comparison + recommendation payload.
type ExampleOutput struct {
	Comparison     []ComparisonRow       `json:"comparison"`
	Recommendation ExampleRecommendation `json:"recommendation"`
}

// Example returns the canned comparison payload used as a reading aid.
func Example() ExampleOutput {
	return ExampleOutput{
		Comparison: []ComparisonRow{
			{
				Model:       "Claude Opus",
				Accuracy:    "95.3% (best)",
				Speed:       "820ms",
				Consistency: "98% (very reliable)",
				MonthlyCost: "$15,500",
			},
			{
				Model:       "Claude Sonnet",
				Accuracy:    "88.1%",
				Speed:       "420ms (fast)",
				Consistency: "95%",
				MonthlyCost: "$9,800 (best value)",
			},
			{
				Model:       "Claude Haiku",
				Accuracy:    "76.2% (weak on complex cases)",
				Speed:       "110ms (fastest)",
				Consistency: "82%",
				MonthlyCost: "$4,200",
			},
		},
		Recommendation: ExampleRecommendation{
			Model: "Claude Sonnet",
			Reasoning: []string{
				"88% accuracy is sufficient for your requirements",
				"420ms latency doesn't impact user experience",
				"Save $5,700/month vs Opus",
			},
		},
	}
}
