package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modelworks/workbench/internal/decision"
)

func newDecideCommand() *cobra.Command {
	var accuracy float64
	var latency int
	var budget float64
	var useCase string
	var requests int
	var dataDir string

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Recommend a model for explicit constraints",
		Long: `Filter the catalog on accuracy, latency, and budget constraints,
then recommend the best surviving model.

Exits non-zero when no model satisfies every constraint; the printed
result then lists the closest alternatives.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tk, err := newToolkit(dataDir)
			if err != nil {
				return err
			}
			models, _, err := tk.store.Resolve()
			if err != nil {
				return err
			}
			result, err := tk.matrix.Decide(models, decision.Requirements{
				AccuracyRequirement:  accuracy,
				LatencyRequirementMS: latency,
				BudgetPerMonth:       budget,
				UseCase:              useCase,
				RequestsPerDay:       requests,
			})
			if err != nil {
				return err
			}
			if err := printJSON(result); err != nil {
				return err
			}
			if result.Recommendation == decision.NoMatchRecommendation {
				return &NoMatchError{Message: fmt.Sprintf("no model meets all constraints for %q", useCase)}
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&accuracy, "accuracy", 0.85, "Minimum baseline accuracy in [0,1]")
	cmd.Flags().IntVar(&latency, "latency", 1000, "Maximum baseline latency in milliseconds")
	cmd.Flags().Float64Var(&budget, "budget", 10000, "Monthly budget ceiling in dollars")
	cmd.Flags().StringVar(&useCase, "use-case", "customer_support", "Use case echoed into the reasoning")
	cmd.Flags().IntVar(&requests, "requests", 100000, "Requests per day for cost estimation")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the custom-model catalog file")

	return cmd
}
