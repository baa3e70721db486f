package main

import (
	"github.com/spf13/cobra"

	"github.com/modelworks/workbench/internal/costing"
)

func newCostCommand() *cobra.Command {
	var models []string
	var requests int
	var inputTokens int
	var outputTokens int
	var dataDir string

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Estimate monthly cost per model for a workload",
		Long: `Estimate the total monthly cost per model for a workload.

The breakdown covers API token pricing plus the hidden costs: error
correction, latency churn, infrastructure, and operations. Results are
sorted ascending by total monthly cost.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tk, err := newToolkit(dataDir)
			if err != nil {
				return err
			}
			set, err := tk.store.Pick(models)
			if err != nil {
				return err
			}
			workload := costing.Workload{
				RequestsPerDay:  requests,
				AvgInputTokens:  inputTokens,
				AvgOutputTokens: outputTokens,
			}
			results, err := tk.estimator.EstimateAll(set, workload)
			if err != nil {
				return err
			}
			return printJSON(results)
		},
	}

	cmd.Flags().StringSliceVar(&models, "models", nil, "Model keys to estimate (default: selected catalog subset)")
	cmd.Flags().IntVar(&requests, "requests", 10000, "Requests per day")
	cmd.Flags().IntVar(&inputTokens, "input-tokens", 500, "Average input tokens per request")
	cmd.Flags().IntVar(&outputTokens, "output-tokens", 300, "Average output tokens per request")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the custom-model catalog file")

	return cmd
}
