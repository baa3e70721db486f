package main

import (
	"github.com/spf13/cobra"
)

func newBenchmarkCommand() *cobra.Command {
	var models []string
	var iterations int
	var dataDir string

	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Benchmark a model set into accuracy, speed, and cost rankings",
		Long: `Run repeated scenario evaluations per model and produce three
independent rankings: accuracy (descending), speed (ascending), and
cost (ascending). Repeated runs with the same inputs produce identical
rankings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tk, err := newToolkit(dataDir)
			if err != nil {
				return err
			}
			set, err := tk.store.Pick(models)
			if err != nil {
				return err
			}
			comparison, err := tk.engine.Run(cmd.Context(), set, nil, iterations)
			if err != nil {
				return err
			}
			return printJSON(comparison)
		},
	}

	cmd.Flags().StringSliceVar(&models, "models", nil, "Model keys to benchmark (default: selected catalog subset)")
	cmd.Flags().IntVar(&iterations, "iterations", 3, "Evaluation iterations per model")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the custom-model catalog file")

	return cmd
}
