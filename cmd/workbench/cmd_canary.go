package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/modelworks/workbench/internal/history"
)

func newCanaryCommand() *cobra.Command {
	var from string
	var to string
	var finalTraffic int
	var dataDir string
	var resultsDir string

	cmd := &cobra.Command{
		Use:   "canary",
		Short: "Simulate a staged rollout between two models",
		Long: `Simulate a staged traffic shift from an incumbent model to a
candidate, gating each phase on simulated accuracy, error rate, and
p99 latency. The first gate breach rolls the rollout back.

The outcome is recorded under the results directory when one is
configured.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tk, err := newToolkit(dataDir)
			if err != nil {
				return err
			}
			incumbent, err := tk.store.Get(from)
			if err != nil {
				return err
			}
			candidate, err := tk.store.Get(to)
			if err != nil {
				return err
			}

			outcome, err := tk.simulator.Run(incumbent, candidate, finalTraffic)
			if err != nil {
				return err
			}

			if resultsDir == "" {
				resultsDir = tk.project.Server.ResultsDir
			}
			if resultsDir != "" {
				if _, err := history.NewFileStore(resultsDir).Record(outcome); err != nil {
					slog.Warn("failed to record canary outcome", "error", err)
				}
			}
			return printJSON(outcome)
		},
	}

	cmd.Flags().StringVar(&from, "from", "claude_opus", "Incumbent model key")
	cmd.Flags().StringVar(&to, "to", "claude_sonnet", "Candidate model key")
	cmd.Flags().IntVar(&finalTraffic, "final", 100, "Final traffic percent in (0,100]")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the custom-model catalog file")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Directory for recorded canary outcomes")

	return cmd
}
