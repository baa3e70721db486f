package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/modelworks/workbench/internal/scenario"
)

func newEvaluateCommand() *cobra.Command {
	var model string
	var scenariosFile string
	var dataDir string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score one model against scenario tests",
		Long: `Score one model against weighted scenario tests.

Uses the built-in customer-support scenario set unless --scenarios
points to a JSON file with a replacement set.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tk, err := newToolkit(dataDir)
			if err != nil {
				return err
			}
			m, err := tk.store.Get(model)
			if err != nil {
				return err
			}

			var scenarios []scenario.Scenario
			if scenariosFile != "" {
				raw, err := os.ReadFile(scenariosFile)
				if err != nil {
					return fmt.Errorf("reading scenarios file: %w", err)
				}
				if err := json.Unmarshal(raw, &scenarios); err != nil {
					return fmt.Errorf("parsing scenarios file: %w", err)
				}
			}

			report, err := tk.evaluator.Evaluate(m, scenarios)
			if err != nil {
				return err
			}
			return printJSON(report)
		},
	}

	cmd.Flags().StringVar(&model, "model", "claude_sonnet", "Model key to evaluate")
	cmd.Flags().StringVar(&scenariosFile, "scenarios", "", "JSON file with a replacement scenario set")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the custom-model catalog file")

	return cmd
}
