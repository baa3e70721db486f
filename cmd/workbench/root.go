package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workbench",
		Short: "Workbench - decision-support toolkit for choosing LLM backends",
		Long: `Workbench is a decision-support toolkit for choosing among
language-model backends.

It estimates total monthly cost for a workload, scores models against
weighted scenario tests, benchmarks model sets into stable rankings,
resolves multi-constraint decisions, and simulates staged canary
rollouts with quality gates and automatic rollback.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	// Add subcommands
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newCostCommand())
	cmd.AddCommand(newEvaluateCommand())
	cmd.AddCommand(newBenchmarkCommand())
	cmd.AddCommand(newDecideCommand())
	cmd.AddCommand(newCanaryCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
