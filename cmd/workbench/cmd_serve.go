package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/modelworks/workbench/internal/projectconfig"
	"github.com/modelworks/workbench/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var port int
	var dataDir string
	var resultsDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the workbench HTTP server",
		Long: `Start the workbench HTTP server.

Serves the dashboard page and the JSON API: catalog listing, cost
estimation, scenario evaluation, benchmarking, decision resolution,
and canary simulation. Canary outcomes are recorded under the results
directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := projectconfig.Load(".")
			if err != nil {
				return err
			}

			srv, err := webserver.New(webserver.Config{
				Port:       port,
				DataDir:    dataDir,
				ResultsDir: resultsDir,
				Project:    project,
				Logger:     slog.Default(),
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "Port to listen on (default from .workbench.yaml)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "Directory holding the custom-model catalog file")
	cmd.Flags().StringVar(&resultsDir, "results-dir", "", "Directory for recorded canary outcomes")

	return cmd
}
