package main

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/modelworks/workbench/internal/benchmark"
	"github.com/modelworks/workbench/internal/canary"
	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/costing"
	"github.com/modelworks/workbench/internal/decision"
	"github.com/modelworks/workbench/internal/projectconfig"
	"github.com/modelworks/workbench/internal/scenario"
)

// toolkit bundles the engine components the CLI commands share.
type toolkit struct {
	project   *projectconfig.ProjectConfig
	store     *catalog.Store
	estimator *costing.Estimator
	evaluator *scenario.Evaluator
	engine    *benchmark.Engine
	matrix    *decision.Matrix
	simulator *canary.Simulator
}

// newToolkit loads project configuration from the working directory
// and wires the engine components. dataDir overrides the configured
// catalog location when non-empty.
func newToolkit(dataDir string) (*toolkit, error) {
	project, err := projectconfig.Load(".")
	if err != nil {
		return nil, err
	}
	if dataDir == "" {
		dataDir = project.Server.DataDir
	}

	estimator := costing.NewEstimator().
		WithCorrectionCost(project.Costs.CorrectionCostPerError).
		WithChurnLTV(project.Costs.ChurnLTV)
	evaluator := scenario.NewEvaluator()

	return &toolkit{
		project:   project,
		store:     catalog.NewStore(filepath.Join(dataDir, "user_models.json")),
		estimator: estimator,
		evaluator: evaluator,
		engine:    benchmark.NewEngine(evaluator, estimator),
		matrix:    decision.NewMatrix(estimator),
		simulator: canary.NewSimulator(canary.Gates{
			ErrorRateCeiling:  project.Canary.ErrorRateCeiling,
			LatencyHeadroomMS: project.Canary.LatencyHeadroomMS,
			AccuracyTolerance: project.Canary.AccuracyTolerance,
			AccuracyFloorCap:  project.Canary.AccuracyFloorCap,
		}),
	}, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
