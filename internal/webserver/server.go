// Package webserver provides the HTTP server that serves the embedded
// dashboard page and exposes the REST API endpoints.
package webserver

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/modelworks/workbench/internal/benchmark"
	"github.com/modelworks/workbench/internal/canary"
	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/costing"
	"github.com/modelworks/workbench/internal/decision"
	"github.com/modelworks/workbench/internal/history"
	"github.com/modelworks/workbench/internal/projectconfig"
	"github.com/modelworks/workbench/internal/scenario"
	"github.com/modelworks/workbench/internal/webapi"
)

// userModelsFile is the catalog persistence file under the data dir.
const userModelsFile = "user_models.json"

// Config holds the HTTP server configuration.
type Config struct {
	Port       int
	DataDir    string
	ResultsDir string
	Project    *projectconfig.ProjectConfig
	Logger     *slog.Logger
}

// Server wraps the HTTP server with configuration.
type Server struct {
	cfg    Config
	srv    *http.Server
	logger *slog.Logger
}

// New creates a new HTTP server, wiring the catalog store and every
// engine component from the project configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Project == nil {
		cfg.Project = projectconfig.New()
	}
	if cfg.Port == 0 {
		cfg.Port = cfg.Project.Server.Port
	}
	if cfg.DataDir == "" {
		cfg.DataDir = cfg.Project.Server.DataDir
	}
	if cfg.ResultsDir == "" {
		cfg.ResultsDir = cfg.Project.Server.ResultsDir
	}

	mux := http.NewServeMux()
	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
		srv: &http.Server{
			Addr:              fmt.Sprintf("127.0.0.1:%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if err := registerRoutes(mux, cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// BuildHandlers assembles the API handlers from project configuration.
// Exposed for the CLI commands, which reuse the same wiring without an
// HTTP server.
func BuildHandlers(cfg Config) *webapi.Handlers {
	project := cfg.Project
	if project == nil {
		project = projectconfig.New()
	}

	estimator := costing.NewEstimator().
		WithCorrectionCost(project.Costs.CorrectionCostPerError).
		WithChurnLTV(project.Costs.ChurnLTV)
	evaluator := scenario.NewEvaluator()

	return webapi.NewHandlers(webapi.HandlersConfig{
		Store:     catalog.NewStore(filepath.Join(cfg.DataDir, userModelsFile)),
		Estimator: estimator,
		Evaluator: evaluator,
		Engine:    benchmark.NewEngine(evaluator, estimator),
		Matrix:    decision.NewMatrix(estimator),
		Simulator: canary.NewSimulator(canary.Gates{
			ErrorRateCeiling:  project.Canary.ErrorRateCeiling,
			LatencyHeadroomMS: project.Canary.LatencyHeadroomMS,
			AccuracyTolerance: project.Canary.AccuracyTolerance,
			AccuracyFloorCap:  project.Canary.AccuracyFloorCap,
		}),
		History: history.NewFileStore(cfg.ResultsDir),
		DefaultWorkload: costing.Workload{
			RequestsPerDay:  project.Workload.RequestsPerDay,
			AvgInputTokens:  project.Workload.AvgInputTokens,
			AvgOutputTokens: project.Workload.AvgOutputTokens,
		},
		Logger: cfg.Logger,
	})
}

// ListenAndServe starts the HTTP server and blocks until the context
// is cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context) error {
	url := fmt.Sprintf("http://localhost:%d", s.cfg.Port)
	s.logger.Info("HTTP server starting", "address", s.srv.Addr, "url", url)
	fmt.Printf("workbench dashboard: %s\n", url)

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("HTTP server shutdown error", "error", err)
		}
	}()

	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("HTTP server error: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler (useful for testing).
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}
