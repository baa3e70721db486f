// Package webapi exposes the engine components over a JSON HTTP API.
package webapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/modelworks/workbench/internal/benchmark"
	"github.com/modelworks/workbench/internal/canary"
	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/costing"
	"github.com/modelworks/workbench/internal/decision"
	"github.com/modelworks/workbench/internal/guide"
	"github.com/modelworks/workbench/internal/history"
	"github.com/modelworks/workbench/internal/scenario"
	"github.com/modelworks/workbench/internal/validate"
	"github.com/modelworks/workbench/internal/validation"
)

// Version is set at build time or defaults to dev.
var Version = "0.3.0"

// Request-level defaults applied when fields are omitted.
const (
	defaultIterations      = 3
	defaultDecisionUseCase = "customer_support"
	defaultFinalTraffic    = 100
)

var defaultDecision = DecisionRequest{
	AccuracyRequirement:  0.85,
	LatencyRequirementMS: 1000,
	BudgetPerMonth:       10000,
	RequestsPerDay:       100000,
}

// Handlers holds the HTTP handler methods for the web API. Every
// request resolves its own catalog snapshot; handlers keep no mutable
// state of their own.
type Handlers struct {
	store           *catalog.Store
	estimator       *costing.Estimator
	evaluator       *scenario.Evaluator
	engine          *benchmark.Engine
	matrix          *decision.Matrix
	simulator       *canary.Simulator
	history         *history.FileStore
	defaultWorkload costing.Workload
	logger          *slog.Logger
}

// HandlersConfig wires the collaborators into Handlers.
type HandlersConfig struct {
	Store           *catalog.Store
	Estimator       *costing.Estimator
	Evaluator       *scenario.Evaluator
	Engine          *benchmark.Engine
	Matrix          *decision.Matrix
	Simulator       *canary.Simulator
	History         *history.FileStore
	DefaultWorkload costing.Workload
	Logger          *slog.Logger
}

// NewHandlers creates Handlers from the given collaborators.
func NewHandlers(cfg HandlersConfig) *Handlers {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Handlers{
		store:           cfg.Store,
		estimator:       cfg.Estimator,
		evaluator:       cfg.Evaluator,
		engine:          cfg.Engine,
		matrix:          cfg.Matrix,
		simulator:       cfg.Simulator,
		history:         cfg.History,
		defaultWorkload: cfg.DefaultWorkload,
		logger:          cfg.Logger,
	}
}

// HandleHealth returns a simple health check response.
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// HandleModels returns the merged catalog and the selected subset.
func (h *Handlers) HandleModels(w http.ResponseWriter, _ *http.Request) {
	models, selected, err := h.store.Resolve()
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Models: models, SelectedModels: selected})
}

// HandleScenarios returns the default scenario set.
func (h *Handlers) HandleScenarios(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, scenario.DefaultSet())
}

// HandleMistakes returns the common-mistakes guide.
func (h *Handlers) HandleMistakes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]guide.Mistake{"mistakes": guide.Mistakes()})
}

// HandleReevaluationTriggers returns the re-evaluation checklist.
func (h *Handlers) HandleReevaluationTriggers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, guide.ReevaluationTriggers())
}

// HandleExampleOutput returns the canned comparison payload.
func (h *Handlers) HandleExampleOutput(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, guide.Example())
}

// HandleEcommerceExample runs the end-to-end walkthrough against the
// built-in catalog.
func (h *Handlers) HandleEcommerceExample(w http.ResponseWriter, _ *http.Request) {
	payload, err := guide.Ecommerce(h.estimator, h.matrix, h.simulator)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

// HandleHistory lists recorded canary outcomes.
func (h *Handlers) HandleHistory(w http.ResponseWriter, _ *http.Request) {
	entries, err := h.history.List()
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, HistoryResponse{Outcomes: entries})
}

// HandleCost estimates monthly costs over the requested model set,
// sorted ascending by total.
func (h *Handlers) HandleCost(w http.ResponseWriter, r *http.Request) {
	var req CostRequest
	if !h.decode(w, r, &req) {
		return
	}
	models, err := h.store.Pick(req.Models)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	workload := h.workloadFor(req.RequestsPerDay, req.AvgInputTokens, req.AvgOutputTokens)
	results, err := h.estimator.EstimateAll(models, workload)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CostResponse{Results: results})
}

// HandleSelect runs the scenario evaluator for one model.
func (h *Handlers) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if !h.decode(w, r, &req) {
		return
	}

	key := req.Model
	if key == "" {
		_, selected, err := h.store.Resolve()
		if err != nil {
			h.writeEngineError(w, err)
			return
		}
		key = selected[0]
	}
	model, err := h.store.Get(key)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	scenarios, ok := h.decodeScenarios(w, req.Scenarios)
	if !ok {
		return
	}
	report, err := h.evaluator.Evaluate(model, scenarios)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// HandleBenchmark runs the benchmark engine over the requested models.
func (h *Handlers) HandleBenchmark(w http.ResponseWriter, r *http.Request) {
	var req BenchmarkRequest
	if !h.decode(w, r, &req) {
		return
	}
	models, err := h.store.Pick(req.Models)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	scenarios, ok := h.decodeScenarios(w, req.TestCases)
	if !ok {
		return
	}
	iterations := req.Iterations
	if iterations == 0 {
		iterations = defaultIterations
	}
	comparison, err := h.engine.Run(r.Context(), models, scenarios, iterations)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

// HandleDecision resolves the decision matrix.
func (h *Handlers) HandleDecision(w http.ResponseWriter, r *http.Request) {
	req := defaultDecision
	req.UseCase = defaultDecisionUseCase
	if !h.decode(w, r, &req) {
		return
	}
	models, _, err := h.store.Resolve()
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	result, err := h.matrix.Decide(models, decision.Requirements{
		AccuracyRequirement:  req.AccuracyRequirement,
		LatencyRequirementMS: req.LatencyRequirementMS,
		BudgetPerMonth:       req.BudgetPerMonth,
		UseCase:              req.UseCase,
		RequestsPerDay:       req.RequestsPerDay,
	})
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleCanary simulates a staged rollout and records the outcome.
func (h *Handlers) HandleCanary(w http.ResponseWriter, r *http.Request) {
	var req CanaryRequest
	if !h.decode(w, r, &req) {
		return
	}

	_, selected, err := h.store.Resolve()
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	if req.CurrentModel == "" {
		req.CurrentModel = selected[0]
	}
	if req.NewModel == "" {
		if len(selected) > 1 {
			req.NewModel = selected[1]
		} else {
			req.NewModel = req.CurrentModel
		}
	}
	incumbent, err := h.store.Get(req.CurrentModel)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	candidate, err := h.store.Get(req.NewModel)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	if req.FinalTrafficPercent == 0 {
		req.FinalTrafficPercent = defaultFinalTraffic
	}

	outcome, err := h.simulator.Run(incumbent, candidate, req.FinalTrafficPercent)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	if h.history != nil {
		if _, err := h.history.Record(outcome); err != nil {
			h.logger.Warn("failed to record canary outcome", "error", err)
		}
	}
	writeJSON(w, http.StatusOK, outcome)
}

// HandleSelectModels persists the selected-model subset.
func (h *Handlers) HandleSelectModels(w http.ResponseWriter, r *http.Request) {
	var req SelectModelsRequest
	if !h.decode(w, r, &req) {
		return
	}
	selected, err := h.store.SetSelected(req.SelectedModels)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SelectModelsResponse{SelectedModels: selected})
}

// HandleAddCustomModel validates and persists a custom model, then
// returns the refreshed catalog.
func (h *Handlers) HandleAddCustomModel(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if !h.decode(w, r, &payload) {
		return
	}
	if errs := validation.ValidateCustomModel(payload); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid custom model",
			Code:    http.StatusBadRequest,
			Details: errs,
		})
		return
	}
	if _, err := h.store.AddCustom(payload); err != nil {
		h.writeEngineError(w, err)
		return
	}
	models, selected, err := h.store.Resolve()
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ModelsResponse{Models: models, SelectedModels: selected})
}

// RegisterRoutes registers all web API routes on the given mux.
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	mux.HandleFunc("GET /api/health", h.HandleHealth)
	mux.HandleFunc("GET /api/models", h.HandleModels)
	mux.HandleFunc("GET /api/scenarios", h.HandleScenarios)
	mux.HandleFunc("GET /api/mistakes", h.HandleMistakes)
	mux.HandleFunc("GET /api/reevaluation-triggers", h.HandleReevaluationTriggers)
	mux.HandleFunc("GET /api/example-output", h.HandleExampleOutput)
	mux.HandleFunc("GET /api/ecommerce-example", h.HandleEcommerceExample)
	mux.HandleFunc("GET /api/history", h.HandleHistory)
	mux.HandleFunc("POST /api/cost", h.HandleCost)
	mux.HandleFunc("POST /api/select", h.HandleSelect)
	mux.HandleFunc("POST /api/benchmark", h.HandleBenchmark)
	mux.HandleFunc("POST /api/decision", h.HandleDecision)
	mux.HandleFunc("POST /api/canary", h.HandleCanary)
	mux.HandleFunc("POST /api/models/select", h.HandleSelectModels)
	mux.HandleFunc("POST /api/models/custom", h.HandleAddCustomModel)
}

// CORSMiddleware wraps a handler with CORS headers. If allowedOrigins
// is empty, no CORS header is set (same-origin only). Otherwise, the
// request Origin is checked against the allowed list.
func CORSMiddleware(next http.Handler, allowedOrigins ...string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if len(allowedOrigins) > 0 && origin != "" && allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// workloadFor fills omitted workload fields from the configured
// defaults.
func (h *Handlers) workloadFor(requests, input, output int) costing.Workload {
	w := h.defaultWorkload
	if requests != 0 {
		w.RequestsPerDay = requests
	}
	if input != 0 {
		w.AvgInputTokens = input
	}
	if output != 0 {
		w.AvgOutputTokens = output
	}
	return w
}

// decodeScenarios schema-validates and decodes a raw scenario list.
// Missing or null input yields nil, which downstream falls back to the
// default set. Reports false after writing the error response.
func (h *Handlers) decodeScenarios(w http.ResponseWriter, raw json.RawMessage) ([]scenario.Scenario, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, true
	}
	if errs := validation.ValidateScenarioSetBytes(raw); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid scenarios",
			Code:    http.StatusBadRequest,
			Details: errs,
		})
		return nil, false
	}
	var scenarios []scenario.Scenario
	if err := json.Unmarshal(raw, &scenarios); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid scenarios: %v", err))
		return nil, false
	}
	return scenarios, true
}

// decode unmarshals the request body into v, reporting false after
// writing a 400 on malformed JSON. An empty body decodes to the zero
// value.
func (h *Handlers) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// writeEngineError maps component errors onto the error taxonomy:
// validation failures are 400s, unknown models are 404s, anything else
// is an internal error.
func (h *Handlers) writeEngineError(w http.ResponseWriter, err error) {
	var vErr *validate.Error
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrModelNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, ErrorResponse{Error: msg, Code: code})
}
