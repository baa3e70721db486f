// Package projectconfig provides the ProjectConfig struct and loader
// for .workbench.yaml project-level configuration files.
package projectconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project config file searched for.
const ConfigFileName = ".workbench.yaml"

// Default values for project configuration. These are the single source
// of truth — New() references them and no other code should duplicate
// them.
const (
	DefaultServerPort = 8000
	DefaultDataDir    = "data"
	DefaultResultsDir = "results"

	DefaultRequestsPerDay = 10000
	DefaultInputTokens    = 500
	DefaultOutputTokens   = 300
	DefaultCorrectionCost = 25.0
	DefaultChurnLTV       = 100.0

	DefaultErrorRateCeiling  = 0.05
	DefaultLatencyHeadroomMS = 500
	DefaultAccuracyTolerance = 0.05
	DefaultAccuracyFloorCap  = 0.85
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port       int    `yaml:"port,omitempty"`
	DataDir    string `yaml:"data_dir,omitempty"`
	ResultsDir string `yaml:"results_dir,omitempty"`
}

// WorkloadConfig holds the default workload profile applied when a
// request omits volume or token fields.
type WorkloadConfig struct {
	RequestsPerDay  int `yaml:"requests_per_day,omitempty"`
	AvgInputTokens  int `yaml:"avg_input_tokens,omitempty"`
	AvgOutputTokens int `yaml:"avg_output_tokens,omitempty"`
}

// CostsConfig holds the hidden-cost parameters.
type CostsConfig struct {
	CorrectionCostPerError float64 `yaml:"correction_cost_per_error,omitempty"`
	ChurnLTV               float64 `yaml:"churn_ltv,omitempty"`
}

// CanaryConfig holds the quality-gate thresholds.
type CanaryConfig struct {
	ErrorRateCeiling  float64 `yaml:"error_rate_ceiling,omitempty"`
	LatencyHeadroomMS float64 `yaml:"latency_headroom_ms,omitempty"`
	AccuracyTolerance float64 `yaml:"accuracy_tolerance,omitempty"`
	AccuracyFloorCap  float64 `yaml:"accuracy_floor_cap,omitempty"`
}

// ProjectConfig is the top-level configuration loaded from
// .workbench.yaml.
type ProjectConfig struct {
	Server   ServerConfig   `yaml:"server,omitempty"`
	Workload WorkloadConfig `yaml:"workload,omitempty"`
	Costs    CostsConfig    `yaml:"costs,omitempty"`
	Canary   CanaryConfig   `yaml:"canary,omitempty"`
}

// New returns a ProjectConfig with all hard-coded defaults populated.
func New() *ProjectConfig {
	return &ProjectConfig{
		Server: ServerConfig{
			Port:       DefaultServerPort,
			DataDir:    DefaultDataDir,
			ResultsDir: DefaultResultsDir,
		},
		Workload: WorkloadConfig{
			RequestsPerDay:  DefaultRequestsPerDay,
			AvgInputTokens:  DefaultInputTokens,
			AvgOutputTokens: DefaultOutputTokens,
		},
		Costs: CostsConfig{
			CorrectionCostPerError: DefaultCorrectionCost,
			ChurnLTV:               DefaultChurnLTV,
		},
		Canary: CanaryConfig{
			ErrorRateCeiling:  DefaultErrorRateCeiling,
			LatencyHeadroomMS: DefaultLatencyHeadroomMS,
			AccuracyTolerance: DefaultAccuracyTolerance,
			AccuracyFloorCap:  DefaultAccuracyFloorCap,
		},
	}
}

// Load reads .workbench.yaml from startDir, unmarshals it, and fills
// in missing fields with defaults. If no config file exists, returns
// defaults with a nil error. Real I/O errors are returned to the
// caller.
func Load(startDir string) (*ProjectConfig, error) {
	cfg := New()

	data, err := os.ReadFile(filepath.Join(startDir, ConfigFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("loading %s: %w", ConfigFileName, err)
	}

	var fileCfg ProjectConfig
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ConfigFileName, err)
	}

	mergeConfig(cfg, &fileCfg)
	return cfg, nil
}

// mergeConfig overlays non-zero file values onto the defaults.
func mergeConfig(dst, src *ProjectConfig) {
	if src.Server.Port != 0 {
		dst.Server.Port = src.Server.Port
	}
	if src.Server.DataDir != "" {
		dst.Server.DataDir = src.Server.DataDir
	}
	if src.Server.ResultsDir != "" {
		dst.Server.ResultsDir = src.Server.ResultsDir
	}
	if src.Workload.RequestsPerDay != 0 {
		dst.Workload.RequestsPerDay = src.Workload.RequestsPerDay
	}
	if src.Workload.AvgInputTokens != 0 {
		dst.Workload.AvgInputTokens = src.Workload.AvgInputTokens
	}
	if src.Workload.AvgOutputTokens != 0 {
		dst.Workload.AvgOutputTokens = src.Workload.AvgOutputTokens
	}
	if src.Costs.CorrectionCostPerError != 0 {
		dst.Costs.CorrectionCostPerError = src.Costs.CorrectionCostPerError
	}
	if src.Costs.ChurnLTV != 0 {
		dst.Costs.ChurnLTV = src.Costs.ChurnLTV
	}
	if src.Canary.ErrorRateCeiling != 0 {
		dst.Canary.ErrorRateCeiling = src.Canary.ErrorRateCeiling
	}
	if src.Canary.LatencyHeadroomMS != 0 {
		dst.Canary.LatencyHeadroomMS = src.Canary.LatencyHeadroomMS
	}
	if src.Canary.AccuracyTolerance != 0 {
		dst.Canary.AccuracyTolerance = src.Canary.AccuracyTolerance
	}
	if src.Canary.AccuracyFloorCap != 0 {
		dst.Canary.AccuracyFloorCap = src.Canary.AccuracyFloorCap
	}
}
