// Package canary simulates a staged traffic shift from an incumbent
// model to a candidate, gating each phase on simulated quality metrics
// and rolling back on the first breach.
package canary

import (
	"fmt"

	"github.com/modelworks/workbench/internal/catalog"
	"github.com/modelworks/workbench/internal/metrics"
	"github.com/modelworks/workbench/internal/validate"
)

// Terminal states.
const (
	StatusCompleted  = "completed"
	StatusRolledBack = "rolled_back"
)

// Gates holds the quality-gate thresholds. The accuracy floor is the
// incumbent's baseline minus AccuracyTolerance, capped at
// AccuracyFloorCap so a stellar incumbent does not demand more than
// the absolute bar; error rate and latency headroom are fixed
// ceilings.
type Gates struct {
	ErrorRateCeiling  float64
	LatencyHeadroomMS float64
	AccuracyTolerance float64
	AccuracyFloorCap  float64
}

// DefaultGates returns the default gate thresholds.
func DefaultGates() Gates {
	return Gates{
		ErrorRateCeiling:  0.05,
		LatencyHeadroomMS: 500,
		AccuracyTolerance: 0.05,
		AccuracyFloorCap:  0.85,
	}
}

// PhaseMetrics is the simulated metrics snapshot for one phase.
type PhaseMetrics struct {
	Accuracy           float64 `json:"accuracy"`
	ErrorRate          float64 `json:"error_rate"`
	LatencyP99         float64 `json:"latency_p99"`
	BaselineLatencyP99 float64 `json:"baseline_latency_p99"`
}

// Phase records one rollout stage.
type Phase struct {
	Name           string       `json:"phase"`
	TrafficPercent int          `json:"traffic_percent"`
	DurationHours  int          `json:"duration_hours"`
	Metrics        PhaseMetrics `json:"metrics"`
	GatePassed     bool         `json:"gate_passed"`
}

// Outcome is the terminal result of one simulation run. On rollback,
// PhasesCompleted holds only the phases that passed before the breach
// and FailedPhase carries the breaching snapshot.
type Outcome struct {
	Status               string  `json:"status"`
	CurrentModel         string  `json:"current_model"`
	NewModel             string  `json:"new_model"`
	FinalTrafficPercent  int     `json:"final_traffic_percent"`
	NewModelInProduction string  `json:"new_model_now_in_production,omitempty"`
	FailedAtPhase        string  `json:"failed_at_phase,omitempty"`
	FailedPhase          *Phase  `json:"failed_phase,omitempty"`
	Reason               string  `json:"reason,omitempty"`
	PhasesCompleted      []Phase `json:"phases_completed"`
}

// phaseDurationHours is the nominal soak time recorded per phase.
const phaseDurationHours = 24

// trafficLadder is the standard progression; it gets clipped and capped
// to the requested final traffic percent.
var trafficLadder = []struct {
	name    string
	traffic int
}{
	{"Canary", 5},
	{"Early Adopters", 25},
	{"Half", 50},
	{"Full", 100},
}

// Simulator drives canary rollout simulations.
type Simulator struct {
	gates Gates
}

// NewSimulator creates a Simulator with the given gates.
func NewSimulator(gates Gates) *Simulator {
	return &Simulator{gates: gates}
}

// Run simulates a rollout from incumbent to candidate, stopping at
// finalTraffic percent (must be in (0, 100]). Phases are processed
// forward-only with strictly increasing traffic; the first gate breach
// terminates the run as rolled back.
func (s *Simulator) Run(incumbent, candidate catalog.Model, finalTraffic int) (Outcome, error) {
	if finalTraffic <= 0 || finalTraffic > 100 {
		return Outcome{}, validate.Errorf("final_traffic_percent", "must be in (0,100]")
	}

	out := Outcome{
		CurrentModel:        incumbent.Key,
		NewModel:            candidate.Key,
		FinalTrafficPercent: finalTraffic,
		PhasesCompleted:     []Phase{},
	}

	accuracyFloor := min(incumbent.QualityScore-s.gates.AccuracyTolerance, s.gates.AccuracyFloorCap)
	latencyCeiling := float64(incumbent.SpeedMS) + s.gates.LatencyHeadroomMS

	prevTraffic := 0
	for _, step := range phasesFor(finalTraffic) {
		if step.traffic <= prevTraffic {
			// Traffic must strictly increase through the ladder; a
			// violation here is a defect in phasesFor, not caller input.
			panic(fmt.Sprintf("canary: non-increasing traffic %d after %d", step.traffic, prevTraffic))
		}
		prevTraffic = step.traffic

		phase := Phase{
			Name:           step.name,
			TrafficPercent: step.traffic,
			DurationHours:  phaseDurationHours,
			Metrics:        simulatePhase(incumbent, candidate, step.traffic),
		}

		reason := s.checkGates(phase.Metrics, accuracyFloor, latencyCeiling)
		phase.GatePassed = reason == ""
		if !phase.GatePassed {
			out.Status = StatusRolledBack
			out.FailedAtPhase = phase.Name
			out.FailedPhase = &phase
			out.Reason = reason
			return out, nil
		}
		out.PhasesCompleted = append(out.PhasesCompleted, phase)
	}

	out.Status = StatusCompleted
	out.NewModelInProduction = candidate.Key
	return out, nil
}

// phasesFor clips the standard ladder to end exactly at finalTraffic.
func phasesFor(finalTraffic int) []struct {
	name    string
	traffic int
} {
	var phases []struct {
		name    string
		traffic int
	}
	for _, step := range trafficLadder {
		if step.traffic < finalTraffic {
			phases = append(phases, step)
			continue
		}
		step.traffic = finalTraffic
		if finalTraffic < 100 {
			step.name = "Full"
		}
		phases = append(phases, step)
		break
	}
	return phases
}

// simulatePhase derives the candidate's metrics at a traffic share as a
// pure function of the pair's baseline attributes, so a fixed
// (incumbent, candidate, traffic) tuple always reproduces the same
// snapshot. Error rate, latency and accuracy all drift with the share
// of traffic the candidate carries.
func simulatePhase(incumbent, candidate catalog.Model, traffic int) PhaseMetrics {
	tf := float64(traffic) / 100

	return PhaseMetrics{
		ErrorRate:          metrics.Round4(candidate.HallucinationRate + tf*0.003),
		LatencyP99:         metrics.Round2(float64(candidate.SpeedMS) + tf*60),
		BaselineLatencyP99: float64(incumbent.SpeedMS),
		Accuracy:           metrics.Round4(max(0, candidate.QualityScore-tf*0.01)),
	}
}

// checkGates returns an empty string when every gate passes, otherwise
// a reason naming the breached metric and threshold. Checks run in a
// fixed order so the recorded reason is deterministic.
func (s *Simulator) checkGates(m PhaseMetrics, accuracyFloor, latencyCeiling float64) string {
	if m.ErrorRate >= s.gates.ErrorRateCeiling {
		return fmt.Sprintf("error rate %.4f exceeded ceiling %.2f", m.ErrorRate, s.gates.ErrorRateCeiling)
	}
	if m.LatencyP99 >= latencyCeiling {
		return fmt.Sprintf("latency p99 %.0fms exceeded ceiling %.0fms", m.LatencyP99, latencyCeiling)
	}
	if m.Accuracy < accuracyFloor {
		return fmt.Sprintf("accuracy %.4f dropped below floor %.4f", m.Accuracy, accuracyFloor)
	}
	return ""
}
