// Package orchestrator drives the generation pipeline: SOP drafting, code
// generation and simulation, each gated by its precondition and serialized
// by a per-stage in-flight guard.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/labscript-ai/labscript/internal/logging"
	"github.com/labscript-ai/labscript/pkg/domain"
	"github.com/labscript-ai/labscript/pkg/ports"
	"github.com/labscript-ai/labscript/pkg/workflow"
)

// Stage names one pipeline step, used for guards and metrics labels.
type Stage string

const (
	StageSOP        Stage = "sop"
	StageCode       Stage = "code"
	StageSimulation Stage = "simulation"
)

// Orchestrator coordinates the session state with the remote generation
// service. A failed stage never partially mutates the session: prior SOP,
// code and outcome survive any failure of a later call.
type Orchestrator struct {
	store   *workflow.Store
	service ports.ProtocolService
	logger  *slog.Logger
	metrics *Metrics

	mu       sync.Mutex
	inflight map[Stage]bool
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the orchestrator's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *Orchestrator) { o.metrics = m }
}

// New creates an Orchestrator over the given session store and service.
func New(store *workflow.Store, service ports.ProtocolService, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:    store,
		service:  service,
		logger:   logging.NewNop(),
		inflight: make(map[Stage]bool),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// begin claims the in-flight guard for a stage. A second trigger while one
// call is outstanding is rejected, never queued or duplicated.
func (o *Orchestrator) begin(stage Stage) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inflight[stage] {
		return domain.ErrStageBusy
	}
	o.inflight[stage] = true
	_, _ = o.store.Dispatch(workflow.SetBusy{Busy: true})
	return nil
}

func (o *Orchestrator) end(stage Stage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.inflight, stage)
	if len(o.inflight) == 0 {
		_, _ = o.store.Dispatch(workflow.SetBusy{Busy: false})
	}
}

// GenerateSOP drafts the SOP from the current goal and hardware
// configuration and records it in the session.
func (o *Orchestrator) GenerateSOP(ctx context.Context) (string, error) {
	state := o.store.State()
	if state.Goal == "" {
		return "", &domain.PreconditionError{Missing: "goal"}
	}
	hardware := state.HardwareText()
	if hardware == "" {
		return "", &domain.PreconditionError{Missing: "hardware configuration"}
	}

	if err := o.begin(StageSOP); err != nil {
		return "", err
	}
	defer o.end(StageSOP)

	start := time.Now()
	sop, err := o.service.GenerateSOP(ctx, hardware, state.Goal)
	o.observe(StageSOP, start, err)
	if err != nil {
		o.logger.Error("sop generation failed", "error", err)
		return "", err
	}

	if _, err := o.store.Dispatch(workflow.SetSOP{Text: sop}); err != nil {
		return "", err
	}
	o.logger.Info("sop generated", "bytes", len(sop))
	return sop, nil
}

// GenerateCode turns the current SOP into protocol code and records the
// artifact, provenance included, in the session.
func (o *Orchestrator) GenerateCode(ctx context.Context, progress ports.ProgressFunc) (domain.GeneratedArtifact, error) {
	state := o.store.State()
	if state.SOP == "" {
		return domain.GeneratedArtifact{}, &domain.PreconditionError{Missing: "sop"}
	}

	if err := o.begin(StageCode); err != nil {
		return domain.GeneratedArtifact{}, err
	}
	defer o.end(StageCode)

	start := time.Now()
	artifact, err := o.service.GenerateCode(ctx, state.SOP, state.HardwareText(), progress)
	o.observe(StageCode, start, err)
	if err != nil {
		o.logger.Error("code generation failed", "error", err)
		return domain.GeneratedArtifact{}, err
	}

	if _, err := o.store.Dispatch(workflow.SetArtifact{Artifact: artifact}); err != nil {
		return domain.GeneratedArtifact{}, err
	}
	o.logger.Info("code generated",
		"attempts", artifact.Attempts,
		"warnings", len(artifact.Warnings),
		"events", len(artifact.Events))
	return artifact, nil
}

// RunSimulation simulates the current protocol code and records the
// outcome. A failing simulation verdict is a recorded outcome, not an
// error; only transport and decode failures return one.
func (o *Orchestrator) RunSimulation(ctx context.Context) (domain.SimulationOutcome, error) {
	state := o.store.State()
	if state.Artifact.Code == "" {
		return domain.SimulationOutcome{}, &domain.PreconditionError{Missing: "code"}
	}

	if err := o.begin(StageSimulation); err != nil {
		return domain.SimulationOutcome{}, err
	}
	defer o.end(StageSimulation)

	start := time.Now()
	outcome, err := o.service.Simulate(ctx, state.Artifact.Code)
	o.observe(StageSimulation, start, err)
	if err != nil {
		o.logger.Error("simulation call failed", "error", err)
		return domain.SimulationOutcome{}, err
	}

	if _, err := o.store.Dispatch(workflow.SetOutcome{Outcome: outcome}); err != nil {
		return domain.SimulationOutcome{}, err
	}
	o.logger.Info("simulation finished",
		"succeeded", outcome.Succeeded,
		"warnings_present", outcome.WarningsPresent)
	return outcome, nil
}

// CanAnimate reports whether the animation stage is reachable. Only a raw
// successful simulation unlocks it; warnings do not block it and a warning
// status alone does not grant it.
func (o *Orchestrator) CanAnimate() bool {
	state := o.store.State()
	return state.Outcome != nil && state.Outcome.Succeeded
}

func (o *Orchestrator) observe(stage Stage, start time.Time, err error) {
	if o.metrics == nil {
		return
	}
	o.metrics.Observe(stage, time.Since(start), err)
}
