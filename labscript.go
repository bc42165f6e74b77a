// Package labscript assembles an AI-assisted protocol authoring session:
// a workflow state store, a durable hardware configuration, and the
// orchestrated generation pipeline against a remote LabScript service.
package labscript

import (
	"context"
	"log/slog"

	"github.com/labscript-ai/labscript/internal/adapters/labservice"
	"github.com/labscript-ai/labscript/internal/adapters/memory"
	"github.com/labscript-ai/labscript/internal/logging"
	"github.com/labscript-ai/labscript/pkg/domain"
	"github.com/labscript-ai/labscript/pkg/orchestrator"
	"github.com/labscript-ai/labscript/pkg/persistence"
	"github.com/labscript-ai/labscript/pkg/ports"
	"github.com/labscript-ai/labscript/pkg/workflow"
)

// App is the high-level entry point for the library. It wires the session
// store, the persistence manager and the orchestrator behind one object.
type App struct {
	store       *workflow.Store
	service     ports.ProtocolService
	configStore ports.ConfigStore
	persist     *persistence.Manager
	orch        *orchestrator.Orchestrator
	logger      *slog.Logger
	metrics     *orchestrator.Metrics
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithService injects a custom ProtocolService, bypassing the default HTTP
// client.
func WithService(svc ports.ProtocolService) Option {
	return func(a *App) { a.service = svc }
}

// WithConfigStore injects the durable backend for hardware configurations.
func WithConfigStore(store ports.ConfigStore) Option {
	return func(a *App) { a.configStore = store }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics attaches pipeline metrics.
func WithMetrics(m *orchestrator.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// New assembles an App. serviceURL points at the generation service; it may
// be empty when WithService injects one.
func New(serviceURL string, opts ...Option) *App {
	a := &App{
		store:  workflow.NewStore(),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.service == nil {
		a.service = labservice.New(serviceURL)
	}
	if a.configStore == nil {
		a.configStore = memory.NewStore()
	}

	a.persist = persistence.NewManager(a.configStore, persistence.WithLogger(a.logger))

	orchOpts := []orchestrator.Option{orchestrator.WithLogger(a.logger)}
	if a.metrics != nil {
		orchOpts = append(orchOpts, orchestrator.WithMetrics(a.metrics))
	}
	a.orch = orchestrator.New(a.store, a.service, orchOpts...)

	return a
}

// Store returns the session's workflow store.
func (a *App) Store() *workflow.Store { return a.store }

// Orchestrator returns the generation pipeline driver.
func (a *App) Orchestrator() *orchestrator.Orchestrator { return a.orch }

// Persistence returns the hardware configuration manager.
func (a *App) Persistence() *persistence.Manager { return a.persist }

// Service returns the protocol service client.
func (a *App) Service() ports.ProtocolService { return a.service }

// State returns a copy of the current session state.
func (a *App) State() domain.WorkflowState { return a.store.State() }

// Dispatch applies one workflow action.
func (a *App) Dispatch(action workflow.Action) (domain.WorkflowState, error) {
	return a.store.Dispatch(action)
}

// Restore seeds the session from the stored hardware configuration. Missing
// or corrupt entries leave the defaults in place.
func (a *App) Restore(ctx context.Context) {
	a.persist.Seed(ctx, a.store)
}

// SaveConfig snapshots the current hardware configuration.
func (a *App) SaveConfig(ctx context.Context) error {
	return a.persist.Save(ctx, a.store.State())
}
