package ports

import (
	"context"

	"github.com/labscript-ai/labscript/pkg/domain"
)

// HealthInfo is the generation service's liveness report.
type HealthInfo struct {
	Status  string
	Message string
}

// ToolInfo describes one capability the generation service exposes.
type ToolInfo struct {
	Name        string
	Description string
}

// ProgressFunc receives user-facing feedback text during a long call. It
// carries no semantic state and is invoked at most twice per call: once
// before the request is issued and once after it resolves.
type ProgressFunc func(message string)

// ProtocolService is the remote AI generation and simulation engine. Its
// internal retry/repair loop is opaque; only the request/response/telemetry
// contract surfaces here.
type ProtocolService interface {
	// Health checks service liveness.
	Health(ctx context.Context) (HealthInfo, error)

	// GenerateSOP produces an SOP markdown document from the hardware
	// configuration text and the user goal.
	GenerateSOP(ctx context.Context, hardwareConfig, userGoal string) (string, error)

	// GenerateCode produces protocol code from an SOP, returning the final
	// code together with its provenance (attempts, warnings, ordered
	// iteration events).
	GenerateCode(ctx context.Context, sopMarkdown, hardwareConfig string, progress ProgressFunc) (domain.GeneratedArtifact, error)

	// Simulate runs the protocol code through the simulator.
	Simulate(ctx context.Context, protocolCode string) (domain.SimulationOutcome, error)

	// ListTools enumerates the service's available tools.
	ListTools(ctx context.Context) ([]ToolInfo, error)
}
