package domain

import (
	"encoding/json"

	"github.com/mitchellh/mapstructure"
)

// EventType classifies one telemetry record from the generation service's
// internal repair loop.
type EventType string

const (
	EventIterationLog     EventType = "iteration_log"
	EventGenerationStart  EventType = "generation_start"
	EventCodeAttempt      EventType = "code_attempt"
	EventSimulationStart  EventType = "simulation_start"
	EventSimulationResult EventType = "simulation_result"
	EventIterationResult  EventType = "iteration_result"
	EventUnknown          EventType = "unknown"
)

// ParseEventType maps a wire event type string to the closed enum. Values
// the core does not recognize map to EventUnknown; they are rendered
// generically but never dropped.
func ParseEventType(wire string) EventType {
	switch wire {
	case "iteration_log":
		return EventIterationLog
	case "generation_start", "llm_call_start":
		return EventGenerationStart
	case "code_attempt":
		return EventCodeAttempt
	case "simulation_start":
		return EventSimulationStart
	case "simulation_result":
		return EventSimulationResult
	case "iteration_result":
		return EventIterationResult
	default:
		return EventUnknown
	}
}

// IterationEvent is one telemetry record describing a step of the remote
// generation loop. Payload carries the type-specific fields opaquely;
// consumers decode the subset they understand via DecodePayload.
type IterationEvent struct {
	Type    EventType      `json:"type"`
	Attempt int            `json:"attempt"`
	Message string         `json:"message,omitempty"`
	Payload map[string]any `json:"payload,omitempty"`
}

// UnmarshalJSON decodes the wire shape of an iteration event: a flat object
// with event_type, attempt_num and message alongside arbitrary
// type-specific fields. The extras are preserved in Payload verbatim.
func (e *IterationEvent) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	wireType, _ := raw["event_type"].(string)
	e.Type = ParseEventType(wireType)

	if n, ok := raw["attempt_num"].(float64); ok {
		e.Attempt = int(n)
	}
	if msg, ok := raw["message"].(string); ok {
		e.Message = msg
	}

	delete(raw, "event_type")
	delete(raw, "attempt_num")
	delete(raw, "message")
	if len(raw) > 0 {
		e.Payload = raw
	}
	return nil
}

// DecodePayload maps the opaque payload bag onto a typed view. Fields the
// target struct does not declare are ignored.
func (e IterationEvent) DecodePayload(out any) error {
	return mapstructure.Decode(e.Payload, out)
}

// GeneratedArtifact is the product of one code-generation call: the final
// code plus its provenance. Warnings and Events keep the order they were
// received in.
type GeneratedArtifact struct {
	Code     string           `json:"code"`
	Attempts int              `json:"attempts"`
	Warnings []string         `json:"warnings,omitempty"`
	Events   []IterationEvent `json:"events,omitempty"`
}

// Clone returns an independent copy of the artifact.
func (a GeneratedArtifact) Clone() GeneratedArtifact {
	out := a
	if a.Warnings != nil {
		out.Warnings = make([]string, len(a.Warnings))
		copy(out.Warnings, a.Warnings)
	}
	if a.Events != nil {
		out.Events = make([]IterationEvent, len(a.Events))
		copy(out.Events, a.Events)
	}
	return out
}
