package domain

import (
	"encoding/json"
	"testing"
)

func TestParseEventType(t *testing.T) {
	cases := map[string]EventType{
		"iteration_log":     EventIterationLog,
		"llm_call_start":    EventGenerationStart,
		"generation_start":  EventGenerationStart,
		"code_attempt":      EventCodeAttempt,
		"simulation_start":  EventSimulationStart,
		"simulation_result": EventSimulationResult,
		"iteration_result":  EventIterationResult,
		"":                  EventUnknown,
		"future_event_v2":   EventUnknown,
	}
	for wire, want := range cases {
		if got := ParseEventType(wire); got != want {
			t.Errorf("ParseEventType(%q) = %q, want %q", wire, got, want)
		}
	}
}

func TestIterationEventUnmarshal(t *testing.T) {
	raw := `{
		"event_type": "code_attempt",
		"attempt_num": 2,
		"message": "generated candidate",
		"generated_code": "def run(protocol): pass",
		"status": "RUNNING"
	}`

	var ev IterationEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if ev.Type != EventCodeAttempt {
		t.Errorf("type = %q, want %q", ev.Type, EventCodeAttempt)
	}
	if ev.Attempt != 2 {
		t.Errorf("attempt = %d, want 2", ev.Attempt)
	}
	if ev.Message != "generated candidate" {
		t.Errorf("message = %q", ev.Message)
	}
	if ev.Payload["generated_code"] != "def run(protocol): pass" {
		t.Errorf("payload should keep type-specific fields, got %v", ev.Payload)
	}
	if _, leaked := ev.Payload["event_type"]; leaked {
		t.Error("classified fields must not leak into the payload bag")
	}
}

func TestIterationEventUnknownType(t *testing.T) {
	raw := `{"event_type": "telemetry_v3", "attempt_num": 1, "frobnication": 42}`

	var ev IterationEvent
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		t.Fatalf("unknown event types must not fail decoding: %v", err)
	}
	if ev.Type != EventUnknown {
		t.Errorf("type = %q, want %q", ev.Type, EventUnknown)
	}
	if ev.Payload["frobnication"] != float64(42) {
		t.Errorf("unknown payload fields must survive, got %v", ev.Payload)
	}
}

func TestDecodePayload(t *testing.T) {
	ev := IterationEvent{
		Type:    EventIterationResult,
		Attempt: 3,
		Payload: map[string]any{
			"status":          "SUCCESS_WITH_WARNING",
			"warning_details": "deprecated labware definition",
		},
	}

	var view struct {
		Status         string `mapstructure:"status"`
		WarningDetails string `mapstructure:"warning_details"`
	}
	if err := ev.DecodePayload(&view); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if view.Status != "SUCCESS_WITH_WARNING" || view.WarningDetails != "deprecated labware definition" {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestGeneratedArtifactClone(t *testing.T) {
	art := GeneratedArtifact{
		Code:     "code",
		Attempts: 2,
		Warnings: []string{"w1"},
		Events:   []IterationEvent{{Type: EventIterationLog, Attempt: 1}},
	}

	clone := art.Clone()
	clone.Warnings[0] = "mutated"
	clone.Events[0].Attempt = 99

	if art.Warnings[0] != "w1" || art.Events[0].Attempt != 1 {
		t.Error("clone must not share backing arrays with the original")
	}
}
