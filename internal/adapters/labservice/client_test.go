package labservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labscript-ai/labscript/pkg/domain"
)

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"message": "LabScript AI backend running",
		})
	}))
	defer srv.Close()

	info, err := New(srv.URL).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", info.Status)
	assert.Equal(t, "LabScript AI backend running", info.Message)
}

func TestGenerateSOP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate-sop", r.URL.Path)

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Serial dilution", req["user_goal"])
		assert.Contains(t, req["hardware_config"], "Robot Model")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":      true,
			"sop_markdown": "# Serial Dilution SOP",
			"timestamp":    "2026-01-01T00:00:00Z",
		})
	}))
	defer srv.Close()

	sop, err := New(srv.URL).GenerateSOP(context.Background(), "Robot Model: Flex", "Serial dilution")
	require.NoError(t, err)
	assert.Equal(t, "# Serial Dilution SOP", sop)
}

func TestGenerateSOPServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"detail":  "model overloaded",
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GenerateSOP(context.Background(), "cfg", "goal")

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Detail, "model overloaded")
}

func TestGenerateCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate-protocol-code", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":        true,
			"generated_code": "from opentrons import protocol_api",
			"attempts":       3,
			"warnings":       []string{"w1"},
			"iteration_logs": []map[string]any{
				{"event_type": "llm_call_start", "attempt_num": 1},
				{"event_type": "code_attempt", "attempt_num": 1},
				{"event_type": "simulation_start", "attempt_num": 1},
				{"event_type": "simulation_result", "attempt_num": 1, "success": false},
				{"event_type": "brand_new_event", "attempt_num": 1},
			},
			"timestamp": "2026-01-01T00:00:00Z",
		})
	}))
	defer srv.Close()

	var feedback []string
	progress := func(msg string) { feedback = append(feedback, msg) }

	artifact, err := New(srv.URL).GenerateCode(context.Background(), "# SOP", "cfg", progress)
	require.NoError(t, err)

	assert.Equal(t, "from opentrons import protocol_api", artifact.Code)
	assert.Equal(t, 3, artifact.Attempts)
	assert.Equal(t, []string{"w1"}, artifact.Warnings)

	require.Len(t, artifact.Events, 5)
	assert.Equal(t, domain.EventGenerationStart, artifact.Events[0].Type)
	assert.Equal(t, domain.EventCodeAttempt, artifact.Events[1].Type)
	assert.Equal(t, domain.EventSimulationStart, artifact.Events[2].Type)
	assert.Equal(t, domain.EventSimulationResult, artifact.Events[3].Type)
	assert.Equal(t, domain.EventUnknown, artifact.Events[4].Type)

	assert.Len(t, feedback, 2)
}

func TestGenerateCodeProgressOptional(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":        true,
			"generated_code": "code",
			"attempts":       1,
		})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GenerateCode(context.Background(), "# SOP", "cfg", nil)
	require.NoError(t, err)
}

func TestSimulateFailureIsAnOutcome(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/simulate-protocol", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":               false,
			"raw_simulation_output": "Traceback ...",
			"error_message":         "labware collision in slot A1",
			"warnings_present":      false,
			"final_status_message":  "Simulation failed",
		})
	}))
	defer srv.Close()

	outcome, err := New(srv.URL).Simulate(context.Background(), "code")
	require.NoError(t, err)

	assert.False(t, outcome.Succeeded)
	assert.Equal(t, "labware collision in slot A1", outcome.ErrorMessage)
	assert.Equal(t, "Simulation failed", outcome.StatusMessage)
}

func TestSimulateWarnings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success":               true,
			"raw_simulation_output": "ok",
			"warnings_present":      true,
			"warning_details":       "deprecated API call",
			"final_status_message":  "Simulation succeeded with warnings",
		})
	}))
	defer srv.Close()

	outcome, err := New(srv.URL).Simulate(context.Background(), "code")
	require.NoError(t, err)

	assert.True(t, outcome.Succeeded)
	assert.True(t, outcome.WarningsPresent)
	assert.Equal(t, "deprecated API call", outcome.WarningDetail)
}

func TestListTools(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tools", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"tools": []map[string]string{
				{"name": "generate_sop", "description": "Draft an SOP"},
				{"name": "simulate_protocol", "description": "Run opentrons_simulate"},
			},
		})
	}))
	defer srv.Close()

	tools, err := New(srv.URL).ListTools(context.Background())
	require.NoError(t, err)
	require.Len(t, tools, 2)
	assert.Equal(t, "generate_sop", tools[0].Name)
}

func TestHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "upstream LLM unavailable"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GenerateSOP(context.Background(), "cfg", "goal")

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.Status)
	assert.Equal(t, "upstream LLM unavailable", reqErr.Detail)
}

func TestMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Simulate(context.Background(), "code")

	var malformed *domain.MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	_, err := New(srv.URL).Health(context.Background())

	var reqErr *domain.RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Zero(t, reqErr.Status)
	assert.Error(t, reqErr.Err)
}
