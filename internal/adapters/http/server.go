// Package http exposes the authoring session to the web frontend.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/labscript-ai/labscript/internal/logging"
	"github.com/labscript-ai/labscript/pkg/domain"
	"github.com/labscript-ai/labscript/pkg/orchestrator"
	"github.com/labscript-ai/labscript/pkg/persistence"
	"github.com/labscript-ai/labscript/pkg/workflow"
)

// Server handles the frontend-facing API over one authoring session.
type Server struct {
	store   *workflow.Store
	orch    *orchestrator.Orchestrator
	persist *persistence.Manager
	logger  *slog.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler builds the routed HTTP handler for one session.
func NewHandler(store *workflow.Store, orch *orchestrator.Orchestrator, persist *persistence.Manager, opts ...Option) http.Handler {
	s := &Server{
		store:   store,
		orch:    orch,
		persist: persist,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", s.getState)
		r.Post("/actions", s.postAction)
		r.Get("/hardware/options", s.hardwareOptions)
		r.Post("/generate-sop", s.generateSOP)
		r.Post("/generate-code", s.generateCode)
		r.Post("/simulate", s.simulate)
		r.Get("/animation/ready", s.animationReady)
		r.Post("/config/save", s.saveConfig)
		r.Post("/config/load", s.loadConfig)
	})
	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.State())
}

// actionRequest is the wire shape of one workflow action. Type selects the
// transition; the other fields carry its argument.
type actionRequest struct {
	Type       string          `json:"type"`
	Model      string          `json:"model,omitempty"`
	Version    string          `json:"version,omitempty"`
	Instrument string          `json:"instrument,omitempty"`
	Enabled    bool            `json:"enabled,omitempty"`
	Slot       string          `json:"slot,omitempty"`
	Labware    *domain.Labware `json:"labware,omitempty"`
	Text       *string         `json:"text,omitempty"`
}

func (a actionRequest) toAction() (workflow.Action, error) {
	switch a.Type {
	case "set_model":
		return workflow.SetModel{Model: domain.RobotModel(a.Model)}, nil
	case "set_api_version":
		return workflow.SetAPIVersion{Version: a.Version}, nil
	case "set_left_instrument":
		return workflow.SetLeftInstrument{Instrument: domain.Instrument(a.Instrument)}, nil
	case "set_right_instrument":
		return workflow.SetRightInstrument{Instrument: domain.Instrument(a.Instrument)}, nil
	case "set_gripper":
		return workflow.SetGripper{Enabled: a.Enabled}, nil
	case "set_labware":
		return workflow.SetLabware{Slot: a.Slot, Labware: a.Labware}, nil
	case "set_goal":
		return workflow.SetGoal{Text: deref(a.Text)}, nil
	case "set_sop":
		return workflow.SetSOP{Text: deref(a.Text)}, nil
	case "set_generated_code":
		return workflow.SetGeneratedCode{Code: deref(a.Text)}, nil
	case "set_raw_config":
		return workflow.SetRawConfig{Text: a.Text}, nil
	case "reset":
		return workflow.Reset{}, nil
	default:
		return nil, errors.New("unknown action type " + a.Type)
	}
}

func (s *Server) postAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	action, err := req.toAction()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := s.store.Dispatch(action)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) hardwareOptions(w http.ResponseWriter, r *http.Request) {
	type modelOptions struct {
		Slots       []string            `json:"slots"`
		Instruments []domain.Instrument `json:"instruments"`
	}
	options := make(map[string]modelOptions)
	for _, model := range domain.Models() {
		options[string(model)] = modelOptions{
			Slots:       domain.SlotsFor(model),
			Instruments: domain.InstrumentsFor(model),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"models":              domain.Models(),
		"default_api_version": domain.DefaultAPIVersion,
		"options":             options,
	})
}

func (s *Server) generateSOP(w http.ResponseWriter, r *http.Request) {
	sop, err := s.orch.GenerateSOP(r.Context())
	if err != nil {
		s.writeStageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"sop_markdown": sop})
}

func (s *Server) generateCode(w http.ResponseWriter, r *http.Request) {
	artifact, err := s.orch.GenerateCode(r.Context(), nil)
	if err != nil {
		s.writeStageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}

func (s *Server) simulate(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.orch.RunSimulation(r.Context())
	if err != nil {
		s.writeStageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"outcome": outcome,
		"status":  s.store.State().Status,
	})
}

func (s *Server) animationReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ready": s.orch.CanAnimate()})
}

func (s *Server) saveConfig(w http.ResponseWriter, r *http.Request) {
	if err := s.persist.Save(r.Context(), s.store.State()); err != nil {
		s.logger.Error("config save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not save configuration")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}

func (s *Server) loadConfig(w http.ResponseWriter, r *http.Request) {
	s.persist.Seed(r.Context(), s.store)
	writeJSON(w, http.StatusOK, s.store.State())
}

// writeStageError maps pipeline errors to HTTP statuses: unmet
// preconditions are the client's to fix, a busy stage is a conflict, and
// anything from the upstream service is a bad gateway reported verbatim.
func (s *Server) writeStageError(w http.ResponseWriter, err error) {
	var pre *domain.PreconditionError
	switch {
	case errors.As(err, &pre):
		writeError(w, http.StatusUnprocessableEntity, pre.Error())
	case errors.Is(err, domain.ErrStageBusy):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error("stage failed", "error", err)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
