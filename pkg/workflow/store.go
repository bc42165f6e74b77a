package workflow

import (
	"fmt"
	"sync"

	"github.com/labscript-ai/labscript/pkg/domain"
)

// Apply is the pure reducer: it returns the state resulting from one action
// without touching the input. No I/O, no side effects; a rejected
// transition returns the input state unchanged alongside the error.
func Apply(state domain.WorkflowState, action Action) (domain.WorkflowState, error) {
	next := state.Clone()

	switch a := action.(type) {
	case SetModel:
		if !domain.IsValidModel(a.Model) {
			return state, fmt.Errorf("unknown robot model %q", a.Model)
		}
		next.Robot.Model = a.Model
		next.Robot.LeftInstrument = ""
		next.Robot.RightInstrument = ""
		next.Robot.UseGripper = false
		next.Deck = domain.NewDeckLayout(a.Model)

	case SetAPIVersion:
		next.Robot.APIVersion = a.Version

	case SetLeftInstrument:
		if !domain.IsValidInstrument(next.Robot.Model, a.Instrument) {
			return state, domain.ErrInvalidInstrument
		}
		next.Robot.LeftInstrument = a.Instrument

	case SetRightInstrument:
		if !domain.IsValidInstrument(next.Robot.Model, a.Instrument) {
			return state, domain.ErrInvalidInstrument
		}
		next.Robot.RightInstrument = a.Instrument

	case SetGripper:
		next.Robot.UseGripper = a.Enabled

	case SetLabware:
		if !domain.IsValidSlot(next.Robot.Model, a.Slot) {
			return state, domain.ErrInvalidSlot
		}
		next.Deck[a.Slot] = a.Labware

	case SetGoal:
		next.Goal = a.Text

	case SetSOP:
		next.SOP = a.Text

	case SetGeneratedCode:
		next.Artifact.Code = a.Code

	case SetArtifact:
		next.Artifact = a.Artifact.Clone()

	case SetRawConfig:
		if a.Text != nil {
			raw := *a.Text
			next.RawConfig = &raw
		} else {
			next.RawConfig = nil
		}

	case SetOutcome:
		outcome := a.Outcome
		next.Outcome = &outcome
		next.Status = domain.DeriveStatus(true, outcome.Succeeded, outcome.WarningsPresent)

	case SetBusy:
		next.Busy = a.Busy

	case Reset:
		return domain.NewWorkflowState(), nil

	default:
		return state, fmt.Errorf("unhandled action %T", action)
	}

	return next, nil
}

// Store owns the authoritative session state. Dispatches are serialized:
// no two transitions interleave, matching the single-writer model of a
// session. All reads and returns are copies.
type Store struct {
	mu    sync.Mutex
	state domain.WorkflowState
}

// NewStore creates a store holding the default session state.
func NewStore() *Store {
	return &Store{state: domain.NewWorkflowState()}
}

// Dispatch applies one action and returns the resulting state. On a
// rejected transition the stored state is unchanged and the error reports
// why.
func (s *Store) Dispatch(action Action) (domain.WorkflowState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := Apply(s.state, action)
	if err != nil {
		return s.state.Clone(), err
	}
	s.state = next
	return next.Clone(), nil
}

// State returns a copy of the current state.
func (s *Store) State() domain.WorkflowState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}
