package workflow

import "github.com/labscript-ai/labscript/pkg/domain"

// Action is one named state transition. The set is closed: every action is
// declared in this file and handled exhaustively by Apply.
type Action interface {
	isAction()
}

// SetModel replaces the robot model. This is a destructive cascade: the
// deck layout is rebuilt empty for the new model's slot set, both
// instruments are unmounted and the gripper flag is cleared, because slot
// identifiers and valid instruments are model-specific.
type SetModel struct {
	Model domain.RobotModel
}

// SetAPIVersion replaces the protocol API version. Field-local.
type SetAPIVersion struct {
	Version string
}

// SetLeftInstrument mounts (or with the empty instrument, unmounts) the
// left pipette. Field-local.
type SetLeftInstrument struct {
	Instrument domain.Instrument
}

// SetRightInstrument mounts or unmounts the right pipette. Field-local.
type SetRightInstrument struct {
	Instrument domain.Instrument
}

// SetGripper toggles the auxiliary gripper flag.
type SetGripper struct {
	Enabled bool
}

// SetLabware assigns labware to a deck slot, or clears it when Labware is
// nil. Rejected with domain.ErrInvalidSlot when the slot does not exist on
// the current model's deck.
type SetLabware struct {
	Slot    string
	Labware *domain.Labware
}

// SetGoal replaces the user goal text.
type SetGoal struct {
	Text string
}

// SetSOP replaces the SOP document text.
type SetSOP struct {
	Text string
}

// SetGeneratedCode replaces only the generated code text, keeping the
// artifact's provenance (attempts, warnings, events) intact. Used for
// direct user edits.
type SetGeneratedCode struct {
	Code string
}

// SetArtifact replaces the whole generated artifact, provenance included.
type SetArtifact struct {
	Artifact domain.GeneratedArtifact
}

// SetRawConfig sets or clears the free-text hardware configuration
// override. When non-nil, downstream calls use the text verbatim instead of
// the structured configuration's rendering.
type SetRawConfig struct {
	Text *string
}

// SetOutcome stores a simulation outcome and recomputes the derived status.
type SetOutcome struct {
	Outcome domain.SimulationOutcome
}

// SetBusy toggles the session busy flag.
type SetBusy struct {
	Busy bool
}

// Reset restores the default session state.
type Reset struct{}

func (SetModel) isAction()           {}
func (SetAPIVersion) isAction()      {}
func (SetLeftInstrument) isAction()  {}
func (SetRightInstrument) isAction() {}
func (SetGripper) isAction()         {}
func (SetLabware) isAction()         {}
func (SetGoal) isAction()            {}
func (SetSOP) isAction()             {}
func (SetGeneratedCode) isAction()   {}
func (SetArtifact) isAction()        {}
func (SetRawConfig) isAction()       {}
func (SetOutcome) isAction()         {}
func (SetBusy) isAction()            {}
func (Reset) isAction()              {}
