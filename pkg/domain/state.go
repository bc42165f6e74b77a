package domain

// WorkflowState is the aggregate root of one authoring session: the
// hardware configuration, the pipeline artifacts, and the derived
// simulation status. It is mutated exclusively through workflow actions;
// callers only ever see copies.
type WorkflowState struct {
	Robot RobotConfiguration `json:"robot"`
	Deck  DeckLayout         `json:"deck"`

	// RawConfig, when set, replaces the canonical rendering of Robot+Deck
	// for every downstream precondition and service call. Nil means the
	// structured configuration is authoritative.
	RawConfig *string `json:"raw_config,omitempty"`

	Goal     string             `json:"goal"`
	SOP      string             `json:"sop"`
	Artifact GeneratedArtifact  `json:"artifact"`
	Outcome  *SimulationOutcome `json:"outcome,omitempty"`
	Status   Status             `json:"status"`
	Busy     bool               `json:"busy"`
}

// NewWorkflowState returns the default session state: Flex robot, empty
// deck, idle status.
func NewWorkflowState() WorkflowState {
	return WorkflowState{
		Robot:  DefaultRobotConfiguration(),
		Deck:   NewDeckLayout(ModelFlex),
		Status: StatusIdle,
	}
}

// Clone returns an independent deep copy of the state.
func (s WorkflowState) Clone() WorkflowState {
	out := s
	out.Deck = s.Deck.Clone()
	out.Artifact = s.Artifact.Clone()
	if s.RawConfig != nil {
		raw := *s.RawConfig
		out.RawConfig = &raw
	}
	if s.Outcome != nil {
		outcome := *s.Outcome
		out.Outcome = &outcome
	}
	return out
}
