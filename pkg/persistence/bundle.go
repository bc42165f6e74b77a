// Package persistence snapshots the hardware configuration to a ConfigStore
// and seeds a fresh session from the stored snapshot. Persistence failures
// never propagate: a corrupt or missing snapshot degrades to defaults with a
// log line.
package persistence

import (
	"github.com/labscript-ai/labscript/pkg/domain"
)

// Bundle is the durable snapshot of a hardware configuration. Every field
// is a pointer so presence survives the round trip: a field absent from the
// stored entry stays nil and leaves the corresponding live field untouched
// when seeding.
type Bundle struct {
	Model           *domain.RobotModel         `json:"model,omitempty"`
	APIVersion      *string                    `json:"api_version,omitempty"`
	LeftInstrument  *domain.Instrument         `json:"left_instrument,omitempty"`
	RightInstrument *domain.Instrument         `json:"right_instrument,omitempty"`
	UseGripper      *bool                      `json:"use_gripper,omitempty"`
	Deck            map[string]*domain.Labware `json:"deck,omitempty"`
	RawConfig       *string                    `json:"raw_config,omitempty"`
}

// Snapshot captures the hardware-relevant slice of a session state.
func Snapshot(state domain.WorkflowState) Bundle {
	model := state.Robot.Model
	apiVersion := state.Robot.APIVersion
	left := state.Robot.LeftInstrument
	right := state.Robot.RightInstrument
	gripper := state.Robot.UseGripper

	b := Bundle{
		Model:           &model,
		APIVersion:      &apiVersion,
		LeftInstrument:  &left,
		RightInstrument: &right,
		UseGripper:      &gripper,
		Deck:            map[string]*domain.Labware{},
	}
	for slot, lw := range state.Deck {
		if lw != nil {
			b.Deck[slot] = lw
		}
	}
	if state.RawConfig != nil {
		raw := *state.RawConfig
		b.RawConfig = &raw
	}
	return b
}
