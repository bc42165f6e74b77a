package domain

// RobotModel identifies the liquid-handling platform a protocol targets.
type RobotModel string

const (
	ModelFlex       RobotModel = "Flex"
	ModelOT2        RobotModel = "OT-2"
	ModelPyLabRobot RobotModel = "PyLabRobot"
)

// DefaultAPIVersion is the protocol API version preselected for new sessions.
const DefaultAPIVersion = "2.20"

// Models returns the supported robot models in display order.
func Models() []RobotModel {
	return []RobotModel{ModelFlex, ModelOT2, ModelPyLabRobot}
}

// IsValidModel reports whether m is a known robot model.
func IsValidModel(m RobotModel) bool {
	switch m {
	case ModelFlex, ModelOT2, ModelPyLabRobot:
		return true
	}
	return false
}

// Instrument is a pipette model name as understood by the protocol API.
// The empty string means "no instrument mounted".
type Instrument string

var instrumentTable = map[RobotModel][]Instrument{
	ModelFlex: {
		"flex_1channel_1000", "flex_1channel_300",
		"flex_8channel_1000", "flex_8channel_300",
	},
	ModelOT2: {
		"p1000_single_gen2", "p300_single_gen2", "p20_single_gen2",
		"p1000_multi_gen2", "p300_multi_gen2", "p20_multi_gen2",
	},
	ModelPyLabRobot: {
		"pylabrobot_1000", "pylabrobot_300", "pylabrobot_50",
	},
}

// InstrumentsFor returns the pipettes mountable on the given model, in
// display order. Unknown models yield nil.
func InstrumentsFor(model RobotModel) []Instrument {
	src := instrumentTable[model]
	out := make([]Instrument, len(src))
	copy(out, src)
	return out
}

// IsValidInstrument reports whether i can be mounted on model. The empty
// instrument (unmounted) is valid on every model.
func IsValidInstrument(model RobotModel, i Instrument) bool {
	if i == "" {
		return true
	}
	for _, candidate := range instrumentTable[model] {
		if candidate == i {
			return true
		}
	}
	return false
}

// RobotConfiguration describes the hardware a protocol is generated for.
// UseGripper is meaningful only on the Flex; it is forced back to false
// whenever the model changes.
type RobotConfiguration struct {
	Model           RobotModel `json:"model"`
	APIVersion      string     `json:"api_version"`
	LeftInstrument  Instrument `json:"left_instrument,omitempty"`
	RightInstrument Instrument `json:"right_instrument,omitempty"`
	UseGripper      bool       `json:"use_gripper"`
}

// DefaultRobotConfiguration returns the configuration new sessions start with.
func DefaultRobotConfiguration() RobotConfiguration {
	return RobotConfiguration{
		Model:      ModelFlex,
		APIVersion: DefaultAPIVersion,
	}
}
