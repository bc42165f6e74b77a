package domain

// Labware describes a physical deck item assignable to a slot. It is an
// immutable value; it has no lifecycle beyond assignment and removal.
type Labware struct {
	Kind        string `json:"kind"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// DeckLayout maps slot identifiers to the labware occupying them. A nil
// value means the slot is empty. The key set of a valid layout is always
// exactly SlotsFor(model) for the configured model.
type DeckLayout map[string]*Labware

var slotTable = map[RobotModel][]string{
	ModelFlex: {
		"A1", "A2", "A3",
		"B1", "B2", "B3",
		"C1", "C2", "C3",
		"D1", "D2", "D3",
	},
	ModelOT2: {
		"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11",
	},
	ModelPyLabRobot: {
		"P1", "P2", "P3", "P4", "P5", "P6",
		"P7", "P8", "P9", "P10", "P11", "P12",
	},
}

// SlotsFor returns the valid slot identifiers for a model, in deck order.
// Unknown models yield an empty slice.
func SlotsFor(model RobotModel) []string {
	src := slotTable[model]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// IsValidSlot reports whether slot exists on the given model's deck.
func IsValidSlot(model RobotModel, slot string) bool {
	for _, s := range slotTable[model] {
		if s == slot {
			return true
		}
	}
	return false
}

// NewDeckLayout builds the empty layout for a model: every valid slot
// present, every slot unoccupied.
func NewDeckLayout(model RobotModel) DeckLayout {
	layout := make(DeckLayout, len(slotTable[model]))
	for _, slot := range slotTable[model] {
		layout[slot] = nil
	}
	return layout
}

// Clone returns an independent copy of the layout. Labware values are
// immutable, so pointers are shared.
func (d DeckLayout) Clone() DeckLayout {
	out := make(DeckLayout, len(d))
	for slot, lw := range d {
		out[slot] = lw
	}
	return out
}

// Occupied counts the slots holding labware.
func (d DeckLayout) Occupied() int {
	n := 0
	for _, lw := range d {
		if lw != nil {
			n++
		}
	}
	return n
}
