package domain

import (
	"fmt"
	"strings"
)

// HardwareText renders the structured configuration to its canonical text
// form, the exact shape the generation service receives. The rendering is
// deterministic: lines appear in fixed order and occupied slots follow the
// deck slot table, so the same state always yields an identical string.
func HardwareText(cfg RobotConfiguration, deck DeckLayout) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Robot Model: %s\n", cfg.Model)
	fmt.Fprintf(&b, "API Version: %s\n", cfg.APIVersion)
	fmt.Fprintf(&b, "Left Pipette: %s\n", orNone(cfg.LeftInstrument))
	fmt.Fprintf(&b, "Right Pipette: %s\n", orNone(cfg.RightInstrument))
	fmt.Fprintf(&b, "Use Gripper: %t\n", cfg.UseGripper)
	b.WriteString("Deck Layout:\n")

	occupied := false
	for _, slot := range SlotsFor(cfg.Model) {
		if lw := deck[slot]; lw != nil {
			fmt.Fprintf(&b, "  %s: %s\n", slot, lw.DisplayName)
			occupied = true
		}
	}
	if !occupied {
		b.WriteString("  (No labware configured)\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func orNone(i Instrument) string {
	if i == "" {
		return "None"
	}
	return string(i)
}

// HardwareText returns the effective hardware configuration text for the
// session: the raw override verbatim when one is set, otherwise the
// canonical rendering of the structured configuration.
func (s WorkflowState) HardwareText() string {
	if s.RawConfig != nil {
		return *s.RawConfig
	}
	return HardwareText(s.Robot, s.Deck)
}
