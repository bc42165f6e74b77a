package domain

import (
	"strings"
	"testing"
)

func TestHardwareTextEmptyDeck(t *testing.T) {
	cfg := DefaultRobotConfiguration()
	deck := NewDeckLayout(cfg.Model)

	text := HardwareText(cfg, deck)
	want := strings.Join([]string{
		"Robot Model: Flex",
		"API Version: 2.20",
		"Left Pipette: None",
		"Right Pipette: None",
		"Use Gripper: false",
		"Deck Layout:",
		"  (No labware configured)",
	}, "\n")

	if text != want {
		t.Errorf("canonical text mismatch:\ngot:\n%s\nwant:\n%s", text, want)
	}
}

func TestHardwareTextSlotOrder(t *testing.T) {
	cfg := RobotConfiguration{
		Model:          ModelFlex,
		APIVersion:     "2.20",
		LeftInstrument: "flex_1channel_1000",
		UseGripper:     true,
	}
	deck := NewDeckLayout(ModelFlex)
	// Assign out of slot-table order; the rendering must follow deck order.
	deck["D3"] = &Labware{Kind: "tiprack", Name: "opentrons_96_tiprack_1000ul", DisplayName: "1000μL Tip Rack"}
	deck["A1"] = &Labware{Kind: "plate", Name: "corning_96_wellplate_360ul_flat", DisplayName: "96-well Plate"}

	text := HardwareText(cfg, deck)

	a1 := strings.Index(text, "  A1: 96-well Plate")
	d3 := strings.Index(text, "  D3: 1000μL Tip Rack")
	if a1 == -1 || d3 == -1 {
		t.Fatalf("occupied slots missing from rendering:\n%s", text)
	}
	if a1 > d3 {
		t.Error("slots must render in deck order, A1 before D3")
	}
	if strings.Contains(text, "(No labware configured)") {
		t.Error("placeholder must not appear for an occupied deck")
	}
	if !strings.Contains(text, "Use Gripper: true") {
		t.Error("gripper flag missing")
	}
}

func TestHardwareTextDeterministic(t *testing.T) {
	cfg := DefaultRobotConfiguration()
	deck := NewDeckLayout(cfg.Model)
	deck["B2"] = &Labware{Kind: "reservoir", Name: "nest_12_reservoir_15ml", DisplayName: "12-well Reservoir"}

	first := HardwareText(cfg, deck)
	for i := 0; i < 20; i++ {
		if got := HardwareText(cfg, deck); got != first {
			t.Fatalf("rendering is not deterministic: iteration %d differs", i)
		}
	}
}

func TestStateHardwareTextOverride(t *testing.T) {
	state := NewWorkflowState()
	structured := state.HardwareText()
	if !strings.HasPrefix(structured, "Robot Model: Flex") {
		t.Fatalf("expected canonical rendering, got %q", structured)
	}

	raw := "My hand-written config\nRobot Model: OT-2"
	state.RawConfig = &raw
	if got := state.HardwareText(); got != raw {
		t.Errorf("raw override must be used verbatim, got %q", got)
	}
}
