package persistence

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labscript-ai/labscript/internal/adapters/memory"
	"github.com/labscript-ai/labscript/pkg/domain"
	"github.com/labscript-ai/labscript/pkg/workflow"
)

func configuredStore(t *testing.T) *workflow.Store {
	t.Helper()

	store := workflow.NewStore()
	dispatch := func(a workflow.Action) {
		_, err := store.Dispatch(a)
		require.NoError(t, err)
	}

	dispatch(workflow.SetModel{Model: domain.ModelFlex})
	dispatch(workflow.SetAPIVersion{Version: "2.21"})
	dispatch(workflow.SetLeftInstrument{Instrument: "flex_1channel_1000"})
	dispatch(workflow.SetGripper{Enabled: true})
	dispatch(workflow.SetLabware{Slot: "A1", Labware: &domain.Labware{
		Kind:        "tiprack",
		Name:        "opentrons_flex_96_tiprack_1000ul",
		DisplayName: "Flex 96 Tip Rack 1000 uL",
	}})
	dispatch(workflow.SetLabware{Slot: "C2", Labware: &domain.Labware{
		Kind:        "plate",
		Name:        "corning_96_wellplate_360ul_flat",
		DisplayName: "Corning 96 Well Plate",
	}})

	return store
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(memory.NewStore())
	source := configuredStore(t)

	require.NoError(t, manager.Save(ctx, source.State()))

	fresh := workflow.NewStore()
	manager.Seed(ctx, fresh)

	want := source.State()
	got := fresh.State()
	assert.Equal(t, want.Robot, got.Robot)
	assert.Equal(t, want.Deck, got.Deck)
}

func TestSeedMissingEntryKeepsDefaults(t *testing.T) {
	manager := NewManager(memory.NewStore())
	store := workflow.NewStore()

	manager.Seed(context.Background(), store)

	assert.Equal(t, domain.NewWorkflowState(), store.State())
}

func TestSeedCorruptEntryKeepsDefaults(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	require.NoError(t, backend.Save(ctx, []byte("{not json")))

	store := workflow.NewStore()
	NewManager(backend).Seed(ctx, store)

	assert.Equal(t, domain.NewWorkflowState(), store.State())
}

func TestSeedAbsentFieldsLeaveStateUntouched(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()

	// Only the API version is present in the stored bundle.
	data, err := json.Marshal(Bundle{APIVersion: strPtr("2.19")})
	require.NoError(t, err)
	require.NoError(t, backend.Save(ctx, data))

	store := workflow.NewStore()
	_, err = store.Dispatch(workflow.SetLeftInstrument{Instrument: "flex_8channel_300"})
	require.NoError(t, err)

	NewManager(backend).Seed(ctx, store)

	state := store.State()
	assert.Equal(t, "2.19", state.Robot.APIVersion)
	assert.Equal(t, domain.Instrument("flex_8channel_300"), state.Robot.LeftInstrument)
	assert.Equal(t, domain.ModelFlex, state.Robot.Model)
}

func TestSeedSkipsForeignSlots(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()

	model := domain.ModelOT2
	data, err := json.Marshal(Bundle{
		Model: &model,
		Deck: map[string]*domain.Labware{
			"3":  {Kind: "plate", Name: "nest_96_wellplate_200ul_flat", DisplayName: "NEST 96 Well Plate"},
			"A1": {Kind: "plate", Name: "foreign", DisplayName: "Foreign"}, // Flex slot, not OT-2
		},
	})
	require.NoError(t, err)
	require.NoError(t, backend.Save(ctx, data))

	store := workflow.NewStore()
	NewManager(backend).Seed(ctx, store)

	state := store.State()
	assert.Equal(t, domain.ModelOT2, state.Robot.Model)
	require.NotNil(t, state.Deck["3"])
	assert.Equal(t, "nest_96_wellplate_200ul_flat", state.Deck["3"].Name)
	assert.NotContains(t, state.Deck, "A1")
}

func TestSaveIncludesRawOverride(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(memory.NewStore())

	source := workflow.NewStore()
	_, err := source.Dispatch(workflow.SetRawConfig{Text: strPtr("Robot: custom rig")})
	require.NoError(t, err)

	require.NoError(t, manager.Save(ctx, source.State()))

	fresh := workflow.NewStore()
	manager.Seed(ctx, fresh)

	state := fresh.State()
	require.NotNil(t, state.RawConfig)
	assert.Equal(t, "Robot: custom rig", *state.RawConfig)
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(memory.NewStore())

	require.NoError(t, manager.Save(ctx, workflow.NewStore().State()))
	require.NoError(t, manager.Clear(ctx))

	assert.Nil(t, manager.Load(ctx))
}

func strPtr(s string) *string { return &s }
