package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/labscript-ai/labscript/internal/logging"
	"github.com/labscript-ai/labscript/pkg/domain"
	"github.com/labscript-ai/labscript/pkg/ports"
	"github.com/labscript-ai/labscript/pkg/workflow"
)

// Manager wires bundle snapshots to a ConfigStore backend.
type Manager struct {
	store  ports.ConfigStore
	logger *slog.Logger
}

// Option customizes a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for recovered persistence failures.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewManager creates a Manager over the given backend.
func NewManager(store ports.ConfigStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save snapshots the session's hardware configuration to the backend.
func (m *Manager) Save(ctx context.Context, state domain.WorkflowState) error {
	data, err := json.Marshal(Snapshot(state))
	if err != nil {
		return fmt.Errorf("encoding configuration bundle: %w", err)
	}
	if err := m.store.Save(ctx, data); err != nil {
		return fmt.Errorf("saving configuration bundle: %w", err)
	}
	return nil
}

// Load reads the stored bundle. A missing or corrupt entry returns nil with
// a log line; it is never an error for the caller.
func (m *Manager) Load(ctx context.Context) *Bundle {
	data, err := m.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrConfigNotFound) {
			m.logger.Warn("could not load stored configuration", "error", err)
		}
		return nil
	}

	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		m.logger.Warn("stored configuration is corrupt, ignoring", "error", err)
		return nil
	}
	return &b
}

// Clear removes the stored bundle.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Clear(ctx)
}

// Seed loads the stored bundle and applies it to the session field by
// field. Absent fields leave the live state untouched. Slots that do not
// exist on the seeded model are skipped with a log line rather than
// aborting the rest of the bundle.
func (m *Manager) Seed(ctx context.Context, store *workflow.Store) {
	b := m.Load(ctx)
	if b == nil {
		return
	}

	// Model first: it cascades, so every later field survives it.
	if b.Model != nil {
		if _, err := store.Dispatch(workflow.SetModel{Model: *b.Model}); err != nil {
			m.logger.Warn("stored model rejected, keeping defaults", "model", string(*b.Model), "error", err)
		}
	}
	if b.APIVersion != nil {
		_, _ = store.Dispatch(workflow.SetAPIVersion{Version: *b.APIVersion})
	}
	if b.LeftInstrument != nil {
		if _, err := store.Dispatch(workflow.SetLeftInstrument{Instrument: *b.LeftInstrument}); err != nil {
			m.logger.Warn("stored left instrument rejected", "instrument", string(*b.LeftInstrument), "error", err)
		}
	}
	if b.RightInstrument != nil {
		if _, err := store.Dispatch(workflow.SetRightInstrument{Instrument: *b.RightInstrument}); err != nil {
			m.logger.Warn("stored right instrument rejected", "instrument", string(*b.RightInstrument), "error", err)
		}
	}
	if b.UseGripper != nil {
		_, _ = store.Dispatch(workflow.SetGripper{Enabled: *b.UseGripper})
	}
	for _, slot := range domain.SlotsFor(store.State().Robot.Model) {
		lw, ok := b.Deck[slot]
		if !ok || lw == nil {
			continue
		}
		if _, err := store.Dispatch(workflow.SetLabware{Slot: slot, Labware: lw}); err != nil {
			m.logger.Warn("stored labware rejected", "slot", slot, "error", err)
		}
	}
	for slot := range b.Deck {
		if !domain.IsValidSlot(store.State().Robot.Model, slot) {
			m.logger.Warn("stored slot not on current deck, skipping", "slot", slot)
		}
	}
	if b.RawConfig != nil {
		_, _ = store.Dispatch(workflow.SetRawConfig{Text: b.RawConfig})
	}
}
