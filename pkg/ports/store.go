package ports

import "context"

// ConfigStore persists the durable hardware-configuration bundle under a
// single fixed entry. Implementations must be safe for concurrent use.
type ConfigStore interface {
	// Save writes the serialized bundle, replacing any previous entry.
	Save(ctx context.Context, data []byte) error

	// Load returns the stored bundle, or domain.ErrConfigNotFound when no
	// entry exists.
	Load(ctx context.Context) ([]byte, error)

	// Clear removes the entry. Clearing a missing entry is not an error.
	Clear(ctx context.Context) error
}
