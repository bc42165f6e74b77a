package ports

import (
	"context"
	"testing"

	"github.com/labscript-ai/labscript/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunConfigStoreContract verifies that a ConfigStore implementation adheres
// to the interface contract. Every backend's test suite runs it.
func RunConfigStoreContract(t *testing.T, store ConfigStore) {
	ctx := context.Background()

	t.Run("Load Missing", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	})

	t.Run("Save and Load", func(t *testing.T) {
		payload := []byte(`{"model":"Flex","api_version":"2.20"}`)
		require.NoError(t, store.Save(ctx, payload))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, payload, loaded)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, []byte(`{"model":"Flex"}`)))
		require.NoError(t, store.Save(ctx, []byte(`{"model":"OT-2"}`)))

		loaded, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"model":"OT-2"}`), loaded)
	})

	t.Run("Clear", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, []byte(`{}`)))
		require.NoError(t, store.Clear(ctx))

		_, err := store.Load(ctx)
		assert.ErrorIs(t, err, domain.ErrConfigNotFound)

		// Clearing again must stay silent.
		assert.NoError(t, store.Clear(ctx))
	})
}
