package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accruemind/accrual-engine/presets"
	"github.com/accruemind/accrual-engine/store/sqlite"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_MigrationsApplied(t *testing.T) {
	store := newTestStore(t)

	version, dirty, err := store.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestStore_SaveAndGetPreset(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	// GIVEN: a stored preset
	rec := presets.Record{
		ID:         "retirement",
		Name:       "Retirement",
		Category:   presets.CategoryRetirement,
		ConfigJSON: `{"id":"retirement"}`,
	}
	require.NoError(t, store.SavePreset(ctx, rec))

	// WHEN: reading it back
	got, err := store.GetPreset(ctx, "retirement")

	// THEN
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Retirement", got.Name)
	assert.Equal(t, presets.CategoryRetirement, got.Category)
	assert.Equal(t, `{"id":"retirement"}`, got.ConfigJSON)
	assert.Equal(t, 1, got.Version)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestStore_UpsertBumpsVersion(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.SavePreset(ctx, presets.Record{ID: "a", Name: "A", ConfigJSON: "{}"}))
	require.NoError(t, store.SavePreset(ctx, presets.Record{ID: "a", Name: "A2", ConfigJSON: "{}"}))

	got, err := store.GetPreset(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, "A2", got.Name)
}

func TestStore_GetMissingReturnsNil(t *testing.T) {
	got, err := newTestStore(t).GetPreset(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ListDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, r := range []presets.Record{
		{ID: "c", Name: "Charlie", ConfigJSON: "{}"},
		{ID: "a", Name: "Alpha", ConfigJSON: "{}"},
		{ID: "b", Name: "Bravo", ConfigJSON: "{}"},
	} {
		require.NoError(t, store.SavePreset(ctx, r))
	}

	list, err := store.ListPresets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"Alpha", "Bravo", "Charlie"}, []string{list[0].Name, list[1].Name, list[2].Name})

	require.NoError(t, store.DeletePreset(ctx, "b"))
	list, err = store.ListPresets(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, store.DeletePreset(ctx, "missing"))
}

func TestStore_ReopenFileKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "presets.db")

	store, err := sqlite.New(path)
	require.NoError(t, err)
	require.NoError(t, store.SavePreset(ctx, presets.Record{ID: "a", Name: "A", ConfigJSON: "{}"}))
	require.NoError(t, store.Close())

	// Reopening runs migrations again; they must be a no-op.
	store, err = sqlite.New(path)
	require.NoError(t, err)
	defer store.Close()

	got, err := store.GetPreset(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
}
