package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/accruemind/accrual-engine/presets"
	"github.com/accruemind/accrual-engine/store/memory"
)

func TestMemory_SaveGetList(t *testing.T) {
	ctx := context.Background()
	m := memory.New()

	require.NoError(t, m.SavePreset(ctx, presets.Record{ID: "b", Name: "Beta", ConfigJSON: "{}"}))
	require.NoError(t, m.SavePreset(ctx, presets.Record{ID: "a", Name: "Alpha", ConfigJSON: "{}"}))

	got, err := m.GetPreset(ctx, "a")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.Version)
	assert.False(t, got.CreatedAt.IsZero())

	list, err := m.ListPresets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
}

func TestMemory_UpsertBumpsVersion(t *testing.T) {
	ctx := context.Background()
	m := memory.New()

	require.NoError(t, m.SavePreset(ctx, presets.Record{ID: "a", Name: "Alpha"}))
	require.NoError(t, m.SavePreset(ctx, presets.Record{ID: "a", Name: "Alpha v2"}))

	got, err := m.GetPreset(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, "Alpha v2", got.Name)
}

func TestMemory_MissingReturnsNil(t *testing.T) {
	got, err := memory.New().GetPreset(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemory_Delete(t *testing.T) {
	ctx := context.Background()
	m := memory.New()
	require.NoError(t, m.SavePreset(ctx, presets.Record{ID: "a", Name: "A"}))
	require.NoError(t, m.SavePreset(ctx, presets.Record{ID: "b", Name: "B"}))

	require.NoError(t, m.DeletePreset(ctx, "a"))
	list, _ := m.ListPresets(ctx)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].ID)

	require.NoError(t, m.DeletePreset(ctx, "missing"))
}
