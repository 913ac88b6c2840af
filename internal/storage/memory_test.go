package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smarttodo/smarttodo/internal/types"
)

func TestMemoryStoreAppendAndList(t *testing.T) {
	store := NewMemoryStore(filepath.Join(t.TempDir(), "memory.json"))

	entries := []types.ReflectionEntry{
		{Date: "2026-08-29", Summary: "Good day.", CompletedCount: 3, PendingCount: 1},
		{Date: "2026-08-30", Summary: "Slower day.", CompletedCount: 1, PendingCount: 4},
	}
	for _, e := range entries {
		require.NoError(t, store.Append(e))
	}

	got, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestMemoryStoreAllowsDuplicateDates(t *testing.T) {
	store := NewMemoryStore(filepath.Join(t.TempDir(), "memory.json"))

	first := types.ReflectionEntry{Date: "2026-08-30", Summary: "Morning check-in."}
	second := types.ReflectionEntry{Date: "2026-08-30", Summary: "Evening wrap-up."}
	require.NoError(t, store.Append(first))
	require.NoError(t, store.Append(second))

	got, err := store.List()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Morning check-in.", got[0].Summary)
	assert.Equal(t, "Evening wrap-up.", got[1].Summary)
}

func TestMemoryStoreMissingFileIsEmpty(t *testing.T) {
	store := NewMemoryStore(filepath.Join(t.TempDir(), "missing.json"))

	got, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStoreEmptyFileIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, err := NewMemoryStore(path).List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryStoreCorruptFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")
	require.NoError(t, os.WriteFile(path, []byte("[oops"), 0o644))

	store := NewMemoryStore(path)
	_, err := store.List()
	require.Error(t, err)

	// A corrupt file also blocks appends; we never clobber user data.
	err = store.Append(types.ReflectionEntry{Date: "2026-08-30"})
	require.Error(t, err)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "memory.json")

	entry := types.ReflectionEntry{
		Date:           "2026-08-30",
		Summary:        "Finished the report and went for a run.",
		CompletedCount: 2,
		PendingCount:   3,
	}
	require.NoError(t, NewMemoryStore(path).Append(entry))

	got, err := NewMemoryStore(path).List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, entry, got[0])
}
