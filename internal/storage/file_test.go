package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "data", "workspace.json"))
	require.NoError(t, err)
	return store
}

func TestNewFileStore_EmptyPath(t *testing.T) {
	_, err := NewFileStore("  ")
	assert.ErrorIs(t, err, ErrEmptyString)
}

func TestFileStore_LoadMissing(t *testing.T) {
	store := newTestStore(t)

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Trips)
	assert.Empty(t, state.Expenses)
}

func TestFileStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, sampleState()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(store.Path()), 0750))
	require.NoError(t, os.WriteFile(store.Path(), []byte(`{"trips":1}`), 0600))

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestFileStore_CanceledContext(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Save(ctx, sampleState()), context.Canceled)
}

func TestFileStore_Import(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Save(ctx, &model.AppState{Trips: []model.Trip{{ID: "old"}}}))

	t.Run("rejected file leaves workspace unchanged", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"trips":[]}`), 0600))

		_, err := store.Import(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidShape)

		state, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, state.Trips, 1)
		assert.Equal(t, "old", state.Trips[0].ID)
	})

	t.Run("valid file replaces workspace", func(t *testing.T) {
		other, err := NewFileStore(filepath.Join(t.TempDir(), "other.json"))
		require.NoError(t, err)
		require.NoError(t, other.Save(ctx, sampleState()))

		imported, err := store.Import(ctx, other.Path())
		require.NoError(t, err)
		assert.Equal(t, sampleState(), imported)

		state, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, sampleState(), state)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Import(ctx, filepath.Join(t.TempDir(), "nope.json"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestFileStore_Export(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	store.now = func() time.Time { return time.UnixMilli(1735689600000) }
	require.NoError(t, store.Save(ctx, sampleState()))

	dir := t.TempDir()
	path, err := store.Export(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "travel-mate-1735689600000.json"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	exported, err := Decode(f)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), exported)
}
