package kv_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/claude/liftlog/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// INFO: https://github.com/go-redis/redis/issues/1029
		goleak.IgnoreTopFunction(
			"github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper",
		),
	)
}

type closableStore interface {
	kv.Store
	Close() error
}

func backends(t *testing.T) map[string]kv.Store {
	t.Helper()

	sqliteStore, err := kv.OpenSQLite(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	fileStore, err := kv.NewFile(t.TempDir())
	require.NoError(t, err)

	stores := map[string]closableStore{
		"memory": kv.NewMemory(),
		"sqlite": sqliteStore,
		"file":   fileStore,
	}
	out := make(map[string]kv.Store, len(stores)+1)
	for name, s := range stores {
		t.Cleanup(func() { _ = s.Close() })
		out[name] = s
	}
	out["cached"] = kv.NewCached(kv.NewMemory(), 1)
	return out
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, found, err := store.Get(ctx, "absent")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Set(ctx, "fitness_app_workout_sets", []byte(`[{"id":"a"}]`)))
			value, found, err := store.Get(ctx, "fitness_app_workout_sets")
			require.NoError(t, err)
			assert.True(t, found)
			assert.JSONEq(t, `[{"id":"a"}]`, string(value))

			// overwrite replaces the whole blob
			require.NoError(t, store.Set(ctx, "fitness_app_workout_sets", []byte(`[]`)))
			value, _, err = store.Get(ctx, "fitness_app_workout_sets")
			require.NoError(t, err)
			assert.Equal(t, "[]", string(value))

			// keys are independent
			require.NoError(t, store.Set(ctx, "fitness_app_favorites", []byte(`["squat"]`)))
			require.NoError(t, store.Delete(ctx, "fitness_app_workout_sets"))
			_, found, err = store.Get(ctx, "fitness_app_workout_sets")
			require.NoError(t, err)
			assert.False(t, found)
			_, found, err = store.Get(ctx, "fitness_app_favorites")
			require.NoError(t, err)
			assert.True(t, found)

			// deleting an absent key succeeds
			assert.NoError(t, store.Delete(ctx, "never-written"))
		})
	}
}

func TestStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, store := range []kv.Store{kv.NewMemory(), mustFile(t)} {
		err := store.Set(ctx, "k", []byte("v"))
		require.Error(t, err)
		assert.ErrorIs(t, err, kv.ErrStorage)
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestStorageError(t *testing.T) {
	cause := errors.New("disk full")
	err := kv.Wrap("set", "fitness_app_favorites", cause)

	assert.ErrorIs(t, err, kv.ErrStorage)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "fitness_app_favorites")

	var se *kv.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "set", se.Op)

	// already wrapped errors are kept as-is
	assert.Equal(t, err, kv.Wrap("get", "other", err))
	assert.NoError(t, kv.Wrap("get", "k", nil))
}

func TestSQLite_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "liftlog.db")

	db, err := kv.OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, "fitness_app_favorites", []byte(`["deadlift"]`)))
	require.NoError(t, db.Close())

	// reopening runs migrations again without error
	db, err = kv.OpenSQLite(path)
	require.NoError(t, err)
	defer db.Close()

	value, found, err := db.Get(ctx, "fitness_app_favorites")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `["deadlift"]`, string(value))
}

func TestSQLite_ClosedDBReturnsStorageError(t *testing.T) {
	db, err := kv.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, _, err = db.Get(context.Background(), "k")
	assert.ErrorIs(t, err, kv.ErrStorage)
}

func TestFile_EscapesKeys(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f, err := kv.NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Set(ctx, "../escape/attempt", []byte("x")))
	matches, err := filepath.Glob(filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	value, found, err := f.Get(ctx, "../escape/attempt")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "x", string(value))
}

func mustFile(t *testing.T) *kv.File {
	t.Helper()
	f, err := kv.NewFile(t.TempDir())
	require.NoError(t, err)
	return f
}
