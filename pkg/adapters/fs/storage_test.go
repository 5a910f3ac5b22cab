package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/aretw0/notepad/pkg/adapters/fs"
	"github.com/aretw0/notepad/pkg/core"
)

func newStorage(t *testing.T) *fs.Storage {
	t.Helper()
	s := fs.NewStorage(fs.Config{Path: filepath.Join(t.TempDir(), "data")})
	require.NoError(t, s.Initialize(context.Background()))
	return s
}

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	_, found, err := s.Get(ctx, core.DefaultKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, core.DefaultKey, `[{"id":"a"}]`))
	v, found, err := s.Get(ctx, core.DefaultKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"a"}]`, v)

	require.NoError(t, s.Set(ctx, core.DefaultKey, `[]`))
	v, _, err = s.Get(ctx, core.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	_, err = os.Stat(filepath.Join(s.Path, core.DefaultKey+fs.FileExt))
	assert.NoError(t, err)
}

func TestStorage_RejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	for _, key := range []string{"", "..", "../escape", `a\b`, "nested/key", fs.TempFilePrefix + "x"} {
		assert.Error(t, s.Set(ctx, key, "x"), key)
		_, _, err := s.Get(ctx, key)
		assert.Error(t, err, key)
	}
}

func TestStorage_Initialize(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates Directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b")
		require.NoError(t, fs.NewStorage(fs.Config{Path: dir}).Initialize(ctx))
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("MustExist Fails On Missing Directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")
		err := fs.NewStorage(fs.Config{Path: dir, MustExist: true}).Initialize(ctx)
		assert.Error(t, err)
	})

	t.Run("MustExist Fails On File", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0644))
		err := fs.NewStorage(fs.Config{Path: file, MustExist: true}).Initialize(ctx)
		assert.Error(t, err)
	})
}

func TestStorage_State(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	state := s.State().(fs.StorageState)
	assert.Nil(t, state.LastWrite)
	assert.False(t, state.WatcherActive)

	require.NoError(t, s.Set(ctx, "k", "v"))
	state = s.State().(fs.StorageState)
	assert.NotNil(t, state.LastWrite)
	assert.Equal(t, "fs", s.ComponentType())
}

func TestStorage_BacksNoteStore(t *testing.T) {
	ctx := context.Background()
	s := newStorage(t)

	store := core.NewNoteStore(s)
	store.Load(ctx)
	created := store.Create(ctx, core.Input{Title: "persisted", Tags: []string{"fs"}})

	reopened := core.NewNoteStore(s)
	reopened.Load(ctx)
	got, ok := reopened.GetByID(created.ID)
	require.True(t, ok)
	assert.Equal(t, created, got)
	assert.Equal(t, "fs", reopened.State().(core.StoreState).StorageType)
}

func TestStorage_Watch(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := newStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := s.Watch(ctx, core.DefaultKey)
	require.NoError(t, err)

	// Unrelated keys are filtered out.
	require.NoError(t, s.Set(ctx, "other", "x"))
	require.NoError(t, s.Set(ctx, core.DefaultKey, "[]"))

	select {
	case e := <-events:
		assert.Equal(t, core.DefaultKey, e.Key)
		assert.NotEmpty(t, e.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond, "events channel should close after cancel")
	assert.False(t, s.State().(fs.StorageState).WatcherActive)
}

func TestStorage_WatchRejectsBadKey(t *testing.T) {
	s := newStorage(t)
	_, err := s.Watch(context.Background(), "../x")
	assert.Error(t, err)
}
