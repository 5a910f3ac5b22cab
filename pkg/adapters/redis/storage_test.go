package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notepad/pkg/adapters/redis"
	"github.com/aretw0/notepad/pkg/core"
)

func mockRedisServer(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func openStorage(t *testing.T, addr string) *redis.Storage {
	t.Helper()
	s, err := redis.Open(context.Background(), redis.Config{Addr: addr})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	srv := mockRedisServer(t)
	s := openStorage(t, srv.Addr())

	_, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "k", "v"))
	v, found, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "v", v)

	stored, err := srv.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", stored)
	assert.Equal(t, 0, int(srv.TTL("k")), "values must not expire")
}

func TestStorage_ServerFailure(t *testing.T) {
	ctx := context.Background()
	srv := mockRedisServer(t)
	s := openStorage(t, srv.Addr())

	srv.SetError("READONLY you can't write against a read only replica")
	assert.Error(t, s.Set(ctx, "k", "v"))
	_, _, err := s.Get(ctx, "k")
	assert.Error(t, err)
	srv.SetError("")

	assert.NoError(t, s.Set(ctx, "k", "v"))
}

func TestOpen_ConnectionFailure(t *testing.T) {
	srv := mockRedisServer(t)
	addr := srv.Addr()
	srv.Close()

	_, err := redis.Open(context.Background(), redis.Config{Addr: addr})
	assert.Error(t, err)
}

func TestStorage_WriteFailureIsReportedNotFatal(t *testing.T) {
	ctx := context.Background()
	srv := mockRedisServer(t)
	s := openStorage(t, srv.Addr())

	store := core.NewNoteStore(s)
	store.Load(ctx)

	srv.SetError("OOM command not allowed")
	n := store.Create(ctx, core.Input{Title: "in memory only"})
	srv.SetError("")

	_, ok := store.GetByID(n.ID)
	assert.True(t, ok)
	assert.NotEmpty(t, store.State().(core.StoreState).LastPersistError)
	assert.False(t, srv.Exists(core.DefaultKey))
}

func TestStorage_State(t *testing.T) {
	srv := mockRedisServer(t)
	s := openStorage(t, srv.Addr())

	state := s.State().(redis.StorageState)
	assert.Equal(t, srv.Addr(), state.Addr)
	assert.Equal(t, "redis", s.ComponentType())
}
