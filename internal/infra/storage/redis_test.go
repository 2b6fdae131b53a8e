package storage_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"scm/internal/infra/storage"
	"scm/internal/logger"
	repo "scm/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStorage(t *testing.T) (*storage.RedisStorage, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := storage.NewRedisClient(mr.Addr())
	t.Cleanup(func() { _ = rdb.Close() })

	s := storage.NewRedisStorage(rdb, "", logger.Discard())
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStorage_GetSet(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStorage(t)

	_, ok, err := s.GetItem(ctx, repo.KeyCart)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.SetItem(ctx, repo.KeyCart, `[{"id":1}]`))

	v, ok, err := s.GetItem(ctx, repo.KeyCart)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":1}]`, v)

	stored, err := mr.Get("scm:doc:scm_cart")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, stored)
}

func TestRedisStorage_Unavailable(t *testing.T) {
	ctx := context.Background()
	s, mr := newRedisStorage(t)
	mr.Close()

	_, _, err := s.GetItem(ctx, repo.KeyCart)
	assert.ErrorIs(t, err, repo.ErrStorageUnavailable)

	err = s.SetItem(ctx, repo.KeyCart, "[]")
	assert.ErrorIs(t, err, repo.ErrStorageUnavailable)
}

func TestRedisStorage_PublishesChanges(t *testing.T) {
	ctx := context.Background()
	s, _ := newRedisStorage(t)

	var mu sync.Mutex
	var got []repo.ChangeEvent
	unsubscribe := s.Subscribe(func(ev repo.ChangeEvent) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, ev)
	})
	defer unsubscribe()

	require.NoError(t, s.SetItem(repo.WithOrigin(ctx, "tab-a"), repo.KeyOrders, "[]"))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, repo.ChangeEvent{Key: repo.KeyOrders, Origin: "tab-a"}, got[0])
}
