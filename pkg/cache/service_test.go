package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type site struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTestService(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewService(client), mr
}

func TestGet_MissReturnsErrCacheMiss(t *testing.T) {
	svc, _ := newTestService(t)

	var out site
	err := svc.Get(context.Background(), "opshub:sites:detail:id:1", &out)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestSetGetDelete(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, "k", site{ID: 1, Name: "Lyon"}, time.Minute))
	assert.True(t, svc.Exists(ctx, "k"))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	var out site
	require.NoError(t, svc.Get(ctx, "k", &out))
	assert.Equal(t, "Lyon", out.Name)

	require.NoError(t, svc.Delete(ctx, "k"))
	assert.False(t, svc.Exists(ctx, "k"))
}

func TestGetOrSet_FetchesOnceThenServesFromCache(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return []site{{ID: 1, Name: "Lyon"}, {ID: 2, Name: "Paris"}}, nil
	}

	var first, second []site
	require.NoError(t, svc.GetOrSet(ctx, "list", time.Minute, fetch, &first))
	require.NoError(t, svc.GetOrSet(ctx, "list", time.Minute, fetch, &second))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Len(t, second, 2)
}

func TestGetOrSet_PropagatesFetcherError(t *testing.T) {
	svc, _ := newTestService(t)
	boom := errors.New("boom")

	var out site
	err := svc.GetOrSet(context.Background(), "k", time.Minute, func() (interface{}, error) {
		return nil, boom
	}, &out)

	assert.ErrorIs(t, err, boom)
	assert.False(t, svc.Exists(context.Background(), "k"))
}

func TestDeletePattern(t *testing.T) {
	svc, mr := newTestService(t)
	ctx := context.Background()
	require.NoError(t, svc.Set(ctx, "opshub:sites:a", 1, 0))
	require.NoError(t, svc.Set(ctx, "opshub:sites:b", 2, 0))
	require.NoError(t, svc.Set(ctx, "opshub:other", 3, 0))

	require.NoError(t, svc.DeletePattern(ctx, "opshub:sites:*"))

	assert.False(t, mr.Exists("opshub:sites:a"))
	assert.False(t, mr.Exists("opshub:sites:b"))
	assert.True(t, mr.Exists("opshub:other"))
}
