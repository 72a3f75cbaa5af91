package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/placebi/internal/ledger"
	"github.com/MrJamesThe3rd/placebi/internal/ledger/store"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return mr, client
}

func TestRedis_LoadMissing(t *testing.T) {
	_, client := newRedis(t)

	_, err := store.NewRedis(client, "placebi-storage").LoadState(context.Background())
	assert.ErrorIs(t, err, ledger.ErrNoState)
}

func TestRedis_SaveAndLoad(t *testing.T) {
	mr, client := newRedis(t)
	s := store.NewRedis(client, "placebi-storage")
	ctx := context.Background()

	require.NoError(t, s.SaveState(ctx, []byte(`{"revenues":[]}`)))
	require.NoError(t, s.SaveState(ctx, []byte(`{"expenses":[]}`)))

	got, err := s.LoadState(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"expenses":[]}`, string(got))

	raw, err := mr.Get("placebi-storage")
	require.NoError(t, err)
	assert.Equal(t, `{"expenses":[]}`, raw)
	assert.Zero(t, mr.TTL("placebi-storage"))
	assert.False(t, mr.Exists("lock:placebi-storage"), "lock must be released after a write")
}

func TestRedis_SaveWaitsForLock(t *testing.T) {
	mr, client := newRedis(t)
	s := store.NewRedis(client, "placebi-storage")

	held, err := redislock.New(client).Obtain(context.Background(), "lock:placebi-storage", time.Minute, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err = s.SaveState(ctx, []byte(`{"revenues":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locking placebi-storage")
	assert.False(t, mr.Exists("placebi-storage"))

	require.NoError(t, held.Release(context.Background()))
	require.NoError(t, s.SaveState(context.Background(), []byte(`{"revenues":[]}`)))
	assert.True(t, mr.Exists("placebi-storage"))
}

func TestRedis_LoadUnavailable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()

	mr.Close()

	_, err = store.NewRedis(client, "placebi-storage").LoadState(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ledger.ErrNoState)
}

func TestRedis_WithService(t *testing.T) {
	_, client := newRedis(t)
	ctx := context.Background()

	svc := ledger.NewService(store.NewRedis(client, "placebi-storage"))
	require.NoError(t, svc.SetRestaurant(ctx, ledger.Restaurant{ID: "r1", Name: "Chez Awa", Currency: "XOF"}))

	reloaded := ledger.NewService(store.NewRedis(client, "placebi-storage"))
	require.NoError(t, reloaded.Load(ctx))

	r, ok := reloaded.Restaurant()
	require.True(t, ok)
	assert.Equal(t, "Chez Awa", r.Name)
}
