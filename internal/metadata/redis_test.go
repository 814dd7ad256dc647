package metadata

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slipstream/filmography/internal/metadata/mock"
)

// unreachableRedis points at a port nothing listens on.
func unreachableRedis(t *testing.T) *RedisStore {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	store := NewRedisStoreWithClient(client, "test:", time.Minute, zerolog.Nop())
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestNewRedisStore_InvalidURL(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "http://not-redis", "p:", time.Minute, zerolog.Nop())
	assert.ErrorContains(t, err, "invalid URL")
}

func TestNewRedisStore_Unreachable(t *testing.T) {
	_, err := NewRedisStore(context.Background(), "redis://127.0.0.1:1/0", "p:", time.Minute, zerolog.Nop())
	assert.ErrorContains(t, err, "ping failed")
}

func TestRedisStore_FailuresAreMisses(t *testing.T) {
	store := unreachableRedis(t)
	ctx := context.Background()

	store.Set(ctx, "k", []byte("v"))
	_, ok := store.Get(ctx, "k")
	assert.False(t, ok)
	store.Clear(ctx)
	assert.Zero(t, store.Prune(ctx))
}

func TestService_UnreachableRedisStillServes(t *testing.T) {
	svc := NewService(mock.NewTMDBClient(), unreachableRedis(t), zerolog.Nop())

	results, err := svc.SearchPerson(context.Background(), "Spielberg")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 488, results[0].ID)
}
