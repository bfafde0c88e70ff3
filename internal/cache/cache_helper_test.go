package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHelper(t *testing.T) *CacheHelper {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCacheHelper(client, "content:")
}

type payload struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func TestCacheSetGet(t *testing.T) {
	helper := newTestHelper(t)
	ctx := context.Background()

	in := payload{ID: "abc", Count: 3}
	require.NoError(t, helper.Set(ctx, "id:abc", in, time.Minute))

	var out payload
	require.NoError(t, helper.Get(ctx, "id:abc", &out))
	assert.Equal(t, in, out)
}

func TestCacheGetMiss(t *testing.T) {
	helper := newTestHelper(t)

	var out payload
	err := helper.Get(context.Background(), "id:missing", &out)
	assert.ErrorIs(t, err, ErrCacheNotFound)
}

func TestCacheOrExecute(t *testing.T) {
	helper := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	fetch := func() (interface{}, error) {
		calls++
		return payload{ID: "abc", Count: calls}, nil
	}

	var first payload
	require.NoError(t, helper.CacheOrExecute(ctx, "id:abc", &first, time.Minute, fetch))
	assert.Equal(t, 1, first.Count)

	// Second read must come from cache, not the fetch function
	var second payload
	require.NoError(t, helper.CacheOrExecute(ctx, "id:abc", &second, time.Minute, fetch))
	assert.Equal(t, 1, second.Count)
	assert.Equal(t, 1, calls)
}

func TestCacheInvalidatePattern(t *testing.T) {
	helper := newTestHelper(t)
	ctx := context.Background()

	require.NoError(t, helper.Set(ctx, "list:all", payload{ID: "a"}, time.Minute))
	require.NoError(t, helper.Set(ctx, "list:notes", payload{ID: "b"}, time.Minute))
	require.NoError(t, helper.Set(ctx, "id:abc", payload{ID: "abc"}, time.Minute))

	require.NoError(t, helper.InvalidatePattern(ctx, "list:*"))

	var out payload
	assert.ErrorIs(t, helper.Get(ctx, "list:all", &out), ErrCacheNotFound)
	assert.ErrorIs(t, helper.Get(ctx, "list:notes", &out), ErrCacheNotFound)
	assert.NoError(t, helper.Get(ctx, "id:abc", &out))
}

func TestCacheNilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "content:")
	ctx := context.Background()

	assert.NoError(t, helper.Set(ctx, "id:abc", payload{}, time.Minute))
	assert.ErrorIs(t, helper.Get(ctx, "id:abc", &payload{}), ErrCacheNotAvailable)

	// Cache-aside still serves the fetched value
	var out payload
	err := helper.CacheOrExecute(ctx, "id:abc", &out, time.Minute, func() (interface{}, error) {
		return payload{ID: "fresh", Count: 7}, nil
	})
	assert.NoError(t, err)
	assert.Equal(t, "fresh", out.ID)
}
