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

func newTestCache(t *testing.T) *RedisCache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCacheFromClient(client)
}

func TestRedisCacheGetSet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, err := c.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.Set(ctx, "k", "v", time.Minute))
	val, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", val)

	require.NoError(t, c.Delete(ctx, "k"))
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisCacheJSONRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type entry struct {
		UniversityID string `json:"university_id"`
		Status       string `json:"status"`
	}
	in := []entry{{"usa-1", "locked"}, {"uk-1", "shortlisted"}}

	require.NoError(t, c.SetJSON(ctx, SelectionsKey(42), in, time.Minute))

	var out []entry
	require.NoError(t, c.GetJSON(ctx, SelectionsKey(42), &out))
	assert.Equal(t, in, out)
}

func TestCacheKeys(t *testing.T) {
	assert.Equal(t, "cache:selections:7", SelectionsKey(7))
	assert.NotEqual(t, SelectionsKey(1), SelectionsKey(2))
}
