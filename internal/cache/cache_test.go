// AngelaMos | 2026
// cache_test.go

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

	"github.com/carterperez-dev/asset-management/internal/config"
)

type roleEntry struct {
	Role          string `json:"role"`
	PaymentStatus string `json:"payment_status"`
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return New(client, config.CacheConfig{
		Enabled: true,
		TTL:     time.Minute,
		Prefix:  "am",
	}), mr
}

func TestKey(t *testing.T) {
	c, _ := setupTestCache(t)
	assert.Equal(t, "am:role:hr@acme.io", c.Key("role", "HR@Acme.io"))
}

func TestSetAndGet(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	want := roleEntry{Role: "HR", PaymentStatus: "paid"}
	require.NoError(t, c.Set(ctx, "am:role:x", want))

	var got roleEntry
	found, err := c.Get(ctx, "am:role:x", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)

	assert.Equal(t, time.Minute, mr.TTL("am:role:x"))
}

func TestGetNotFound(t *testing.T) {
	c, _ := setupTestCache(t)

	var out roleEntry
	found, err := c.Get(context.Background(), "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	c, mr := setupTestCache(t)
	require.NoError(t, mr.Set("bad", "not-json"))

	var out roleEntry
	found, err := c.Get(context.Background(), "bad", &out)
	assert.False(t, found)
	assert.Error(t, err)
}

func TestInvalidate(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a", 1))
	require.NoError(t, c.Set(ctx, "b", 2))
	require.NoError(t, c.Invalidate(ctx, "a", "b"))

	var out int
	found, err := c.Get(ctx, "a", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRememberCallsLoaderOnce(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	calls := 0
	load := func(context.Context) (roleEntry, error) {
		calls++
		return roleEntry{Role: "employee"}, nil
	}

	first, err := Remember(ctx, c, "am:role:e", load)
	require.NoError(t, err)
	second, err := Remember(ctx, c, "am:role:e", load)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestRememberDoesNotCacheErrors(t *testing.T) {
	c, mr := setupTestCache(t)

	_, err := Remember(context.Background(), c, "k", func(context.Context) (int, error) {
		return 0, errors.New("db down")
	})
	require.Error(t, err)
	assert.False(t, mr.Exists("k"))
}

func TestDisabledCacheAlwaysLoads(t *testing.T) {
	c := New(nil, config.CacheConfig{Enabled: true})

	calls := 0
	for range 2 {
		_, err := Remember(context.Background(), c, "k", func(context.Context) (int, error) {
			calls++
			return 7, nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}
