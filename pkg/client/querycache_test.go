// AngelaMos | 2026
// querycache_test.go

package client

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryCacheDeduplicatesConcurrentLoads(t *testing.T) {
	c := NewQueryCache(time.Minute)

	var calls atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (any, error) {
		calls.Add(1)
		<-release
		return "paid", nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]any, callers)
	for i := range callers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Get(context.Background(), "role:hr@acme.io", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		assert.Equal(t, "paid", v)
	}

	v, err := c.Get(context.Background(), "role:hr@acme.io", load)
	require.NoError(t, err)
	assert.Equal(t, "paid", v)
	assert.Equal(t, int32(1), calls.Load())
}

func TestQueryCacheExpires(t *testing.T) {
	c := NewQueryCache(time.Minute)
	now := time.Date(2026, 5, 17, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	var calls int
	load := func(context.Context) (any, error) {
		calls++
		return calls, nil
	}

	v, _ := c.Get(context.Background(), "k", load)
	assert.Equal(t, 1, v)

	now = now.Add(59 * time.Second)
	v, _ = c.Get(context.Background(), "k", load)
	assert.Equal(t, 1, v)

	now = now.Add(time.Second)
	v, _ = c.Get(context.Background(), "k", load)
	assert.Equal(t, 2, v)
}

func TestQueryCacheDoesNotStoreErrors(t *testing.T) {
	c := NewQueryCache(time.Minute)
	boom := errors.New("boom")

	_, err := c.Get(context.Background(), "k", func(context.Context) (any, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, c.Len())

	v, err := c.Get(context.Background(), "k", func(context.Context) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", v)
}

func TestQueryCacheInvalidateByPrefix(t *testing.T) {
	c := NewQueryCache(time.Minute)
	ctx := context.Background()
	value := func(v string) func(context.Context) (any, error) {
		return func(context.Context) (any, error) { return v, nil }
	}

	_, _ = c.Get(ctx, "company:a@acme.io", value("a"))
	_, _ = c.Get(ctx, "company:b@acme.io", value("b"))
	_, _ = c.Get(ctx, "role:a@acme.io", value("r"))
	require.Equal(t, 3, c.Len())

	c.Invalidate("company:")
	assert.Equal(t, 1, c.Len())

	v, _ := c.Get(ctx, "company:a@acme.io", value("a2"))
	assert.Equal(t, "a2", v)

	c.Invalidate("")
	assert.Zero(t, c.Len())
}

func TestQueryCacheNotifiesOverlappingSubscribers(t *testing.T) {
	c := NewQueryCache(time.Minute)

	var company, role, all []string
	unsubscribe := c.Subscribe("company:a@acme.io", func(p string) { company = append(company, p) })
	c.Subscribe("role:", func(p string) { role = append(role, p) })
	c.Subscribe("", func(p string) { all = append(all, p) })

	c.Invalidate("company:")
	c.Invalidate("role:a@acme.io")

	assert.Equal(t, []string{"company:"}, company)
	assert.Equal(t, []string{"role:a@acme.io"}, role)
	assert.Equal(t, []string{"company:", "role:a@acme.io"}, all)

	unsubscribe()
	unsubscribe()
	c.Invalidate("company:")
	assert.Len(t, company, 1)
}

func TestQueryCacheDropsResultInvalidatedMidLoad(t *testing.T) {
	c := NewQueryCache(time.Minute)
	started := make(chan struct{})
	release := make(chan struct{})

	done := make(chan any)
	go func() {
		v, _ := c.Get(context.Background(), "role:hr@acme.io", func(context.Context) (any, error) {
			close(started)
			<-release
			return "pending", nil
		})
		done <- v
	}()

	<-started
	c.Invalidate("role:")
	close(release)
	assert.Equal(t, "pending", <-done)

	v, err := c.Get(context.Background(), "role:hr@acme.io", func(context.Context) (any, error) {
		return "paid", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "paid", v)
}

func TestQueryCacheCallerCancellation(t *testing.T) {
	c := NewQueryCache(time.Minute)
	release := make(chan struct{})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Get(ctx, "k", func(context.Context) (any, error) {
		<-release
		return "late", nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}
