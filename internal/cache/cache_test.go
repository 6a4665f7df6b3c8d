package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"asset-tracker/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func setupCacheTest() (*Cache, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	repo := repositories.NewMemoryCacheRepository(clock)
	return New(repo, DefaultTTL, zap.NewNop()), clock
}

type payload struct {
	Names []string `json:"names"`
}

func TestRemember_TTL(t *testing.T) {
	ctx := context.Background()
	c, clock := setupCacheTest()

	var loads int
	load := func(context.Context) (payload, error) {
		loads++
		return payload{Names: []string{"Laptop"}}, nil
	}

	v, err := Remember(ctx, c, "reference_lists", load)
	require.NoError(t, err)
	assert.Equal(t, []string{"Laptop"}, v.Names)

	clock.Advance(4 * time.Minute)
	_, err = Remember(ctx, c, "reference_lists", load)
	require.NoError(t, err)
	assert.Equal(t, 1, loads, "second read within TTL is served from cache")

	clock.Advance(2 * time.Minute)
	_, err = Remember(ctx, c, "reference_lists", load)
	require.NoError(t, err)
	assert.Equal(t, 2, loads, "expired entry is reloaded")
}

func TestRemember_Invalidate(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCacheTest()

	var loads int
	load := func(context.Context) (int, error) {
		loads++
		return loads, nil
	}

	first, err := Remember(ctx, c, "sync_references", load)
	require.NoError(t, err)
	require.NoError(t, c.Invalidate(ctx, "sync_references", "reference_lists"))

	second, err := Remember(ctx, c, "sync_references", load)
	require.NoError(t, err)
	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestRemember_LoadErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCacheTest()
	boom := errors.New("sheet unavailable")

	_, err := Remember(ctx, c, "k", func(context.Context) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)

	v, err := Remember(ctx, c, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestRemember_ConcurrentMissesLoadOnce(t *testing.T) {
	ctx := context.Background()
	c, _ := setupCacheTest()

	var loads atomic.Int32
	release := make(chan struct{})
	load := func(context.Context) (int, error) {
		loads.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 10)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := Remember(ctx, c, "location_room_map", load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}

	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), loads.Load())
	for _, v := range results {
		assert.Equal(t, 42, v)
	}
}
