package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	ID     string `json:"id"`
	Events int    `json:"events"`
}

func TestTypedCache_GetDecodesJSON(t *testing.T) {
	l1 := InitL1Cache()
	l1.Set("raw", `{"id":"p1","events":3}`, time.Minute)
	tc := NewTypedCache[snapshot](l1)

	got, ok, err := tc.Get("raw")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, snapshot{ID: "p1", Events: 3}, got)
}

func TestTypedCache_GetMissing(t *testing.T) {
	tc := NewTypedCache[snapshot](InitL1Cache())

	_, ok, err := tc.Get("missing")

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestTypedCache_GetOrLoadSharesConcurrentLoads(t *testing.T) {
	tc := NewTypedCache[snapshot](InitL1Cache())
	var calls int32
	release := make(chan struct{})

	load := func() (snapshot, error) {
		atomic.AddInt32(&calls, 1)
		<-release
		return snapshot{ID: "p1"}, nil
	}
	ttl := func(snapshot) time.Duration { return time.Minute }

	var wg sync.WaitGroup
	results := make([]snapshot, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := tc.GetOrLoad("p1", ttl, load)
			assert.NoError(t, err)
			results[i] = v
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, r := range results {
		assert.Equal(t, "p1", r.ID)
	}

	_, err := tc.GetOrLoad("p1", ttl, func() (snapshot, error) {
		t.Fatal("value should be cached")
		return snapshot{}, nil
	})
	assert.NoError(t, err)
}

func TestTypedCache_GetOrLoadZeroTTLSkipsCache(t *testing.T) {
	tc := NewTypedCache[snapshot](InitL1Cache())
	var calls int
	load := func() (snapshot, error) {
		calls++
		return snapshot{ID: "p1"}, nil
	}
	noCache := func(snapshot) time.Duration { return 0 }

	_, _ = tc.GetOrLoad("p1", noCache, load)
	_, _ = tc.GetOrLoad("p1", noCache, load)

	assert.Equal(t, 2, calls)
}

func TestTypedCache_GetOrLoadError(t *testing.T) {
	tc := NewTypedCache[snapshot](InitL1Cache())
	boom := errors.New("boom")

	_, err := tc.GetOrLoad("p1", func(snapshot) time.Duration { return time.Minute }, func() (snapshot, error) {
		return snapshot{}, boom
	})

	assert.ErrorIs(t, err, boom)
	_, ok, _ := tc.Get("p1")
	assert.False(t, ok)
}
