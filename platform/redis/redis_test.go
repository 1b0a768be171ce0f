package redis

import (
	"testing"
	"time"

	"pipeline_monitor/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := InitRedis(&config.Config{RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestInitRedis_RejectsEmptyURL(t *testing.T) {
	_, err := InitRedis(&config.Config{})
	assert.Error(t, err)
}

func TestService_CacheRoundTrip(t *testing.T) {
	s, mr := newTestService(t)

	require.NoError(t, s.SetCache("snapshot:p1", map[string]int{"events": 3}, time.Minute))

	raw, ok := s.GetCache("snapshot:p1")
	require.True(t, ok)
	assert.JSONEq(t, `{"events":3}`, raw.(string))
	assert.True(t, mr.Exists(cachePrefix+"snapshot:p1"))

	raw, ttl, ok := s.GetCacheWithTTL("snapshot:p1")
	require.True(t, ok)
	assert.JSONEq(t, `{"events":3}`, raw.(string))
	assert.Greater(t, ttl, 50*time.Second)
	assert.LessOrEqual(t, ttl, time.Minute)

	require.NoError(t, s.DelCache("snapshot:p1"))
	_, ok = s.GetCache("snapshot:p1")
	assert.False(t, ok)
}

func TestService_CacheExpires(t *testing.T) {
	s, mr := newTestService(t)
	require.NoError(t, s.SetCache("k", "v", time.Second))

	mr.FastForward(2 * time.Second)

	_, ok := s.GetCache("k")
	assert.False(t, ok)
	_, _, ok = s.GetCacheWithTTL("k")
	assert.False(t, ok)
}
