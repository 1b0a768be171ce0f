package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// TypedCache stores values of one type; values coming back from redis as
// JSON are decoded into T. Concurrent loads of the same key share one call.
type TypedCache[T any] struct {
	cache CacheService
	sf    singleflight.Group
}

func NewTypedCache[T any](cache CacheService) *TypedCache[T] {
	return &TypedCache[T]{cache: cache}
}

func (tc *TypedCache[T]) Set(key string, value T, expiration time.Duration) error {
	return tc.cache.SetCache(key, value, expiration)
}

func (tc *TypedCache[T]) Get(key string) (T, bool, error) {
	var zero T

	rawValue, exists := tc.cache.GetCache(key)
	if !exists {
		return zero, false, nil
	}
	value, err := decode[T](rawValue)
	if err != nil {
		return zero, true, err
	}
	return value, true, nil
}

func (tc *TypedCache[T]) Delete(key string) error {
	return tc.cache.DelCache(key)
}

// GetOrLoad returns the cached value or calls load once for all concurrent
// callers of key. ttl picks the expiration from the loaded value; a zero
// ttl skips caching.
func (tc *TypedCache[T]) GetOrLoad(key string, ttl func(T) time.Duration, load func() (T, error)) (T, error) {
	if value, ok, err := tc.Get(key); ok && err == nil {
		return value, nil
	}

	v, err, _ := tc.sf.Do(key, func() (interface{}, error) {
		if value, ok, err := tc.Get(key); ok && err == nil {
			return value, nil
		}
		value, err := load()
		if err != nil {
			return value, err
		}
		if d := ttl(value); d > 0 {
			// write errors are logged by the layered service
			_ = tc.Set(key, value, d)
		}
		return value, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

func decode[T any](rawValue interface{}) (T, error) {
	var result T
	if typedValue, ok := rawValue.(T); ok {
		return typedValue, nil
	}

	var data []byte
	switch v := rawValue.(type) {
	case string:
		data = []byte(v)
	case []byte:
		data = v
	default:
		jsonData, err := json.Marshal(rawValue)
		if err != nil {
			return result, fmt.Errorf("failed to marshal intermediate value: %w", err)
		}
		data = jsonData
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return result, nil
}
