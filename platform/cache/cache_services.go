package cache

import (
	"pipeline_monitor/pkg/logging"
	"time"
)

// l1Share is the part of an L2 expiration an L1 copy lives for.
const l1Share = 0.3

// ttlGetter is implemented by L2 stores that can report the remaining
// lifetime of a key together with its value.
type ttlGetter interface {
	GetCacheWithTTL(key string) (interface{}, time.Duration, bool)
}

// Service layers an in-process L1 cache in front of a shared L2 store.
type Service struct {
	l1 *L1CacheService
	l2 CacheService
}

func NewCacheService(l1 *L1CacheService, l2 CacheService) CacheService {
	if l2 == nil {
		return l1
	}
	return &Service{l1: l1, l2: l2}
}

func (cs *Service) GetCache(key string) (interface{}, bool) {
	if data, ok := cs.l1.Get(key); ok {
		return data, ok
	}
	if getter, ok := cs.l2.(ttlGetter); ok {
		data, ttl, ok := getter.GetCacheWithTTL(key)
		if !ok {
			return nil, false
		}
		// L2 hits are copied back so the next read stays in process
		if backfill := time.Duration(float64(ttl) * l1Share); backfill > 0 {
			cs.l1.Set(key, data, backfill)
		}
		return data, true
	}
	if data, ok := cs.l2.GetCache(key); ok {
		return data, ok
	}
	return nil, false
}
func (cs *Service) SetCache(key string, value interface{}, expiration time.Duration) error {
	err := cs.l2.SetCache(key, value, expiration)
	if err != nil {
		logging.Logger.Error("l2 fail SetCache", "key", key, "error", err)
		return err
	}
	cs.l1.Set(key, value, time.Duration(float64(expiration)*l1Share))
	return nil
}
func (cs *Service) DelCache(key string) error {
	cs.l1.Del(key)
	if err := cs.l2.DelCache(key); err != nil {
		logging.Logger.Error("l2 fail DelCache", "key", key, "error", err)
		return err
	}
	return nil
}
