package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type L1CacheService struct {
	client *cache.Cache
}

func InitL1Cache() *L1CacheService {
	return &L1CacheService{
		client: cache.New(time.Minute, 5*time.Minute),
	}
}

func (s *L1CacheService) Get(key string) (interface{}, bool) {
	return s.client.Get(key)
}

func (s *L1CacheService) Set(key string, value interface{}, expiration time.Duration) {
	s.client.Set(key, value, expiration)
}
func (s *L1CacheService) Del(key string) {
	s.client.Delete(key)
}

// the L1 layer satisfies CacheService on its own when no redis is configured
func (s *L1CacheService) GetCache(key string) (interface{}, bool) {
	return s.Get(key)
}
func (s *L1CacheService) SetCache(key string, value interface{}, expiration time.Duration) error {
	s.Set(key, value, expiration)
	return nil
}
func (s *L1CacheService) DelCache(key string) error {
	s.Del(key)
	return nil
}
