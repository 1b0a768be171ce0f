package cache

import "time"

// CacheService Services saves L2 cache function
type CacheService interface {
	GetCache(key string) (interface{}, bool)
	SetCache(key string, value interface{}, expiration time.Duration) error
	DelCache(key string) error
}
