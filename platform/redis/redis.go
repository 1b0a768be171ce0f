package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"pipeline_monitor/config"
	"pipeline_monitor/pkg/logging"
	"time"

	"github.com/redis/go-redis/v9"
)

const cachePrefix = "monitor:cache:"

type Service struct {
	Rdb *redis.Client
	Ctx context.Context
}

func InitRedis(cfg *config.Config) (*Service, error) {
	redisUrl := cfg.RedisURL
	if redisUrl == "" {
		return nil, fmt.Errorf("empty redis url")
	}
	opt, err := redis.ParseURL(redisUrl)
	if err != nil {
		return nil, fmt.Errorf("could not parse Redis URL: %w", err)
	}
	if cfg.RedisPassword != "" {
		opt.Password = cfg.RedisPassword
	}
	rdb := redis.NewClient(opt)

	testCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := rdb.Ping(testCtx).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to Redis: %w", err)
	}
	logging.Logger.Info("Connected to Redis", "addr", opt.Addr)
	return &Service{
		Rdb: rdb,
		Ctx: context.Background(),
	}, nil
}

func (s *Service) SetCache(key string, value interface{}, expiration time.Duration) error {
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.Rdb.Set(s.Ctx, cachePrefix+key, jsonData, expiration).Err()
}

// GetCache returns the raw JSON string; TypedCache decodes it.
func (s *Service) GetCache(key string) (interface{}, bool) {
	val, err := s.Rdb.Get(s.Ctx, cachePrefix+key).Result()
	if err != nil {
		if err != redis.Nil {
			logging.Logger.Warn("redis GetCache failed", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

// GetCacheWithTTL returns the raw JSON string and the key's remaining
// lifetime in one round trip.
func (s *Service) GetCacheWithTTL(key string) (interface{}, time.Duration, bool) {
	pipe := s.Rdb.Pipeline()
	get := pipe.Get(s.Ctx, cachePrefix+key)
	ttl := pipe.PTTL(s.Ctx, cachePrefix+key)
	if _, err := pipe.Exec(s.Ctx); err != nil {
		if err != redis.Nil {
			logging.Logger.Warn("redis GetCacheWithTTL failed", "key", key, "error", err)
		}
		return nil, 0, false
	}
	d := ttl.Val()
	if d < 0 {
		d = 0
	}
	return get.Val(), d, true
}

func (s *Service) DelCache(key string) error {
	return s.Rdb.Del(s.Ctx, cachePrefix+key).Err()
}

func (s *Service) Close() error {
	return s.Rdb.Close()
}
