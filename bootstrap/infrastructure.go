package bootstrap

import (
	"pipeline_monitor/config"
	"pipeline_monitor/pkg/logging"
	"pipeline_monitor/platform/cache"
	"pipeline_monitor/platform/database"
	"pipeline_monitor/platform/events"
	"pipeline_monitor/platform/redis"
	"pipeline_monitor/platform/storage"
)

// Infrastructure holds the optional backends. Postgres is opened only for
// the postgres source, redis only when REDIS_URL is set, and object storage
// only when STORAGE_TYPE is set.
type Infrastructure struct {
	DB             *database.DB
	Redis          *redis.Service
	Storage        *storage.Service
	Cache          cache.CacheService
	EventPublisher events.Publisher
}

func NewInfrastructure(cfg *config.Config) (*Infrastructure, error) {
	infra := &Infrastructure{}

	// database
	if cfg.SourceType == SourcePostgres {
		db, err := database.InitPostgres(cfg)
		if err != nil {
			return nil, err
		}
		infra.DB = db
	}

	// redis services
	if cfg.RedisURL != "" {
		redisService, err := redis.InitRedis(cfg)
		if err != nil {
			logging.Logger.Error("fail Initializing Redis", "error", err)
			_ = infra.Shutdown()
			return nil, err
		}
		infra.Redis = redisService
	}

	// storage services
	if cfg.StorageType != "" {
		storageService, err := storage.InitStorageService(cfg)
		if err != nil {
			logging.Logger.Error("fail Initializing Bucket", "error", err)
			_ = infra.Shutdown()
			return nil, err
		}
		infra.Storage = storageService
	}

	// cache and event publisher
	l1CacheService := cache.InitL1Cache()
	if infra.Redis != nil {
		infra.Cache = cache.NewCacheService(l1CacheService, infra.Redis)
		infra.EventPublisher = events.NewRedisPublisher(infra.Redis.Rdb)
	} else {
		infra.Cache = cache.NewCacheService(l1CacheService, nil)
		infra.EventPublisher = events.NewLocalPublisher()
	}

	return infra, nil
}

func (infra *Infrastructure) Shutdown() error {
	if infra.DB != nil {
		if err := infra.DB.Close(); err != nil {
			logging.Logger.Error("fail closing database", "error", err)
			return err
		}
	}
	if infra.Redis != nil {
		if err := infra.Redis.Close(); err != nil {
			logging.Logger.Error("fail closing redis", "error", err)
			return err
		}
	}
	return nil
}
