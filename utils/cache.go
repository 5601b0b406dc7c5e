package utils

import (
	"context"
	"log"
	"time"

	"taskhub/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the shared Redis client for query-result caching. It stays
// nil when REDIS_ADDR is not configured; callers must treat a nil client as
// "cache disabled" and fall back to the database.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. Cache use is optional: a
// missing REDIS_ADDR leaves the client nil rather than failing startup.
func InitCache() {
	if config.AppConfig.RedisAddr == "" {
		log.Println("REDIS_ADDR not set, running without cache")
		return
	}
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the cache client, possibly nil.
func GetCacheClient() *redis.Client {
	return CacheClient
}
