package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/modae/teamup/config"
)

var (
	redisClient *redis.Client
	redisOK     bool
	redisOnce   sync.Once
)

// GetRedis returns a singleton Redis client based on loaded config, or
// nil when Redis was unreachable at first use. Callers treat nil as
// "no cache": the cache layer degrades to pass-through and the token
// blacklist falls back to its in-memory map.
func GetRedis() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.Get()
		redisClient = redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			if Sugar != nil {
				Sugar.Warnf("redis unavailable, caching disabled: %v", err)
			}
			return
		}
		redisOK = true
	})
	if !redisOK {
		return nil
	}
	return redisClient
}
