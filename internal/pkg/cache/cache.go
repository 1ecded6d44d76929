package cache

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/storage/redis"
	goredis "github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/RetailFox/internal/pkg/env"
)

var client *goredis.Client

// SetupCache initializes the connection to the Redis-compatible cache server
func SetupCache() {
	client = goredis.NewClient(&goredis.Options{
		Addr:     Addr(),
		Password: env.GetEnv("CACHE_PASSWORD", ""),
		DB:       env.GetEnvInt("CACHE_DB", 0),
	})

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		log.Warnw("could not connect to cache", "addr", Addr(), "error", err)
	} else {
		log.Infow("connected to cache", "addr", Addr(), "reply", pong)
	}
}

func Addr() string {
	return fmt.Sprintf("%s:%s", env.GetEnv("CACHE_HOST", "localhost"), env.GetEnv("CACHE_PORT", "6379"))
}

// GetClient returns the Redis client instance
func GetClient() *goredis.Client {
	if client == nil {
		SetupCache()
	}
	return client
}

// NewLimiterStorage returns Fiber storage for the rate limiter on the same
// cache server, so limits hold across instances. It uses its own database.
func NewLimiterStorage() *redis.Storage {
	host := "localhost"
	port := 6379
	password := env.GetEnv("CACHE_PASSWORD", "")
	if c := GetClient(); c != nil {
		if h, p, err := net.SplitHostPort(c.Options().Addr); err == nil {
			host = h
			if v, err := strconv.Atoi(p); err == nil {
				port = v
			}
		}
	}
	return redis.New(redis.Config{
		Host:     host,
		Port:     port,
		Password: password,
		Database: env.GetEnvInt("CACHE_LIMITER_DB", 1),
		Reset:    false,
	})
}
