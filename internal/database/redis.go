package database

import (
	"context"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis returns a client for addr, or nil when addr is empty. Callers
// treat a nil client as "cache disabled" and fall through to the source.
func ConnectRedis(addr string) *redis.Client {
	if addr == "" {
		log.Println("REDIS_URL not set, geo lookup cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("Redis unreachable, geo lookup cache disabled:", err)
		return nil
	}

	log.Println("Redis connected to:", addr)
	return client
}
