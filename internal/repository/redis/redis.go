package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"campusanon/config"
)

var Client *redis.Client

// Init creates the client and pings once as a health check.
func Init(cfg *config.RedisConfig) error {
	Client = redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		PoolSize:     10,
		MinIdleConns: 2,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return Client.Ping(ctx).Err()
}

// Close shuts the client down at process exit.
func Close() error {
	if Client == nil {
		return nil
	}
	return Client.Close()
}
