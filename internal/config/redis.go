package config

import (
	"context"
	"fmt"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// InitRedis returns a lock client, or nil when REDIS_ADDR is unset.
func InitRedis(ctx context.Context, cfg *Config) (*redis.Client, *redislock.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("could not connect redis at %s: %w", cfg.RedisAddr, err)
	}

	GetLogger().WithField("addr", cfg.RedisAddr).Info("connected to redis")
	return rdb, redislock.New(rdb), nil
}
